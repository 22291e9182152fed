package eventmodels

import (
	"fmt"
	"math"
	"time"
)

// OptionContractSpec describes a single vanilla contract. Values are fixed at
// construction; TimeToExpiry is expressed in years.
type OptionContractSpec struct {
	Underlying    StockSymbol   `json:"underlying"`
	Strike        float64       `json:"strike"`
	TimeToExpiry  float64       `json:"time_to_expiry"`
	OptionType    OptionType    `json:"option_type"`
	ExerciseStyle ExerciseStyle `json:"exercise_style"`
	Expiration    time.Time     `json:"expiration"`
}

func (s OptionContractSpec) Validate() error {
	if s.Strike <= 0 {
		return fmt.Errorf("OptionContractSpec: Validate: strike must be positive, got %v: %w", s.Strike, InvalidInputErr)
	}

	if s.TimeToExpiry < 0 {
		return fmt.Errorf("OptionContractSpec: Validate: time to expiry must be non-negative, got %v: %w", s.TimeToExpiry, InvalidInputErr)
	}

	if err := s.OptionType.Validate(); err != nil {
		return fmt.Errorf("OptionContractSpec: Validate: %w", err)
	}

	if err := s.ExerciseStyle.Validate(); err != nil {
		return fmt.Errorf("OptionContractSpec: Validate: %w", err)
	}

	return nil
}

// IntrinsicValue is the exercise value of the contract at the given spot.
func (s OptionContractSpec) IntrinsicValue(spot float64) float64 {
	if s.OptionType == Call {
		return math.Max(spot-s.Strike, 0)
	}

	return math.Max(s.Strike-spot, 0)
}

// Moneyness is the strike expressed relative to spot. A value of 1 is at the
// money; below 1 is in the money for calls and out of the money for puts.
func (s OptionContractSpec) Moneyness(spot float64) float64 {
	return s.Strike / spot
}
