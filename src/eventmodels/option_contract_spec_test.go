package eventmodels

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newSpec(optionType OptionType, strike float64) OptionContractSpec {
	return OptionContractSpec{
		Underlying:    NewStockSymbol("TEST"),
		Strike:        strike,
		TimeToExpiry:  0.5,
		OptionType:    optionType,
		ExerciseStyle: European,
		Expiration:    time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
	}
}

func TestOptionContractSpecValidate(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		assert.NoError(t, newSpec(Call, 100).Validate())
	})

	t.Run("zero time to expiry is allowed", func(t *testing.T) {
		spec := newSpec(Put, 100)
		spec.TimeToExpiry = 0
		assert.NoError(t, spec.Validate())
	})

	t.Run("rejects bad fields", func(t *testing.T) {
		spec := newSpec(Call, 0)
		assert.True(t, errors.Is(spec.Validate(), InvalidInputErr))

		spec = newSpec(Call, 100)
		spec.TimeToExpiry = -0.1
		assert.True(t, errors.Is(spec.Validate(), InvalidInputErr))

		spec = newSpec("straddle", 100)
		assert.True(t, errors.Is(spec.Validate(), InvalidInputErr))

		spec = newSpec(Call, 100)
		spec.ExerciseStyle = "bermudan"
		assert.True(t, errors.Is(spec.Validate(), InvalidInputErr))
	})
}

func TestOptionContractSpecIntrinsicValue(t *testing.T) {
	t.Run("call", func(t *testing.T) {
		spec := newSpec(Call, 100)
		assert.Equal(t, 10.0, spec.IntrinsicValue(110))
		assert.Equal(t, 0.0, spec.IntrinsicValue(90))
		assert.Equal(t, 0.0, spec.IntrinsicValue(100))
	})

	t.Run("put", func(t *testing.T) {
		spec := newSpec(Put, 100)
		assert.Equal(t, 0.0, spec.IntrinsicValue(110))
		assert.Equal(t, 10.0, spec.IntrinsicValue(90))
	})
}

func TestGetMoneyness(t *testing.T) {
	band := 0.05

	t.Run("call", func(t *testing.T) {
		assert.Equal(t, OptionMoneynessIntheMoney, GetMoneyness(newSpec(Call, 90), 100, band))
		assert.Equal(t, OptionMoneynessAtTheMoney, GetMoneyness(newSpec(Call, 97), 100, band))
		assert.Equal(t, OptionMoneynessAtTheMoney, GetMoneyness(newSpec(Call, 105), 100, band))
		assert.Equal(t, OptionMoneynessOutOfTheMoney, GetMoneyness(newSpec(Call, 110), 100, band))
	})

	t.Run("put", func(t *testing.T) {
		assert.Equal(t, OptionMoneynessOutOfTheMoney, GetMoneyness(newSpec(Put, 90), 100, band))
		assert.Equal(t, OptionMoneynessAtTheMoney, GetMoneyness(newSpec(Put, 103), 100, band))
		assert.Equal(t, OptionMoneynessIntheMoney, GetMoneyness(newSpec(Put, 110), 100, band))
	})
}
