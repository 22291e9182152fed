package eventmodels

type OptionMoneyness string

const (
	OptionMoneynessIntheMoney    OptionMoneyness = "in_the_money"
	OptionMoneynessOutOfTheMoney OptionMoneyness = "out_of_the_money"
	OptionMoneynessAtTheMoney    OptionMoneyness = "at_the_money"
)

// GetMoneyness classifies a contract against the given spot. Strikes within
// band of spot (band expressed as a fraction, e.g. 0.1 for +/-10%) count as
// at the money.
func GetMoneyness(spec OptionContractSpec, spot float64, band float64) OptionMoneyness {
	lower := spot * (1 - band)
	upper := spot * (1 + band)

	if spec.Strike >= lower && spec.Strike <= upper {
		return OptionMoneynessAtTheMoney
	}

	if spec.OptionType == Call {
		if spec.Strike < lower {
			return OptionMoneynessIntheMoney
		}
		return OptionMoneynessOutOfTheMoney
	}

	if spec.Strike > upper {
		return OptionMoneynessIntheMoney
	}

	return OptionMoneynessOutOfTheMoney
}
