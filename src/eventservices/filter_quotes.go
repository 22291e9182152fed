package eventservices

import (
	"math"
	"sort"
	"time"

	"github.com/jiaming2012/options-analytics/src/eventmodels"
)

// FilterQuotes trims a chain to the contracts worth solving: expirations
// within the requested day offsets (when given) and, per expiration and
// option type, at most maxNoOfStrikes strikes closest to spot. Zero
// maxNoOfStrikes keeps every strike.
func FilterQuotes(quotes []eventmodels.OptionQuote, expirationsInDays []int, maxNoOfStrikes int, now time.Time) []eventmodels.OptionQuote {
	filtered := quotes

	if len(expirationsInDays) > 0 {
		wanted := make(map[string]struct{})
		for _, days := range expirationsInDays {
			wanted[now.AddDate(0, 0, days).Format("2006-01-02")] = struct{}{}
		}

		var matched []eventmodels.OptionQuote
		for _, quote := range filtered {
			if _, ok := wanted[quote.Spec.Expiration.Format("2006-01-02")]; ok {
				matched = append(matched, quote)
			}
		}

		filtered = matched
	}

	if maxNoOfStrikes <= 0 {
		return filtered
	}

	type bucketKey struct {
		expiration string
		optionType eventmodels.OptionType
	}

	buckets := make(map[bucketKey][]eventmodels.OptionQuote)
	for _, quote := range filtered {
		key := bucketKey{
			expiration: quote.Spec.Expiration.Format("2006-01-02"),
			optionType: quote.Spec.OptionType,
		}
		buckets[key] = append(buckets[key], quote)
	}

	var result []eventmodels.OptionQuote
	for _, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool {
			di := math.Abs(bucket[i].Spec.Strike - bucket[i].Market.SpotPrice)
			dj := math.Abs(bucket[j].Spec.Strike - bucket[j].Market.SpotPrice)
			return di < dj
		})

		if len(bucket) > maxNoOfStrikes {
			bucket = bucket[:maxNoOfStrikes]
		}

		result = append(result, bucket...)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Spec.Expiration.Equal(result[j].Spec.Expiration) {
			return result[i].Spec.Expiration.Before(result[j].Spec.Expiration)
		}

		if result[i].Spec.Strike != result[j].Spec.Strike {
			return result[i].Spec.Strike < result[j].Spec.Strike
		}

		return result[i].Spec.OptionType < result[j].Spec.OptionType
	})

	return result
}
