package slcsp

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// RateIndex maps a rating area to its silver plan rates, ascending and
// distinct by value. "198.0" and "198.00" are the same rate.
type RateIndex map[RatingArea][]decimal.Decimal

// BuildRateIndex filters the plan dataset to silver plans and groups the
// rates by rating area. Duplicate rate values within an area collapse to one
// entry regardless of how many plans charge them, so the result does not
// depend on input row order.
func BuildRateIndex(plans []Plan) RateIndex {
	byArea := make(map[RatingArea][]decimal.Decimal)
	for _, p := range plans {
		if !strings.EqualFold(p.MetalLevel, SilverLevel) {
			continue
		}
		byArea[p.Area] = append(byArea[p.Area], p.Rate)
	}

	idx := make(RateIndex, len(byArea))
	for area, rates := range byArea {
		slices.SortFunc(rates, decimal.Decimal.Cmp)
		distinct := rates[:0]
		for _, r := range rates {
			if len(distinct) == 0 || !distinct[len(distinct)-1].Equal(r) {
				distinct = append(distinct, r)
			}
		}
		idx[area] = distinct
	}
	return idx
}

// SecondLowest returns the second smallest distinct silver rate for the
// area. ok is false when the area has fewer than two distinct rates,
// including areas with no silver plans at all.
func (idx RateIndex) SecondLowest(area RatingArea) (rate decimal.Decimal, ok bool) {
	rates := idx[area]
	if len(rates) < 2 {
		return decimal.Decimal{}, false
	}
	return rates[1], true
}
