// Package slcsp computes the second lowest cost silver plan (SLCSP) rate
// for zipcodes. A zipcode resolves to a rating area, and the rating area's
// silver plan rates determine the second lowest distinct rate.
//
// Both indexes are built once from the full input datasets and are read-only
// afterward, so they may be shared freely across lookups.
package slcsp

import "github.com/shopspring/decimal"

// SilverLevel is the only metal level this package prices. Matching is
// case-insensitive ("Silver" and "silver" both qualify).
const SilverLevel = "Silver"

// RatingArea identifies a state-specific geographic pricing unit.
// It is the join key between plan rows and service-area rows.
type RatingArea struct {
	State string
	Area  int
}

// Plan is one row of the plan-rates dataset.
type Plan struct {
	ID         string
	MetalLevel string
	Rate       decimal.Decimal
	Area       RatingArea
}

// ServiceArea is one row of the service-area dataset. A zipcode may appear
// in many rows, and in more than one rating area.
type ServiceArea struct {
	Area    RatingArea
	Zipcode string
}

// Resolution classifies the outcome of resolving one zipcode. Only Resolved
// produces a rate; all other outcomes surface as an empty rate in the
// output. The distinction is kept internally for diagnostics and exports.
type Resolution int

const (
	Resolved Resolution = iota
	MalformedZipcode
	UnknownZipcode
	AmbiguousArea
	NoSecondRate
)

func (r Resolution) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case MalformedZipcode:
		return "malformed_zipcode"
	case UnknownZipcode:
		return "unknown_zipcode"
	case AmbiguousArea:
		return "ambiguous_area"
	case NoSecondRate:
		return "no_second_rate"
	}
	return "unknown"
}

// QueryRecord is the result of resolving one input zipcode. Records keep the
// input order of the query dataset. Area is set only when the zipcode
// resolved to exactly one rating area.
type QueryRecord struct {
	Zipcode string
	Rate    decimal.Decimal
	HasRate bool
	Reason  Resolution
	Area    *RatingArea
}

// FormattedRate renders the rate with exactly two fractional digits, or an
// empty string when no rate could be determined. An empty rate is the one
// external signal for every failure mode.
func (q QueryRecord) FormattedRate() string {
	if !q.HasRate {
		return ""
	}
	return q.Rate.StringFixed(2)
}
