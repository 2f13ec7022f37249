package slcsp

import (
	"regexp"
	"slices"
)

// Zipcodes are matched exactly as they appear in the service-area dataset;
// the only validation is the five digit format.
var zipcodeFormat = regexp.MustCompile(`^\d{5}$`)

// AreaIndex maps a zipcode to the distinct rating areas that serve it.
type AreaIndex map[string][]RatingArea

// BuildAreaIndex groups service-area rows by zipcode, keeping each rating
// area once. A zipcode listed in several counties of the same rating area
// still resolves unambiguously.
func BuildAreaIndex(rows []ServiceArea) AreaIndex {
	idx := make(AreaIndex)
	for _, row := range rows {
		areas := idx[row.Zipcode]
		if !slices.Contains(areas, row.Area) {
			idx[row.Zipcode] = append(areas, row.Area)
		}
	}
	return idx
}

// Resolve maps a zipcode to its rating area. The area is valid only when the
// returned Resolution is Resolved: a zipcode absent from the dataset is
// UnknownZipcode, and one spanning two or more rating areas is AmbiguousArea.
func (idx AreaIndex) Resolve(zipcode string) (RatingArea, Resolution) {
	if !zipcodeFormat.MatchString(zipcode) {
		return RatingArea{}, MalformedZipcode
	}
	areas, ok := idx[zipcode]
	if !ok {
		return RatingArea{}, UnknownZipcode
	}
	if len(areas) > 1 {
		return RatingArea{}, AmbiguousArea
	}
	return areas[0], Resolved
}
