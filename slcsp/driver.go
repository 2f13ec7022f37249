package slcsp

// ResolveAll resolves every zipcode against the two indexes, producing one
// QueryRecord per input zipcode in input order. Per-zipcode failures never
// error; they yield a record without a rate, tagged with the reason.
func ResolveAll(zipcodes []string, areas AreaIndex, rates RateIndex) []QueryRecord {
	out := make([]QueryRecord, 0, len(zipcodes))
	for _, zip := range zipcodes {
		rec := QueryRecord{Zipcode: zip}

		area, res := areas.Resolve(zip)
		if res != Resolved {
			rec.Reason = res
			out = append(out, rec)
			continue
		}
		rec.Area = &area

		rate, ok := rates.SecondLowest(area)
		if !ok {
			rec.Reason = NoSecondRate
			out = append(out, rec)
			continue
		}

		rec.Rate = rate
		rec.HasRate = true
		out = append(out, rec)
	}
	return out
}
