package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"ratetool/slcsp"
)

// outputFieldNames is the declared output schema. It is a fixed constant of
// the tool, never derived from the input file's header.
var outputFieldNames = []string{"zipcode", "rate"}

// writeResults emits one CSV row per query zipcode, in input order. Rates
// carry exactly two fractional digits; undeterminable rates are empty.
func writeResults(w io.Writer, results []slcsp.QueryRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outputFieldNames); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range results {
		if err := cw.Write([]string{rec.Zipcode, rec.FormattedRate()}); err != nil {
			return fmt.Errorf("write zipcode %s: %w", rec.Zipcode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
