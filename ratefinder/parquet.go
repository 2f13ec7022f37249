package main

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"ratetool/slcsp"
)

// ResultRow is the denormalized Parquet row for one resolved zipcode.
// Unlike the CSV output, the analytical export keeps the resolution reason
// and the rating area, so failure modes stay distinguishable downstream.
// Optional fields use the Parquet native null bitmap, enabling
// IS NULL / IS NOT NULL pushdown on the rate column.
type ResultRow struct {
	Zipcode  string   `parquet:"zipcode"`
	Rate     *float64 `parquet:"rate,optional"`
	State    *string  `parquet:"state,optional"`
	RateArea *int32   `parquet:"rate_area,optional"`
	Reason   string   `parquet:"reason"` // dictionary-encodes to near-zero
}

func toResultRows(results []slcsp.QueryRecord) []ResultRow {
	rows := make([]ResultRow, 0, len(results))
	for _, rec := range results {
		row := ResultRow{Zipcode: rec.Zipcode, Reason: rec.Reason.String()}
		if rec.HasRate {
			f, _ := rec.Rate.Float64()
			row.Rate = &f
		}
		if rec.Area != nil {
			state := rec.Area.State
			area := int32(rec.Area.Area)
			row.State = &state
			row.RateArea = &area
		}
		rows = append(rows, row)
	}
	return rows
}

// ResultWriter writes ResultRow records to a Parquet file sized for
// analytical queries: Zstd compression, small pages for page-level
// filtering, statistics on every column.
type ResultWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[ResultRow]
	count  int
}

func NewResultWriter(filename string) (*ResultWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[ResultRow](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.PageBufferSize(8*1024),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("ratetool", "1.0", ""),
	)

	return &ResultWriter{file: file, writer: writer}, nil
}

func (w *ResultWriter) Write(rows []ResultRow) (int, error) {
	n, err := w.writer.Write(rows)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Count returns the total number of rows written.
func (w *ResultWriter) Count() int { return w.count }

// Close flushes the final row group and closes the file.
func (w *ResultWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// exportParquet writes the full result set to a Parquet file.
func exportParquet(filename string, results []slcsp.QueryRecord) error {
	writer, err := NewResultWriter(filename)
	if err != nil {
		return err
	}
	if _, err := writer.Write(toResultRows(results)); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
