package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ratetool/slcsp"
)

// openCSV opens a CSV file with a large read buffer, skipping a UTF-8 BOM
// if present. LazyQuotes and variable field counts match what marketplace
// data exports actually contain.
func openCSV(filepath string) (*os.File, *csv.Reader, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", filepath, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	return file, reader, nil
}

// readHeader reads the header row and builds a lowercase column index.
// Columns beyond the required set are ignored by the callers.
func readHeader(reader *csv.Reader, required ...string) (map[string]int, error) {
	row, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	if len(row) > 0 {
		row[0] = strings.TrimPrefix(row[0], "\ufeff")
	}

	colIdx := make(map[string]int, len(row))
	for i, h := range row {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return colIdx, nil
}

func valAt(row []string, idx map[string]int, col string) string {
	if i, ok := idx[col]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func emptyRow(row []string) bool {
	return len(row) == 0 || (len(row) == 1 && row[0] == "")
}

// parseArea reads the (state, rate_area) composite key from a row.
func parseArea(row []string, idx map[string]int) (slcsp.RatingArea, error) {
	areaStr := valAt(row, idx, "rate_area")
	area, err := strconv.Atoi(areaStr)
	if err != nil {
		return slcsp.RatingArea{}, fmt.Errorf("bad rate_area %q: %w", areaStr, err)
	}
	return slcsp.RatingArea{State: valAt(row, idx, "state"), Area: area}, nil
}

// PlanReader streams the plan rates CSV (plan_id,state,metal_level,rate,rate_area)
// one row at a time. A rate or rate_area that fails to parse is a hard error
// carrying the 1-based row number: a corrupt dataset cannot be partially
// trusted, so the pipeline aborts rather than skipping rows.
type PlanReader struct {
	file   *os.File
	csv    *csv.Reader
	colIdx map[string]int
	rowNum int64
}

func NewPlanReader(filepath string) (*PlanReader, error) {
	file, reader, err := openCSV(filepath)
	if err != nil {
		return nil, err
	}

	colIdx, err := readHeader(reader, "plan_id", "state", "metal_level", "rate", "rate_area")
	if err != nil {
		file.Close()
		return nil, err
	}

	return &PlanReader{file: file, csv: reader, colIdx: colIdx, rowNum: 1}, nil
}

// Next returns the next plan row, or io.EOF when done.
func (r *PlanReader) Next() (slcsp.Plan, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return slcsp.Plan{}, err
		}
		r.rowNum++

		if emptyRow(row) {
			continue
		}

		rateStr := valAt(row, r.colIdx, "rate")
		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return slcsp.Plan{}, fmt.Errorf("row %d: bad rate %q: %w", r.rowNum, rateStr, err)
		}

		area, err := parseArea(row, r.colIdx)
		if err != nil {
			return slcsp.Plan{}, fmt.Errorf("row %d: %w", r.rowNum, err)
		}

		return slcsp.Plan{
			ID:         valAt(row, r.colIdx, "plan_id"),
			MetalLevel: valAt(row, r.colIdx, "metal_level"),
			Rate:       rate,
			Area:       area,
		}, nil
	}
}

// RowNum returns the current row number (1-based, header included).
func (r *PlanReader) RowNum() int64 { return r.rowNum }

func (r *PlanReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ZipReader streams the service-area CSV (zipcode,state,county_code,name,rate_area).
// County columns and any other extras are ignored; only the zipcode and the
// rating area key matter.
type ZipReader struct {
	file   *os.File
	csv    *csv.Reader
	colIdx map[string]int
	rowNum int64
}

func NewZipReader(filepath string) (*ZipReader, error) {
	file, reader, err := openCSV(filepath)
	if err != nil {
		return nil, err
	}

	colIdx, err := readHeader(reader, "zipcode", "state", "rate_area")
	if err != nil {
		file.Close()
		return nil, err
	}

	return &ZipReader{file: file, csv: reader, colIdx: colIdx, rowNum: 1}, nil
}

// Next returns the next service-area row, or io.EOF when done.
func (r *ZipReader) Next() (slcsp.ServiceArea, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return slcsp.ServiceArea{}, err
		}
		r.rowNum++

		if emptyRow(row) {
			continue
		}

		area, err := parseArea(row, r.colIdx)
		if err != nil {
			return slcsp.ServiceArea{}, fmt.Errorf("row %d: %w", r.rowNum, err)
		}

		return slcsp.ServiceArea{
			Zipcode: valAt(row, r.colIdx, "zipcode"),
			Area:    area,
		}, nil
	}
}

func (r *ZipReader) RowNum() int64 { return r.rowNum }

func (r *ZipReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// QueryReader streams the zipcodes to resolve (zipcode[,rate]). The rate
// column, if present, is ignored on input; it is populated on output.
type QueryReader struct {
	file   *os.File
	csv    *csv.Reader
	colIdx map[string]int
	rowNum int64
}

func NewQueryReader(filepath string) (*QueryReader, error) {
	file, reader, err := openCSV(filepath)
	if err != nil {
		return nil, err
	}

	colIdx, err := readHeader(reader, "zipcode")
	if err != nil {
		file.Close()
		return nil, err
	}

	return &QueryReader{file: file, csv: reader, colIdx: colIdx, rowNum: 1}, nil
}

// Next returns the next zipcode, or io.EOF when done.
func (r *QueryReader) Next() (string, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return "", err
		}
		r.rowNum++

		if emptyRow(row) {
			continue
		}

		return valAt(row, r.colIdx, "zipcode"), nil
	}
}

func (r *QueryReader) RowNum() int64 { return r.rowNum }

func (r *QueryReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// loadPlans reads the full plan dataset into memory.
func loadPlans(filepath string) ([]slcsp.Plan, error) {
	reader, err := NewPlanReader(filepath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var plans []slcsp.Plan
	for {
		plan, err := reader.Next()
		if err == io.EOF {
			return plans, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath, err)
		}
		plans = append(plans, plan)
	}
}

// loadServiceAreas reads the full service-area dataset into memory.
func loadServiceAreas(filepath string) ([]slcsp.ServiceArea, error) {
	reader, err := NewZipReader(filepath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var rows []slcsp.ServiceArea
	for {
		row, err := reader.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath, err)
		}
		rows = append(rows, row)
	}
}

// loadQueryZipcodes reads the ordered list of zipcodes to resolve.
func loadQueryZipcodes(filepath string) ([]string, error) {
	reader, err := NewQueryReader(filepath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var zipcodes []string
	for {
		zip, err := reader.Next()
		if err == io.EOF {
			return zipcodes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath, err)
		}
		zipcodes = append(zipcodes, zip)
	}
}
