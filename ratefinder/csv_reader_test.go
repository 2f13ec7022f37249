package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ratetool/slcsp"
)

func TestLoadPlans(t *testing.T) {
	plans, err := loadPlans("testdata/plans.csv")
	if err != nil {
		t.Fatalf("load plans: %v", err)
	}

	if len(plans) != 9 {
		t.Fatalf("expected 9 plan rows, got %d", len(plans))
	}

	first := plans[0]
	if first.ID != "74449NR9870320" {
		t.Errorf("expected plan_id 74449NR9870320, got %s", first.ID)
	}
	if first.MetalLevel != "Silver" {
		t.Errorf("expected metal_level Silver, got %s", first.MetalLevel)
	}
	if got := first.Rate.StringFixed(2); got != "198.00" {
		t.Errorf("expected rate 198.00, got %s", got)
	}
	if first.Area != (slcsp.RatingArea{State: "PA", Area: 1}) {
		t.Errorf("expected area (PA, 1), got %+v", first.Area)
	}
}

func TestLoadServiceAreasIgnoresExtraColumns(t *testing.T) {
	rows, err := loadServiceAreas("testdata/zips.csv")
	if err != nil {
		t.Fatalf("load service areas: %v", err)
	}

	if len(rows) != 5 {
		t.Fatalf("expected 5 service-area rows, got %d", len(rows))
	}
	// county_code and name columns are present in the file but never loaded.
	if rows[2].Zipcode != "36749" || rows[2].Area != (slcsp.RatingArea{State: "GA", Area: 1}) {
		t.Errorf("unexpected row 3: %+v", rows[2])
	}
}

func TestLoadQueryZipcodesPreservesOrder(t *testing.T) {
	zipcodes, err := loadQueryZipcodes("testdata/slcsp.csv")
	if err != nil {
		t.Fatalf("load query zipcodes: %v", err)
	}

	want := []string{"00601", "36749", "90210", "99999"}
	if len(zipcodes) != len(want) {
		t.Fatalf("expected %d zipcodes, got %d", len(want), len(zipcodes))
	}
	for i := range want {
		if zipcodes[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], zipcodes[i])
		}
	}
}

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoadPlansMalformedRateIsFatal(t *testing.T) {
	path := writeTempCSV(t,
		"plan_id,state,metal_level,rate,rate_area\n"+
			"74449NR9870320,PA,Silver,198.00,1\n"+
			"28850TB6621800,PA,Silver,not-a-rate,1\n")

	_, err := loadPlans(path)
	if err == nil {
		t.Fatal("expected error for malformed rate")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("expected row number in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "not-a-rate") {
		t.Errorf("expected offending value in error, got: %v", err)
	}
}

func TestLoadServiceAreasMalformedAreaIsFatal(t *testing.T) {
	path := writeTempCSV(t,
		"zipcode,state,county_code,name,rate_area\n"+
			"00601,PA,72001,Adjuntas,one\n")

	_, err := loadServiceAreas(path)
	if err == nil {
		t.Fatal("expected error for malformed rate_area")
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Errorf("expected row number in error, got: %v", err)
	}
}

func TestMissingRequiredColumn(t *testing.T) {
	path := writeTempCSV(t, "plan_id,state,rate,rate_area\nx,PA,198.00,1\n")

	_, err := NewPlanReader(path)
	if err == nil {
		t.Fatal("expected error for missing metal_level column")
	}
	if !strings.Contains(err.Error(), "metal_level") {
		t.Errorf("expected missing column named in error, got: %v", err)
	}
}

func TestReaderSkipsBOM(t *testing.T) {
	path := writeTempCSV(t, "\xEF\xBB\xBFzipcode,rate\n00601,\n")

	zipcodes, err := loadQueryZipcodes(path)
	if err != nil {
		t.Fatalf("load query zipcodes: %v", err)
	}
	if len(zipcodes) != 1 || zipcodes[0] != "00601" {
		t.Errorf("expected [00601], got %v", zipcodes)
	}
}

func TestReaderSkipsEmptyRows(t *testing.T) {
	path := writeTempCSV(t, "zipcode,rate\n00601,\n\n90210,\n")

	zipcodes, err := loadQueryZipcodes(path)
	if err != nil {
		t.Fatalf("load query zipcodes: %v", err)
	}
	if len(zipcodes) != 2 {
		t.Errorf("expected 2 zipcodes, got %d: %v", len(zipcodes), zipcodes)
	}
}
