package slcsp

import "testing"

func TestAreaIndexResolve(t *testing.T) {
	rows := []ServiceArea{
		{Zipcode: "00601", Area: RatingArea{State: "PA", Area: 1}},
		// Same zipcode, different county, same rating area — still unambiguous.
		{Zipcode: "00601", Area: RatingArea{State: "PA", Area: 1}},
		{Zipcode: "36749", Area: RatingArea{State: "GA", Area: 1}},
		{Zipcode: "36749", Area: RatingArea{State: "GA", Area: 2}},
	}
	idx := BuildAreaIndex(rows)

	area, res := idx.Resolve("00601")
	if res != Resolved {
		t.Fatalf("expected 00601 resolved, got %s", res)
	}
	if area.State != "PA" || area.Area != 1 {
		t.Errorf("expected (PA, 1), got (%s, %d)", area.State, area.Area)
	}

	if _, res := idx.Resolve("36749"); res != AmbiguousArea {
		t.Errorf("expected 36749 ambiguous, got %s", res)
	}

	if _, res := idx.Resolve("99999"); res != UnknownZipcode {
		t.Errorf("expected 99999 unknown, got %s", res)
	}
}

func TestAreaIndexResolveMalformedZipcodes(t *testing.T) {
	idx := BuildAreaIndex([]ServiceArea{
		{Zipcode: "00601", Area: RatingArea{State: "PA", Area: 1}},
	})

	for _, zip := range []string{"", "1234", "123456", "0060a", "00 601"} {
		if _, res := idx.Resolve(zip); res != MalformedZipcode {
			t.Errorf("Resolve(%q) = %s, want malformed_zipcode", zip, res)
		}
	}
}

func TestAreaIndexDistinctByAreaNotRowCount(t *testing.T) {
	rows := []ServiceArea{
		{Zipcode: "54321", Area: RatingArea{State: "WI", Area: 11}},
		{Zipcode: "54321", Area: RatingArea{State: "WI", Area: 11}},
		{Zipcode: "54321", Area: RatingArea{State: "WI", Area: 11}},
	}
	idx := BuildAreaIndex(rows)

	if got := len(idx["54321"]); got != 1 {
		t.Fatalf("expected 1 distinct area for 54321, got %d", got)
	}
	if _, res := idx.Resolve("54321"); res != Resolved {
		t.Errorf("expected 54321 resolved, got %s", res)
	}
}
