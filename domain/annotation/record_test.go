package annotation

import (
	"image"
	"testing"
)

func TestRecords_RoundTrip(t *testing.T) {
	regions := []Region{
		{Center: image.Pt(100, 100), Radius: 50, Mode: ModeBlur, Label: "face"},
		{Center: image.Pt(-3, 7), Radius: 6, Mode: ModeOutline, Label: ""},
		{Center: image.Pt(0, 0), Radius: 12, Mode: ModeGrayscale, Label: "plate #2"},
	}
	back := FromRecords(Records(regions))
	if len(back) != len(regions) {
		t.Fatalf("length mismatch: %d vs %d", len(back), len(regions))
	}
	for i := range regions {
		if back[i] != regions[i] {
			t.Fatalf("region %d changed across round trip: %+v vs %+v", i, back[i], regions[i])
		}
	}
}

func TestRecords_ExportShape(t *testing.T) {
	recs := Records([]Region{{Center: image.Pt(100, 100), Radius: 50, Mode: ModeBlur, Label: "face"}})
	want := Record{ID: 1, Label: "face", Mode: "blur", Center: [2]int{100, 100}, Radius: 50}
	if recs[0] != want {
		t.Fatalf("unexpected record %+v, want %+v", recs[0], want)
	}
}

func TestFromRecords_UnknownModeDefaultsToHighlight(t *testing.T) {
	regions := FromRecords([]Record{
		{ID: 1, Mode: "sepia", Center: [2]int{1, 2}, Radius: 9},
		{ID: 2, Center: [2]int{3, 4}, Radius: 8}, // mode missing entirely
	})
	for i, r := range regions {
		if r.Mode != ModeHighlight {
			t.Fatalf("record %d: expected highlight fallback, got %v", i, r.Mode)
		}
	}
}

func TestParseMode_AllNamesRoundTrip(t *testing.T) {
	for m := ModeHighlight; m < modeCount; m++ {
		if got := ParseMode(m.String()); got != m {
			t.Fatalf("ParseMode(%q) = %v", m.String(), got)
		}
	}
}

func TestMode_Codes(t *testing.T) {
	cases := map[Mode]string{
		ModeHighlight: "HIG",
		ModeBlur:      "BLU",
		ModePixelate:  "PIX",
		ModeDarken:    "DAR",
		ModeGrayscale: "GRA",
		ModeInvert:    "INV",
		ModeOutline:   "OUT",
	}
	for m, want := range cases {
		if got := m.Code(); got != want {
			t.Errorf("%v.Code() = %q, want %q", m, got, want)
		}
	}
}
