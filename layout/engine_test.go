package layout

import (
	"image"
	"strings"
	"testing"

	"github.com/soocke/circlemark/domain/annotation"
)

func TestPlace_NoTwoRectanglesOverlap(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bounds := image.Rect(0, 0, 1200, 800)
	// several regions crowded around the same spot
	var regions []annotation.Region
	for i := 0; i < 8; i++ {
		regions = append(regions, annotation.Region{
			Center: image.Pt(600+i, 400),
			Radius: 40,
			Mode:   annotation.ModeHighlight,
			Label:  "item",
		})
	}
	placements, err := e.Place(regions, bounds)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(placements) != len(regions) {
		t.Fatalf("expected %d placements, got %d", len(regions), len(placements))
	}
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			if placements[i].Rect.Overlaps(placements[j].Rect) {
				t.Fatalf("placements %d and %d overlap: %v %v",
					i, j, placements[i].Rect, placements[j].Rect)
			}
		}
	}
}

func TestPlace_EmptyLabelsSkipped(t *testing.T) {
	e, _ := New()
	placements, err := e.Place([]annotation.Region{
		{Center: image.Pt(100, 100), Radius: 20, Label: ""},
		{Center: image.Pt(200, 100), Radius: 20, Label: "kept"},
	}, image.Rect(0, 0, 600, 400))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}
	// position in store is preserved in the numbering
	if !strings.HasPrefix(placements[0].Text, "#2 ") {
		t.Fatalf("unexpected label text %q", placements[0].Text)
	}
}

func TestPlace_TextFormat(t *testing.T) {
	e, _ := New()
	placements, err := e.Place([]annotation.Region{
		{Center: image.Pt(300, 200), Radius: 30, Mode: annotation.ModeBlur, Label: "face"},
	}, image.Rect(0, 0, 600, 400))
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placements[0].Text != "#1 [BLU] face" {
		t.Fatalf("label text %q", placements[0].Text)
	}
	if placements[0].Connector[1] != image.Pt(300, 200) {
		t.Fatalf("connector does not end at circle center: %v", placements[0].Connector)
	}
}

func TestPlace_FallbackStacksWhenExhausted(t *testing.T) {
	e, _ := New()
	// tiny image: ring candidates cannot fit many labels, forcing the
	// stacking fallback, which must still avoid overlaps
	bounds := image.Rect(0, 0, 160, 140)
	var regions []annotation.Region
	for i := 0; i < 6; i++ {
		regions = append(regions, annotation.Region{
			Center: image.Pt(80, 70),
			Radius: 30,
			Mode:   annotation.ModeDarken,
			Label:  "dense",
		})
	}
	placements, err := e.Place(regions, bounds)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(placements) != len(regions) {
		t.Fatalf("fallback dropped labels: %d of %d", len(placements), len(regions))
	}
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			if placements[i].Rect.Overlaps(placements[j].Rect) {
				t.Fatalf("fallback produced overlap between %d and %d", i, j)
			}
		}
	}
}

func TestPlace_RingCandidateStaysInBounds(t *testing.T) {
	e, _ := New()
	bounds := image.Rect(0, 0, 800, 600)
	placements, err := e.Place([]annotation.Region{
		{Center: image.Pt(400, 300), Radius: 40, Mode: annotation.ModeInvert, Label: "ok"},
	}, bounds)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !placements[0].Rect.In(bounds) {
		t.Fatalf("placement %v escapes bounds %v", placements[0].Rect, bounds)
	}
}

func TestPlaceDraft_PrefersAboveCircle(t *testing.T) {
	e, _ := New()
	bounds := image.Rect(0, 0, 800, 600)
	p, err := e.PlaceDraft(image.Pt(400, 300), 50, "typing", annotation.ModeBlur, bounds)
	if err != nil {
		t.Fatalf("PlaceDraft: %v", err)
	}
	if p.Text != "[BLU] typing_" {
		t.Fatalf("draft text %q", p.Text)
	}
	if p.Rect.Max.Y > 300-50 {
		t.Fatalf("draft not above the circle: %v", p.Rect)
	}
	if !p.Rect.In(bounds) {
		t.Fatalf("draft escapes bounds: %v", p.Rect)
	}
}

func TestPlaceDraft_ClampedNearEdges(t *testing.T) {
	e, _ := New()
	bounds := image.Rect(0, 0, 400, 300)
	p, err := e.PlaceDraft(image.Pt(5, 5), 40, "edge", annotation.ModeOutline, bounds)
	if err != nil {
		t.Fatalf("PlaceDraft: %v", err)
	}
	if !p.Rect.In(bounds) {
		t.Fatalf("clamped draft escapes bounds: %v", p.Rect)
	}
}
