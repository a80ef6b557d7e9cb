// Package export persists annotation sets: one JSON document per image and
// a CSV batch summary.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/circlemark/domain/annotation"
)

// Document is the persisted annotation set for one source image. Object IDs
// are 1-based list positions re-derived on read.
type Document struct {
	SourceImage string              `json:"source_image"`
	Timestamp   string              `json:"timestamp"`
	Objects     []annotation.Record `json:"objects"`
}

// NewDocument builds a document from regions in store order.
func NewDocument(sourceImage string, regions []annotation.Region, now time.Time) Document {
	return Document{
		SourceImage: sourceImage,
		Timestamp:   now.Format(time.RFC3339),
		Objects:     annotation.Records(regions),
	}
}

// Regions decodes the document's objects back into regions. Unknown modes
// and missing fields degrade to safe defaults instead of failing.
func (d Document) Regions() []annotation.Region {
	return annotation.FromRecords(d.Objects)
}

// WriteDocument writes the document as indented JSON.
func WriteDocument(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write labels: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode labels: %w", err)
	}
	return nil
}

// ReadDocument reads a document written by WriteDocument.
func ReadDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("read labels: %w", err)
	}
	defer f.Close()
	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode labels: %w", err)
	}
	return doc, nil
}

// SummaryRow is one line of the batch summary.
type SummaryRow struct {
	Image   string
	Objects int
	Labels  []string
}

// SummaryFromDocument builds a summary row, skipping empty labels.
func SummaryFromDocument(doc Document) SummaryRow {
	row := SummaryRow{Image: doc.SourceImage, Objects: len(doc.Objects)}
	for _, o := range doc.Objects {
		if o.Label != "" {
			row.Labels = append(row.Labels, o.Label)
		}
	}
	return row
}

// WriteSummaryCSV writes the batch summary with a header row and a trailing
// totals line.
func WriteSummaryCSV(path string, rows []SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"image", "objects", "labels"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	total := 0
	for _, row := range rows {
		labels := "(no labels)"
		if len(row.Labels) > 0 {
			labels = strings.Join(row.Labels, ", ")
		}
		if err := w.Write([]string{row.Image, strconv.Itoa(row.Objects), labels}); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
		total += row.Objects
	}
	if err := w.Write([]string{"TOTAL", strconv.Itoa(total), strconv.Itoa(len(rows)) + " images"}); err != nil {
		return fmt.Errorf("write summary totals: %w", err)
	}
	w.Flush()
	return w.Error()
}
