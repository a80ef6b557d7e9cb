package annotation

import "image"

// Record is the wire form of one region. ID is the 1-based position in the
// store at serialization time; it is re-derived from list position on read
// and carries no stable identity across undo or renumbering.
type Record struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Mode   string `json:"mode"`
	Center [2]int `json:"center"`
	Radius int    `json:"radius"`
}

// Records converts regions to export records in store order.
func Records(regions []Region) []Record {
	out := make([]Record, len(regions))
	for i, r := range regions {
		out[i] = Record{
			ID:     i + 1,
			Label:  r.Label,
			Mode:   r.Mode.String(),
			Center: [2]int{r.Center.X, r.Center.Y},
			Radius: r.Radius,
		}
	}
	return out
}

// FromRecords converts persisted records back into regions. Unknown mode
// strings decode as ModeHighlight and missing fields take their zero
// values; a malformed record degrades instead of failing the load.
func FromRecords(recs []Record) []Region {
	out := make([]Region, len(recs))
	for i, rec := range recs {
		out[i] = Region{
			Center: image.Pt(rec.Center[0], rec.Center[1]),
			Radius: rec.Radius,
			Mode:   ParseMode(rec.Mode),
			Label:  rec.Label,
		}
	}
	return out
}
