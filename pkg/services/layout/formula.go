package layout

import (
	"fmt"
	"strings"

	"github.com/hr-tools/punchbook/pkg/models/domain"
)

// Bucket is a contiguous sub-range of day-slots aggregated by one
// total column. From and To are inclusive zero-based slot indices.
type Bucket struct {
	Label string
	From  int
	To    int
}

// Buckets partitions slotCount day-slots at the configured boundary
// day. A boundary of 0, or one at or past the period end, yields a
// single whole-period bucket.
func Buckets(cfg domain.LayoutConfig, slotCount int) []Bucket {
	b := cfg.BucketBoundary
	if b <= 0 || b >= slotCount {
		return []Bucket{{Label: "Total", From: 0, To: slotCount - 1}}
	}
	return []Bucket{
		{Label: fmt.Sprintf("Total (1-%d)", b), From: 0, To: b - 1},
		{Label: fmt.Sprintf("Total (%d-End)", b+1), From: b, To: slotCount - 1},
	}
}

// TotalFormula builds the summation expression over a bucket's
// duration cells for one user row.
func (m Mapper) TotalFormula(b Bucket, row int) string {
	addrs := make([]string, 0, b.To-b.From+1)
	for slot := b.From; slot <= b.To; slot++ {
		addrs = append(addrs, m.CellAddr(row, m.Column(slot, FieldDuration)))
	}
	return "=" + strings.Join(addrs, "+")
}

// DurationFormula builds the checkout-minus-checkin expression for one
// day-slot of one user row.
func (m Mapper) DurationFormula(row, slot int) string {
	out := m.CellAddr(row, m.Column(slot, FieldCheckOut))
	in := m.CellAddr(row, m.Column(slot, FieldCheckIn))
	return "=" + out + "-" + in
}

// BucketOf returns the bucket containing the given slot index.
func BucketOf(buckets []Bucket, slot int) (int, Bucket) {
	for i, b := range buckets {
		if slot >= b.From && slot <= b.To {
			return i, b
		}
	}
	return len(buckets) - 1, buckets[len(buckets)-1]
}
