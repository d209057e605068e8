package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultAgingBoundaries are the day cutoffs separating aging buckets:
// current (0-30), 31-60, 61-90, and over 90.
var DefaultAgingBoundaries = []int{30, 60, 90}

// AgingBucket is one band of an aging report. ToDays is -1 for the open-ended
// last band.
type AgingBucket struct {
	Label    string          `json:"label"`
	FromDays int             `json:"from_days"`
	ToDays   int             `json:"to_days"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// NewAgingBuckets builds empty buckets from ascending day boundaries.
// Boundaries {30, 60, 90} yield bands 0-30, 31-60, 61-90, 90+.
func NewAgingBuckets(boundaries []int) []AgingBucket {
	if len(boundaries) == 0 {
		boundaries = DefaultAgingBoundaries
	}
	buckets := make([]AgingBucket, 0, len(boundaries)+1)
	from := 0
	for _, to := range boundaries {
		buckets = append(buckets, AgingBucket{
			Label:    fmt.Sprintf("%d-%d天", from, to),
			FromDays: from,
			ToDays:   to,
			Amount:   decimal.Zero,
		})
		from = to + 1
	}
	buckets = append(buckets, AgingBucket{
		Label:    fmt.Sprintf("%d天以上", from-1),
		FromDays: from,
		ToDays:   -1,
		Amount:   decimal.Zero,
	})
	return buckets
}

// BucketIndex returns which bucket an age in days falls into
func BucketIndex(buckets []AgingBucket, ageDays int) int {
	for i, b := range buckets {
		if b.ToDays < 0 || ageDays <= b.ToDays {
			return i
		}
	}
	return len(buckets) - 1
}

// TotalAmount sums the bucket amounts. An aging report is consistent only if
// this equals the report's outstanding total.
func TotalAmount(buckets []AgingBucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Amount)
	}
	return total
}
