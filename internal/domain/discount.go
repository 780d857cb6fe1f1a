package domain

// DiscountKind selects how ValueOff is interpreted.
type DiscountKind string

const (
	// DiscountPercent reduces the total by ValueOff percent of the
	// pre-discount total.
	DiscountPercent DiscountKind = "percent"
	// DiscountAmount reduces the total by ValueOff cents.
	DiscountAmount DiscountKind = "amount"
)

// DiscountCode maps a code string to a price reduction. Codes are seeded
// out of band; there are no mutation operations.
type DiscountCode struct {
	Code     string       `json:"code"`
	Kind     DiscountKind `json:"kind"`
	ValueOff int64        `json:"valueOff"`
}

// ReductionFor returns how many cents the code takes off a cart total.
// The result is clamped so a discount never drives a total negative.
func (d DiscountCode) ReductionFor(totalCents int64) int64 {
	if totalCents <= 0 {
		return 0
	}
	var off int64
	switch d.Kind {
	case DiscountPercent:
		off = totalCents * d.ValueOff / 100
	case DiscountAmount:
		off = d.ValueOff
	}
	if off < 0 {
		off = 0
	}
	if off > totalCents {
		off = totalCents
	}
	return off
}
