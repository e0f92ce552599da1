package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the period p containing d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// Contains reports whether date is within the range, boundaries included.
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Identifier returns a short name of the range, like 2024-Q1 for a quarter.
func (r Range) Identifier() string {
	switch {
	case r == NewRange(r.From, Yearly):
		return fmt.Sprintf("%d", r.From.Year())
	case r == NewRange(r.From, Quarterly):
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case r == NewRange(r.From, Monthly):
		return fmt.Sprintf("%d-%02d", r.From.Year(), int(r.From.Month()))
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}
