package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period used to group realized P&L.
type Period int

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		return fmt.Sprintf("Period(%d)", int(p))
	}
}

// ParsePeriod parses "month", "quarter" or "year", ignoring case. The "-ly" forms are also accepted.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "month", "monthly":
		return Monthly, nil
	case "quarter", "quarterly":
		return Quarterly, nil
	case "year", "yearly":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %q, want month, quarter or year", p)
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Quarterly:
		return New(d.y, d.m-(d.m-1)%3, 1)
	case Yearly:
		return New(d.y, 1, 1)
	default:
		return New(d.y, d.m, 1)
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	start := d.StartOf(p)
	switch p {
	case Quarterly:
		return New(start.y, start.m+3, 0)
	case Yearly:
		return New(start.y+1, 1, 0)
	default:
		return New(start.y, start.m+1, 0)
	}
}
