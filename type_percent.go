package portfolio

import (
	"fmt"
	"math"
)

// Percent is a percentage, 20 means 20%.
type Percent float64

const percentTolerance = 1e-4

// Equal reports whether p and q are the same percentage, up to float rounding.
func (p Percent) Equal(q Percent) bool { return math.Abs(float64(p-q)) < percentTolerance }

// SignedString formats p with two decimals and its sign. A percentage that rounds to zero is "-".
func (p Percent) SignedString() string {
	if math.Round(float64(p)*100) == 0 {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", float64(p))
}
