package layout

import (
	"fmt"
	"math"
)

// OffsetF represents an (X, Y) position in logical pixels.
type OffsetF struct {
	X, Y float64
}

// NewOffsetF creates an OffsetF.
func NewOffsetF(x, y float64) OffsetF {
	return OffsetF{X: x, Y: y}
}

// Add returns a new OffsetF moved by other.
func (o OffsetF) Add(other OffsetF) OffsetF {
	return OffsetF{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns a new OffsetF with other subtracted.
func (o OffsetF) Sub(other OffsetF) OffsetF {
	return OffsetF{X: o.X - other.X, Y: o.Y - other.Y}
}

// NearEqual reports whether both coordinates differ by less than epsilon.
func (o OffsetF) NearEqual(other OffsetF, epsilon float64) bool {
	return NearEqual(o.X, other.X, epsilon) && NearEqual(o.Y, other.Y, epsilon)
}

func (o OffsetF) String() string {
	return fmt.Sprintf("Offset (%.2f, %.2f)", o.X, o.Y)
}

// NearEqual reports whether a and b differ by less than epsilon.
func NearEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}
