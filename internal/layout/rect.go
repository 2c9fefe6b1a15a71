package layout

import "fmt"

// RectF is a rectangle with a top-left offset and a size.
type RectF struct {
	X, Y          float64
	Width, Height float64
}

// NewRectF creates a RectF from an offset and a size.
func NewRectF(offset OffsetF, size SizeF) RectF {
	return RectF{X: offset.X, Y: offset.Y, Width: size.Width, Height: size.Height}
}

// Offset returns the top-left corner.
func (r RectF) Offset() OffsetF {
	return OffsetF{X: r.X, Y: r.Y}
}

// Size returns the rectangle dimensions.
func (r RectF) Size() SizeF {
	return SizeF{Width: r.Width, Height: r.Height}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r RectF) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rectangle.
// Points on the right and bottom edges are outside.
func (r RectF) Contains(p OffsetF) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Translate returns a new RectF moved by delta.
func (r RectF) Translate(delta OffsetF) RectF {
	return RectF{X: r.X + delta.X, Y: r.Y + delta.Y, Width: r.Width, Height: r.Height}
}

// SetOffset returns the rectangle moved to offset.
func (r RectF) SetOffset(offset OffsetF) RectF {
	return RectF{X: offset.X, Y: offset.Y, Width: r.Width, Height: r.Height}
}

// SetSize returns the rectangle resized to size.
func (r RectF) SetSize(size SizeF) RectF {
	return RectF{X: r.X, Y: r.Y, Width: size.Width, Height: size.Height}
}

func (r RectF) String() string {
	return fmt.Sprintf("RectT (%.2f, %.2f) - [%.2f x %.2f]", r.X, r.Y, r.Width, r.Height)
}
