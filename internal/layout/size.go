package layout

import "fmt"

// SizeF represents a width and height in logical pixels.
type SizeF struct {
	Width, Height float64
}

// NewSizeF creates a SizeF.
func NewSizeF(width, height float64) SizeF {
	return SizeF{Width: width, Height: height}
}

// IsPositive returns true if both dimensions are greater than zero.
func (s SizeF) IsPositive() bool {
	return s.Width > 0 && s.Height > 0
}

// IsEmpty returns true if either dimension is zero or negative.
func (s SizeF) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// NearEqual reports whether both dimensions differ by less than epsilon.
func (s SizeF) NearEqual(other SizeF, epsilon float64) bool {
	return NearEqual(s.Width, other.Width, epsilon) && NearEqual(s.Height, other.Height, epsilon)
}

// Shrink returns the size reduced by the given edges, never below zero.
func (s SizeF) Shrink(edges Edges) SizeF {
	return SizeF{
		Width:  max(0, s.Width-edges.Horizontal()),
		Height: max(0, s.Height-edges.Vertical()),
	}
}

func (s SizeF) String() string {
	return fmt.Sprintf("[%.2f x %.2f]", s.Width, s.Height)
}
