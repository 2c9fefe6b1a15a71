// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package ace

import "github.com/grindlemire/go-ace/internal/layout"

// Direction specifies how a container places its children.
type Direction = layout.Direction

const (
	Stack  = layout.Stack
	Row    = layout.Row
	Column = layout.Column
)

// Value represents a dimension value (fixed, percent, or auto).
type Value = layout.Value

// Unit specifies how a Value is interpreted.
type Unit = layout.Unit

const (
	UnitAuto    = layout.UnitAuto
	UnitFixed   = layout.UnitFixed
	UnitPercent = layout.UnitPercent
)

// LayoutStyle holds the layout properties for a node.
type LayoutStyle = layout.Style

// OffsetF is a position in logical pixels.
type OffsetF = layout.OffsetF

// SizeF is a width/height pair in logical pixels.
type SizeF = layout.SizeF

// RectF is a rectangle with an offset and a size.
type RectF = layout.RectF

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// Auto returns a Value computed from content.
func Auto() Value { return layout.Auto() }

// Fixed returns a Value of n logical pixels.
func Fixed(n float64) Value { return layout.Fixed(n) }

// Percent returns a Value as a percentage of available space.
func Percent(p float64) Value { return layout.Percent(p) }

// DefaultLayoutStyle returns a LayoutStyle with auto sizing.
func DefaultLayoutStyle() LayoutStyle { return layout.DefaultStyle() }

// NewOffsetF creates an OffsetF.
func NewOffsetF(x, y float64) OffsetF { return layout.NewOffsetF(x, y) }

// NewSizeF creates a SizeF.
func NewSizeF(w, h float64) SizeF { return layout.NewSizeF(w, h) }

// NewRectF creates a RectF from an offset and a size.
func NewRectF(offset OffsetF, size SizeF) RectF { return layout.NewRectF(offset, size) }

// EdgeAll returns Edges with the same value on all sides.
func EdgeAll(n float64) Edges { return layout.EdgeAll(n) }

// NearEqual reports whether a and b differ by less than epsilon.
func NearEqual(a, b, epsilon float64) bool { return layout.NearEqual(a, b, epsilon) }
