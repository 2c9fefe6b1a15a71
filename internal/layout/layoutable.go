package layout

// Layoutable is the interface for anything that can participate in layout calculation.
// The layout engine works entirely with this interface.
type Layoutable interface {
	// LayoutStyle returns the layout style properties for this node.
	LayoutStyle() Style

	// LayoutChildren returns the children to be laid out.
	LayoutChildren() []Layoutable

	// MeasuredSize returns a size already measured during the current pass.
	// The engine reuses it instead of measuring the subtree again.
	MeasuredSize() (SizeF, bool)

	// SetMeasuredSize stores the measured size and the constraint it was measured under.
	SetMeasuredSize(size SizeF, constraint SizeF)

	// SetFrame stores the final frame, relative to the parent's frame.
	SetFrame(frame RectF)
}
