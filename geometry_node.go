package ace

// GeometryNode holds the layout output of a FrameNode.
type GeometryNode struct {
	// frame is relative to the parent frame node.
	frame            RectF
	parentConstraint *SizeF
	measuredSize     SizeF
	// measuredPass is the layout pass the node was last measured in.
	measuredPass uint64
}

// Frame returns the laid-out rect relative to the parent frame.
func (g *GeometryNode) Frame() RectF {
	return g.frame
}

// SetFrame replaces the laid-out rect.
func (g *GeometryNode) SetFrame(frame RectF) {
	g.frame = frame
}

// FrameOffset returns the frame's offset.
func (g *GeometryNode) FrameOffset() OffsetF {
	return g.frame.Offset()
}

// FrameSize returns the frame's size.
func (g *GeometryNode) FrameSize() SizeF {
	return g.frame.Size()
}

// ParentLayoutConstraint returns the constraint the node was last measured
// under, if it has been measured.
func (g *GeometryNode) ParentLayoutConstraint() (SizeF, bool) {
	if g.parentConstraint == nil {
		return SizeF{}, false
	}
	return *g.parentConstraint, true
}

// MeasuredSize returns the last measured size.
func (g *GeometryNode) MeasuredSize() SizeF {
	return g.measuredSize
}

func (g *GeometryNode) setMeasured(size, constraint SizeF, pass uint64) {
	g.measuredSize = size
	g.parentConstraint = &constraint
	g.measuredPass = pass
}
