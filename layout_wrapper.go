package ace

import "github.com/grindlemire/go-ace/internal/layout"

// layoutPass collects the wrappers created while laying out one dirty root.
type layoutPass struct {
	id       uint64
	wrappers []*LayoutWrapper
}

func (p *layoutPass) wrap(host *FrameNode, isRoot bool) *LayoutWrapper {
	w := &LayoutWrapper{host: host, pass: p, isRoot: isRoot}
	p.wrappers = append(p.wrappers, w)
	return w
}

// LayoutWrapper adapts a FrameNode to the layout engine for one pass.
type LayoutWrapper struct {
	host     *FrameNode
	pass     *layoutPass
	isRoot   bool
	measured bool
	arranged bool
	children []layout.Layoutable
}

// HostNode returns the wrapped frame node.
func (w *LayoutWrapper) HostNode() *FrameNode {
	return w.host
}

// LayoutProperty returns the host's layout property.
func (w *LayoutWrapper) LayoutProperty() *LayoutProperty {
	return w.host.layoutProperty
}

// GeometryNode returns the host's geometry node.
func (w *LayoutWrapper) GeometryNode() *GeometryNode {
	return w.host.geometryNode
}

// IsRootMeasureNode reports whether the wrapper is the root of its pass.
func (w *LayoutWrapper) IsRootMeasureNode() bool {
	return w.isRoot
}

// IsMeasured reports whether the host was measured in this pass.
func (w *LayoutWrapper) IsMeasured() bool {
	return w.measured
}

// IsArranged reports whether the host was given a frame in this pass.
func (w *LayoutWrapper) IsArranged() bool {
	return w.arranged
}

func (w *LayoutWrapper) LayoutStyle() layout.Style {
	return w.host.layoutProperty.LayoutStyle()
}

func (w *LayoutWrapper) LayoutChildren() []layout.Layoutable {
	if w.children == nil {
		frames := w.host.LayoutFrameChildren()
		w.children = make([]layout.Layoutable, len(frames))
		for i, child := range frames {
			w.children[i] = w.pass.wrap(child, false)
		}
	}
	return w.children
}

func (w *LayoutWrapper) MeasuredSize() (SizeF, bool) {
	g := w.host.geometryNode
	if w.measured || g.measuredPass == w.pass.id {
		return g.measuredSize, true
	}
	return SizeF{}, false
}

func (w *LayoutWrapper) SetMeasuredSize(size, constraint SizeF) {
	w.host.geometryNode.setMeasured(size, constraint, w.pass.id)
	w.measured = true
}

func (w *LayoutWrapper) SetFrame(frame RectF) {
	w.host.geometryNode.SetFrame(frame)
	w.arranged = true
}
