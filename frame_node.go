package ace

import (
	"github.com/grindlemire/go-ace/internal/debug"
)

// FrameNode is a UINode with a render context and geometry.
type FrameNode struct {
	*UINode

	renderContext  RenderContext
	geometryNode   *GeometryNode
	layoutProperty *LayoutProperty
	focusHub       *FocusHub

	inspectorID    string
	layoutPriority int

	needSyncRenderTree bool
	renderChildren     []*FrameNode
}

// FrameNodeOption configures a FrameNode at construction.
type FrameNodeOption func(*FrameNode)

// WithLayoutStyle sets the node's layout style.
func WithLayoutStyle(style LayoutStyle) FrameNodeOption {
	return func(f *FrameNode) {
		f.layoutProperty.UpdateLayoutStyle(style)
	}
}

// WithSize fixes the node's size.
func WithSize(width, height float64) FrameNodeOption {
	return func(f *FrameNode) {
		f.layoutProperty.UpdateUserDefinedIdealSize(NewSizeF(width, height))
	}
}

// WithPosition offsets the node inside a Stack parent.
func WithPosition(x, y float64) FrameNodeOption {
	return func(f *FrameNode) {
		f.layoutProperty.UpdatePosition(NewOffsetF(x, y))
	}
}

// WithVisibility sets the node's visibility.
func WithVisibility(v Visibility) FrameNodeOption {
	return func(f *FrameNode) {
		f.layoutProperty.UpdateVisibility(v)
	}
}

// WithInspectorID sets the component identity used to tell a true
// replacement from a stale duplicate.
func WithInspectorID(id string) FrameNodeOption {
	return func(f *FrameNode) {
		f.inspectorID = id
	}
}

// WithRenderContext replaces the default MemRenderContext.
func WithRenderContext(rc RenderContext) FrameNodeOption {
	return func(f *FrameNode) {
		if rc != nil {
			f.renderContext = rc
		}
	}
}

// WithFocusable makes the node's focus hub focusable.
func WithFocusable(focusable bool) FrameNodeOption {
	return func(f *FrameNode) {
		f.focusHub.focusable = focusable
	}
}

// WithGeometryTransition joins the transition registered under id.
func WithGeometryTransition(id string, followWithoutTransition, doRegisterSharedTransition bool) FrameNodeOption {
	return func(f *FrameNode) {
		f.UpdateGeometryTransition(id, followWithoutTransition, doRegisterSharedTransition)
	}
}

// NewFrameNode creates a frame node with a fresh id from reg.
func NewFrameNode(reg *ElementRegister, tag string, opts ...FrameNodeOption) *FrameNode {
	f := &FrameNode{
		UINode:         newUINode(reg, tag),
		renderContext:  NewMemRenderContext(),
		geometryNode:   &GeometryNode{},
		layoutProperty: NewLayoutProperty(),
		focusHub:       NewFocusHub(false),
	}
	f.frame = f
	for _, opt := range opts {
		opt(f)
	}
	f.renderContext.SetHostNode(f)
	return f
}

// Node returns the underlying UINode.
func (f *FrameNode) Node() *UINode {
	return f.UINode
}

// RenderContext returns the node's render context.
func (f *FrameNode) RenderContext() RenderContext {
	return f.renderContext
}

// GeometryNode returns the node's layout output.
func (f *FrameNode) GeometryNode() *GeometryNode {
	return f.geometryNode
}

// LayoutProperty returns the node's layout input.
func (f *FrameNode) LayoutProperty() *LayoutProperty {
	return f.layoutProperty
}

// SetLayoutProperty replaces the node's layout input, keeping its transition.
func (f *FrameNode) SetLayoutProperty(p *LayoutProperty) {
	if p == nil {
		return
	}
	p.geometryTransition = f.layoutProperty.geometryTransition
	f.layoutProperty = p
}

// FocusHub returns the node's focus hub.
func (f *FrameNode) FocusHub() *FocusHub {
	return f.focusHub
}

// InspectorID returns the node's component identity.
func (f *FrameNode) InspectorID() string {
	return f.inspectorID
}

// LayoutPriority returns the layout ordering priority: 1 lays out first,
// -1 lays out after every other dirty node.
func (f *FrameNode) LayoutPriority() int {
	return f.layoutPriority
}

// SetLayoutPriority sets the layout ordering priority.
func (f *FrameNode) SetLayoutPriority(priority int) {
	f.layoutPriority = priority
}

// GeometryTransition returns the transition the node takes part in, or nil.
func (f *FrameNode) GeometryTransition() *GeometryTransition {
	return f.layoutProperty.geometryTransition
}

// UpdateGeometryTransition moves the node to the transition registered under
// id. An empty id unbinds the node.
func (f *FrameNode) UpdateGeometryTransition(id string, followWithoutTransition, doRegisterSharedTransition bool) {
	cur := f.layoutProperty.geometryTransition
	next := f.register.GetOrCreateGeometryTransition(id, followWithoutTransition, doRegisterSharedTransition)
	if cur == next {
		return
	}
	if cur != nil {
		cur.Update(f, f)
		cur.OnFollowWithoutTransition(FollowRestore)
		cur.Update(f, nil)
	}
	f.layoutProperty.geometryTransition = next
	if next == nil {
		return
	}
	if cur != nil {
		if !next.Update(nil, f) {
			debug.Warn("geometry transition already bound", "id", id, "node", f.id)
		}
		return
	}
	if next.IsInAndOutValid() {
		debug.Warn("geometry transition id reused", "id", id, "node", f.id)
	}
	// Nodes off the main tree build when they attach.
	if f.onMainTree {
		next.Build(f, true)
	}
}

// LayoutFrameChildren returns the frame nodes laid out directly under f.
// Structural wrappers are flattened and Gone nodes are skipped.
func (f *FrameNode) LayoutFrameChildren() []*FrameNode {
	var out []*FrameNode
	var collect func(n *UINode)
	collect = func(n *UINode) {
		for _, child := range n.children {
			if child.frame == nil {
				collect(child)
				continue
			}
			if child.frame.layoutProperty.Visibility() == Gone {
				continue
			}
			out = append(out, child.frame)
		}
	}
	collect(f.UINode)
	return out
}

// RenderChildren returns the frame nodes painted under f as of the last
// render tree sync.
func (f *FrameNode) RenderChildren() []*FrameNode {
	return f.renderChildren
}

// NeedSyncRenderTree reports whether the render children are stale.
func (f *FrameNode) NeedSyncRenderTree() bool {
	return f.needSyncRenderTree
}

// SyncRenderTree regenerates the render children if they are stale.
func (f *FrameNode) SyncRenderTree() {
	if !f.needSyncRenderTree {
		return
	}
	f.needSyncRenderTree = false
	f.renderChildren = f.GenerateOneDepthVisibleFrameWithTransition(nil)
}

// OnTransitionOutFinish purges the node once its exit transition ends.
func (f *FrameNode) OnTransitionOutFinish() {
	parent := f.Parent()
	if gt := f.GeometryTransition(); gt != nil {
		gt.OnFollowWithoutTransition(FollowRestore)
	}
	if parent == nil || !parent.RemoveDisappearingChild(f.UINode) {
		return
	}
	f.ResetParent()
	parent.MarkNeedSyncRenderTree(true)
	debug.Debug("transition out finished", "node", f.id, "tag", f.tag)
}

func (f *FrameNode) isVisible() bool {
	return f.layoutProperty.Visibility() == Visible
}

func (f *FrameNode) removeImmediately() bool {
	if f.renderContext.HasTransitionOutAnimation() {
		return false
	}
	if gt := f.GeometryTransition(); gt != nil && gt.IsNodeOutAndActive(f) {
		return false
	}
	return true
}

func (f *FrameNode) onAttachToMainTree(recursive bool) {
	f.renderContext.OnNodeAppear(recursive)
	if f.context != nil {
		f.context.FocusManager().Register(f.focusHub)
	}
	if !recursive {
		f.markDirtyNode(PropertyUpdateMeasure)
	}
	f.markNeedSyncRenderTree(true)
	// Build may move the node under a leaving partner, so it runs last.
	if gt := f.GeometryTransition(); gt != nil && !gt.IsNodeIn(f) {
		gt.Build(f, true)
	}
}

func (f *FrameNode) onDetachFromMainTree(recursive bool) {
	f.renderContext.OnNodeDisappear(recursive)
	if f.context != nil {
		f.context.FocusManager().Unregister(f.focusHub)
	}
	if !recursive {
		if parent := f.AncestorFrameNode(); parent != nil {
			parent.markDirtyNode(PropertyUpdateMeasure)
		}
	}
}

func (f *FrameNode) markDirtyNode(flag PropertyChangeFlag) {
	if flag == PropertyUpdateNormal {
		return
	}
	f.layoutProperty.UpdatePropertyChangeFlag(flag)
	ctx := f.context
	if ctx == nil || !CheckNeedRequestLayout(flag) {
		if ctx != nil {
			ctx.RequestFrame()
		}
		return
	}
	ctx.AddDirtyLayoutNode(f)
	if flag&PropertyUpdateMeasure == 0 {
		return
	}
	for p := f.AncestorFrameNode(); p != nil; p = p.AncestorFrameNode() {
		if p.layoutProperty.PropertyChangeFlag()&PropertyUpdateByChildRequest != 0 {
			return
		}
		p.layoutProperty.UpdatePropertyChangeFlag(PropertyUpdateByChildRequest)
		if p.layoutProperty.isLayoutBoundary() || p.AncestorFrameNode() == nil {
			ctx.AddDirtyLayoutNode(p)
			return
		}
	}
}

func (f *FrameNode) markNeedSyncRenderTree(bool) {
	f.needSyncRenderTree = true
	if f.context != nil {
		f.context.RequestFrame()
	}
}
