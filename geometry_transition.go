package ace

import (
	"fmt"
	"weak"

	"github.com/grindlemire/go-ace/internal/debug"
)

// TransitionState is the state of a transition's entering node.
type TransitionState uint8

const (
	// TransitionIdle means the in-node lays out normally.
	TransitionIdle TransitionState = iota
	// TransitionActive means the in-node lays out at the out-node's size.
	TransitionActive
	// TransitionIdentity means the in-node has taken its real layout and
	// waits for one more pass to settle.
	TransitionIdentity
)

func (s TransitionState) String() string {
	switch s {
	case TransitionActive:
		return "active"
	case TransitionIdentity:
		return "identity"
	default:
		return "idle"
	}
}

// GeometryTransition matches an entering node and a leaving node that share
// a transition id, so the two move like one element across a layout change.
//
// Nodes are referenced weakly. Every phase is a no-op when its nodes are gone
// or the pair is not valid.
type GeometryTransition struct {
	id string

	inNode  weak.Pointer[FrameNode]
	outNode weak.Pointer[FrameNode]
	state   TransitionState

	hasInAnim  bool
	hasOutAnim bool

	followWithoutTransition    bool
	doRegisterSharedTransition bool

	// Window geometry of the out-node when it started leaving.
	outNodeParentPos OffsetF
	outNodePos       OffsetF
	outNodeSize      SizeF
	// outNodeTargetAbsRect is the window rect the out-node animates to.
	outNodeTargetAbsRect  *RectF
	inNodeActiveFrameSize SizeF

	layoutPropertyIn  *LayoutProperty
	layoutPropertyOut *LayoutProperty

	animationOption AnimationOption
	resyncOption    *AnimationOption

	holder *FrameNode
}

// NewGeometryTransition creates an empty transition. Most callers want
// ElementRegister.GetOrCreateGeometryTransition.
func NewGeometryTransition(id string, followWithoutTransition, doRegisterSharedTransition bool) *GeometryTransition {
	return &GeometryTransition{
		id:                         id,
		followWithoutTransition:    followWithoutTransition,
		doRegisterSharedTransition: doRegisterSharedTransition,
	}
}

// ID returns the transition id.
func (gt *GeometryTransition) ID() string {
	return gt.id
}

// InNode returns the entering node, or nil.
func (gt *GeometryTransition) InNode() *FrameNode {
	return gt.inNode.Value()
}

// OutNode returns the leaving node, or nil.
func (gt *GeometryTransition) OutNode() *FrameNode {
	return gt.outNode.Value()
}

// State returns the in-node's state.
func (gt *GeometryTransition) State() TransitionState {
	return gt.state
}

// HasInAnim reports whether the in-node will animate.
func (gt *GeometryTransition) HasInAnim() bool {
	return gt.hasInAnim
}

// HasOutAnim reports whether the out-node will animate.
func (gt *GeometryTransition) HasOutAnim() bool {
	return gt.hasOutAnim
}

// Holder returns the placeholder standing in for a following in-node, or nil.
func (gt *GeometryTransition) Holder() *FrameNode {
	return gt.holder
}

// Build records that node carrying this transition is entering
// (isNodeIn) or leaving the tree, and decides whether the pair animates.
func (gt *GeometryTransition) Build(node *FrameNode, isNodeIn bool) {
	if node == nil {
		return
	}
	gt.state = TransitionIdle
	gt.outNodeTargetAbsRect = nil

	in, out := gt.InNode(), gt.OutNode()
	if !isNodeIn && (node == in || node == out) {
		gt.swapInAndOut(node == in)
		gt.recordOutNodeFrame()
		gt.hasOutAnim = true
		node.focusHub.SetEnabled(false)
	}
	if isNodeIn && node != in {
		if in != nil && in.inspectorID == node.inspectorID && in.renderContext.HasSandBox() {
			debug.Debug("geometry transition skips same identity replace", "id", gt.id, "node", node.id)
			return
		}
		replace := in == nil || !in.onMainTree || in.isRemoving || in.inspectorID != node.inspectorID
		if replace && in != nil {
			gt.swapInAndOut(true)
		}
		gt.inNode = weak.Make(node)
		gt.hasInAnim = true
		node.focusHub.SetEnabled(true)
	}

	in, out = gt.InNode(), gt.OutNode()
	if !gt.IsInAndOutValid() {
		if gt.hasInAnim && in != nil {
			gt.state = TransitionActive
			gt.markLayoutDirty(in, 1, PropertyUpdateMeasure)
		}
		debug.Debug("geometry transition build", "id", gt.id, "node", node.id, "in", isNodeIn, "valid", false)
		return
	}

	ctx := gt.pipeline()
	if ctx == nil || !ctx.IsImplicitAnimationOpen() {
		followed := false
		if gt.followWithoutTransition && gt.hasOutAnim && gt.hasInAnim {
			followed = gt.OnFollowWithoutTransition(FollowIn)
		}
		gt.hasInAnim, gt.hasOutAnim = false, false
		in.layoutPriority, out.layoutPriority = 0, 0
		if !followed {
			gt.dropOutNode(out)
		}
		debug.Debug("geometry transition without animation", "id", gt.id, "follow", followed)
		return
	}

	gt.animationOption = ctx.ImplicitAnimationOption()
	if gt.hasOutAnim {
		gt.markLayoutDirty(out, -1, PropertyUpdateMeasureSelf)
	}
	if gt.hasInAnim {
		gt.state = TransitionActive
		gt.markLayoutDirty(in, 1, PropertyUpdateMeasure)
	}
	debug.Debug("geometry transition build", "id", gt.id, "node", node.id, "in", isNodeIn,
		"hasInAnim", gt.hasInAnim, "hasOutAnim", gt.hasOutAnim, "option", gt.animationOption)
}

func (gt *GeometryTransition) swapInAndOut(swap bool) {
	if swap {
		gt.inNode, gt.outNode = gt.outNode, gt.inNode
	}
}

func (gt *GeometryTransition) recordOutNodeFrame() {
	out := gt.OutNode()
	if out == nil {
		return
	}
	rc := out.renderContext
	gt.outNodeParentPos = rc.PaintRectGlobalOffsetWithTranslate(true)
	abs := rc.TransformRectRelativeToWindow()
	gt.outNodePos = abs.Offset()
	gt.outNodeSize = abs.Size()
}

func (gt *GeometryTransition) markLayoutDirty(node *FrameNode, priority int, flag PropertyChangeFlag) {
	node.SetLayoutPriority(priority)
	node.MarkDirtyNode(flag)
}

// dropOutNode lets a leaving node that only waited for this transition go.
func (gt *GeometryTransition) dropOutNode(out *FrameNode) {
	if out == nil || !out.isDisappearing || out.renderContext.HasTransitionOutAnimation() {
		return
	}
	out.OnTransitionOutFinish()
}

// pipeline returns the context of whichever node has one.
func (gt *GeometryTransition) pipeline() *Pipeline {
	if in := gt.InNode(); in != nil && in.context != nil {
		return in.context
	}
	if out := gt.OutNode(); out != nil {
		return out.context
	}
	return nil
}

// Update replaces which with value in whichever role which holds. A nil which
// fills an empty role.
func (gt *GeometryTransition) Update(which, value *FrameNode) bool {
	switch which {
	case gt.InNode():
		gt.inNode = makeWeak(value)
		return true
	case gt.OutNode():
		gt.outNode = makeWeak(value)
		return true
	}
	return false
}

func makeWeak(f *FrameNode) weak.Pointer[FrameNode] {
	if f == nil {
		return weak.Pointer[FrameNode]{}
	}
	return weak.Make(f)
}

// IsNodeIn reports whether node is the in-node.
func (gt *GeometryTransition) IsNodeIn(node *FrameNode) bool {
	return node != nil && node == gt.InNode()
}

// IsNodeOut reports whether node is the out-node.
func (gt *GeometryTransition) IsNodeOut(node *FrameNode) bool {
	return node != nil && node == gt.OutNode()
}

// IsNodeInAndActive reports whether node is the in-node laying out at the
// out-node's size.
func (gt *GeometryTransition) IsNodeInAndActive(node *FrameNode) bool {
	return gt.state == TransitionActive && gt.IsNodeIn(node)
}

// IsNodeInAndIdentity reports whether node is the in-node settling.
func (gt *GeometryTransition) IsNodeInAndIdentity(node *FrameNode) bool {
	return gt.state == TransitionIdentity && gt.IsNodeIn(node)
}

// IsNodeOutAndActive reports whether node is the out-node and will animate.
func (gt *GeometryTransition) IsNodeOutAndActive(node *FrameNode) bool {
	return gt.hasOutAnim && gt.IsNodeOut(node)
}

// IsInAndOutValid reports whether both nodes are alive and distinct.
func (gt *GeometryTransition) IsInAndOutValid() bool {
	in, out := gt.InNode(), gt.OutNode()
	return in != nil && out != nil && in != out
}

// IsInAndOutEmpty reports whether neither node is alive. An empty transition
// forgets its animation flags.
func (gt *GeometryTransition) IsInAndOutEmpty() bool {
	empty := gt.InNode() == nil && gt.OutNode() == nil
	if empty {
		gt.hasInAnim, gt.hasOutAnim = false, false
		gt.state = TransitionIdle
	}
	return empty
}

func (gt *GeometryTransition) String() string {
	return fmt.Sprintf("%s in:%s out:%s state:%s hasInAnim:%t hasOutAnim:%t",
		gt.id, nodeLabel(gt.InNode()), nodeLabel(gt.OutNode()), gt.state, gt.hasInAnim, gt.hasOutAnim)
}

func nodeLabel(f *FrameNode) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%s#%d", f.tag, f.id)
}
