package ace

import "github.com/grindlemire/go-ace/internal/debug"

// HolderTag is the tag of the placeholder that keeps an in-node's slot while
// the in-node follows a leaving node.
const HolderTag = "GeometryTransitionHolder"

// FollowMode selects what OnFollowWithoutTransition does.
type FollowMode uint8

const (
	// FollowRestore puts a following in-node back in its holder's slot.
	FollowRestore FollowMode = iota
	// FollowIn moves the in-node under the leaving out-node so it tracks the
	// out-node's exit transition, leaving a holder in its slot.
	FollowIn
)

func (m FollowMode) String() string {
	if m == FollowIn {
		return "in"
	}
	return "restore"
}

// OnFollowWithoutTransition substitutes or restores the holder of a transition
// created with followWithoutTransition. It reports whether the tree changed.
func (gt *GeometryTransition) OnFollowWithoutTransition(mode FollowMode) bool {
	if !gt.followWithoutTransition {
		return false
	}
	switch mode {
	case FollowIn:
		return gt.followIn()
	default:
		return gt.restoreHolder()
	}
}

func (gt *GeometryTransition) followIn() bool {
	if gt.holder != nil || !gt.IsInAndOutValid() {
		return false
	}
	in, out := gt.InNode(), gt.OutNode()
	if !out.renderContext.HasTransitionOutAnimation() {
		return false
	}
	parent := in.Parent()
	if parent == nil {
		return false
	}

	holder := NewFrameNode(in.register, HolderTag, WithLayoutStyle(in.layoutProperty.Style()))
	if size := in.geometryNode.FrameSize(); size.IsPositive() {
		holder.layoutProperty.UpdateUserDefinedIdealSize(size)
	} else if size, ok := in.layoutProperty.UserDefinedIdealSize(); ok {
		holder.layoutProperty.UpdateUserDefinedIdealSize(size)
	}
	holder.focusHub.SetEnabled(false)

	parent.ReplaceChild(in.UINode, holder.UINode)
	out.AddChild(in.UINode, DefaultNodeSlot, true)
	gt.holder = holder
	debug.Debug("geometry transition follow", "id", gt.id, "in", in.id, "out", out.id, "holder", holder.id)
	return true
}

func (gt *GeometryTransition) restoreHolder() bool {
	holder := gt.holder
	if holder == nil {
		return false
	}
	gt.holder = nil
	parent := holder.Parent()
	in := gt.InNode()
	if in == nil || parent == nil {
		holder.RemoveFromParent(false)
		return false
	}
	if p := in.Parent(); p != nil {
		p.RemoveChild(in.UINode, false)
	}
	parent.ReplaceChild(holder.UINode, in.UINode)
	debug.Debug("geometry transition restore", "id", gt.id, "in", in.id)
	return true
}
