package ace

import "slices"

// AddDisappearingChild records child as disappearing at index. A child that is
// already disappearing has its old entry replaced.
func (n *UINode) AddDisappearingChild(child *UINode, index int) {
	if child == nil {
		return
	}
	if child.isDisappearing {
		n.disappearingChildren = slices.DeleteFunc(n.disappearingChildren, func(dc DisappearingChild) bool {
			return dc.Node == child
		})
	} else {
		child.isDisappearing = true
	}
	n.disappearingChildren = append(n.disappearingChildren, DisappearingChild{Node: child, Index: index})
}

// RemoveDisappearingChild drops child from the disappearing list and reports
// whether it was there.
func (n *UINode) RemoveDisappearingChild(child *UINode) bool {
	// Quick reject keeps the common case O(1).
	if child == nil || !child.isDisappearing {
		return false
	}
	idx := slices.IndexFunc(n.disappearingChildren, func(dc DisappearingChild) bool {
		return dc.Node == child
	})
	if idx < 0 {
		return false
	}
	n.disappearingChildren = slices.Delete(n.disappearingChildren, idx, idx+1)
	child.isDisappearing = false
	return true
}

// DisappearingChildren returns a copy of the disappearing list in insertion order.
func (n *UINode) DisappearingChildren() []DisappearingChild {
	return slices.Clone(n.disappearingChildren)
}

// childrenWithDisappearing merges the active and disappearing children, putting
// each disappearing child back at its recorded index, or at the end when the
// index is past the merged list. A recorded index is the child's position in
// the active list at the time it left, after every earlier removal, so the
// list is replayed newest first.
func (n *UINode) childrenWithDisappearing() []*UINode {
	if len(n.disappearingChildren) == 0 {
		return n.children
	}
	all := slices.Clone(n.children)
	for i := len(n.disappearingChildren) - 1; i >= 0; i-- {
		dc := n.disappearingChildren[i]
		if dc.Index >= len(all) {
			all = append(all, dc.Node)
		} else {
			all = slices.Insert(all, dc.Index, dc.Node)
		}
	}
	return all
}

// GenerateOneDepthVisibleFrameWithTransition appends the frame nodes one render
// level below this node to visible, including children that are still running
// an exit transition, in stacking order.
func (n *UINode) GenerateOneDepthVisibleFrameWithTransition(visible []*FrameNode) []*FrameNode {
	for _, child := range n.childrenWithDisappearing() {
		visible = child.onGenerateOneDepthVisibleFrameWithTransition(visible)
	}
	return visible
}

func (n *UINode) onGenerateOneDepthVisibleFrameWithTransition(visible []*FrameNode) []*FrameNode {
	if n.frame == nil {
		// Structural wrappers are transparent to the render tree.
		return n.GenerateOneDepthVisibleFrameWithTransition(visible)
	}
	if !n.frame.isVisible() && !n.frame.renderContext.HasTransitionOutAnimation() {
		return visible
	}
	return append(visible, n.frame)
}
