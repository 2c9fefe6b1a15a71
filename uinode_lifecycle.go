package ace

// AttachToMainTree marks the subtree as part of the rendered tree.
// The recursive flag is passed to render contexts; it turns true for every
// node below the first frame node, so only that first frame node may start an
// appear transition.
func (n *UINode) AttachToMainTree(recursive bool, ctx *Pipeline) {
	if n.onMainTree {
		return
	}
	n.onMainTree = true
	n.isRemoving = false
	if ctx != nil {
		n.context = ctx
	}
	if n.frame != nil {
		n.frame.onAttachToMainTree(recursive)
		if !n.onMainTree {
			// A geometry transition moved the node while it attached.
			return
		}
	}
	childRecursive := recursive || n.frame != nil
	for _, child := range n.children {
		child.AttachToMainTree(childRecursive, n.context)
	}
}

// DetachFromMainTree marks the subtree as no longer rendered. A non-recursive
// detach lets the first frame node below run its exit transition.
func (n *UINode) DetachFromMainTree(recursive bool) {
	if !n.onMainTree {
		return
	}
	n.onMainTree = false
	if n.frame != nil {
		n.frame.onDetachFromMainTree(recursive)
	}
	childRecursive := recursive || n.frame != nil
	for _, child := range n.children {
		child.DetachFromMainTree(childRecursive)
	}
}

// MarkRemoving flags the subtree as being torn down. Frame nodes that carry a
// geometry transition are handed to it as leaving nodes. It reports whether
// any node in the subtree needs to finish a transition before it can go.
func (n *UINode) MarkRemoving() bool {
	pendingRemove := false
	n.isRemoving = true
	if n.frame != nil {
		if gt := n.frame.GeometryTransition(); gt != nil {
			gt.Build(n.frame, false)
			pendingRemove = true
		}
	}
	for _, child := range n.children {
		pendingRemove = child.MarkRemoving() || pendingRemove
	}
	return pendingRemove
}

// MarkDirtyNode passes a property change down to the nearest frame nodes.
func (n *UINode) MarkDirtyNode(flag PropertyChangeFlag) {
	if n.frame != nil {
		n.frame.markDirtyNode(flag)
		return
	}
	for _, child := range n.children {
		child.MarkDirtyNode(flag)
	}
}

// MarkNeedSyncRenderTree walks up to the nearest frame node and flags its
// render subtree for regeneration.
func (n *UINode) MarkNeedSyncRenderTree(needRebuild bool) {
	if n.frame != nil {
		n.frame.markNeedSyncRenderTree(needRebuild)
		return
	}
	if parent := n.Parent(); parent != nil {
		parent.MarkNeedSyncRenderTree(needRebuild)
	}
}
