package ace

import (
	"slices"

	"github.com/grindlemire/go-ace/internal/debug"
)

// AddChild inserts child at slot. A slot outside the list appends.
// Adding a child that is already present does nothing. A child that was
// disappearing is taken out of the disappearing list first.
// Unless silently is set, the child joins the main tree when this node is on it.
func (n *UINode) AddChild(child *UINode, slot int, silently bool) {
	if child == nil {
		return
	}
	if slices.Contains(n.children, child) {
		debug.Warn("child already present", "parent", n.tag, "parentId", n.id, "child", child.tag, "childId", child.id)
		return
	}
	n.RemoveDisappearingChild(child)
	n.doAddChild(clampSlot(slot, len(n.children)), child, silently)
}

func (n *UINode) doAddChild(index int, child *UINode, silently bool) {
	n.children = slices.Insert(n.children, index, child)
	child.SetParent(n)
	child.SetDepth(n.depth + 1)
	if !silently && n.onMainTree {
		child.AttachToMainTree(false, n.context)
	}
	n.MarkNeedSyncRenderTree(true)
}

// clampSlot maps slot into [0, size], sending out of range slots to the end.
func clampSlot(slot, size int) int {
	if slot < 0 || slot > size {
		return size
	}
	return slot
}

// RemoveChild takes child out of the active list and returns the index it
// occupied, or -1 if it was not a child.
//
// With allowTransition set, a child whose exit transition is still running is
// moved to the disappearing list and keeps its parent. Otherwise its parent is
// reset.
func (n *UINode) RemoveChild(child *UINode, allowTransition bool) int {
	if child == nil {
		return -1
	}
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return -1
	}
	if !child.OnRemoveFromParent(allowTransition) {
		n.AddDisappearingChild(child, idx)
	}
	n.MarkNeedSyncRenderTree(true)
	n.children = slices.Delete(n.children, idx, idx+1)
	return idx
}

// RemoveChildAtIndex removes the child at index without transitions.
func (n *UINode) RemoveChildAtIndex(index int) {
	if index < 0 || index >= len(n.children) {
		return
	}
	n.RemoveChild(n.children[index], false)
}

// RemoveFromParent removes the node from its parent's active list.
func (n *UINode) RemoveFromParent(allowTransition bool) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	return parent.RemoveChild(n, allowTransition) >= 0
}

// OnRemoveFromParent detaches the node from the main tree and reports whether
// it was fully removed. It returns false when allowTransition is set and the
// node must stay alive until its exit transition finishes.
func (n *UINode) OnRemoveFromParent(allowTransition bool) bool {
	// A non-recursive detach lets the render context start its exit transition.
	n.DetachFromMainTree(!allowTransition)
	if allowTransition && !n.RemoveImmediately() {
		return false
	}
	n.ResetParent()
	return true
}

// RemoveImmediately reports whether nothing in the subtree is waiting for an
// exit transition. Frame nodes answer from their render context.
func (n *UINode) RemoveImmediately() bool {
	if n.frame != nil {
		return n.frame.removeImmediately()
	}
	for _, child := range n.children {
		if !child.RemoveImmediately() {
			return false
		}
	}
	return true
}

// ReplaceChild puts newNode in the slot held by oldNode. A nil oldNode is the
// same as AddChild(newNode). The old node is removed without a transition.
func (n *UINode) ReplaceChild(oldNode, newNode *UINode) {
	if oldNode == nil {
		if newNode != nil {
			n.AddChild(newNode, DefaultNodeSlot, false)
		}
		return
	}
	idx := n.RemoveChild(oldNode, false)
	if newNode == nil {
		return
	}
	if idx < 0 {
		idx = len(n.children)
	}
	n.RemoveDisappearingChild(newNode)
	n.doAddChild(idx, newNode, false)
}

// Clean removes every child. Children with a running exit transition move to
// the disappearing list when allowTransition is set. Unless cleanDirectly is
// set, subtrees are marked removing and those that still need to finish a
// transition are handed to the register's pending-removal list.
func (n *UINode) Clean(cleanDirectly, allowTransition bool) {
	if len(n.children) == 0 {
		return
	}
	children := n.children
	n.children = nil
	for index, child := range children {
		if !cleanDirectly && child.MarkRemoving() {
			n.register.AddPendingRemoveNode(child)
		}
		if !child.OnRemoveFromParent(allowTransition) {
			n.AddDisappearingChild(child, index)
		}
	}
	n.MarkNeedSyncRenderTree(true)
}

// MovePosition moves the node to slot within its parent's active list without
// detaching it. Slots outside the list move it to the end.
func (n *UINode) MovePosition(slot int) {
	parent := n.Parent()
	if parent == nil {
		return
	}
	children := parent.children
	idx := slices.Index(children, n)
	if idx < 0 {
		return
	}
	if slot >= 0 && slot < len(children) && children[slot] == n {
		return
	}
	target := slot
	if slot < 0 || slot >= len(children) {
		target = len(children) - 1
	}
	if target == idx {
		return
	}
	children = slices.Delete(children, idx, idx+1)
	parent.children = slices.Insert(children, target, n)
	parent.MarkNeedSyncRenderTree(true)
}

// ChildIndex returns the index of child in the active list, or -1.
func (n *UINode) ChildIndex(child *UINode) int {
	return slices.Index(n.children, child)
}

// ChildAt returns the active child at index, or nil.
func (n *UINode) ChildAt(index int) *UINode {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// FirstChild returns the first active child, or nil.
func (n *UINode) FirstChild() *UINode {
	return n.ChildAt(0)
}

// LastChild returns the last active child, or nil.
func (n *UINode) LastChild() *UINode {
	return n.ChildAt(len(n.children) - 1)
}

// TotalChildCount returns the number of active children.
func (n *UINode) TotalChildCount() int {
	return len(n.children)
}
