package ace

import "github.com/grindlemire/go-ace/internal/debug"

// WillLayout runs before a root-measure node is laid out. An active in-node
// takes the out-node's size and a leaving out-node takes the in-node's, so
// both measure against each other in the same pass.
func (gt *GeometryTransition) WillLayout(w *LayoutWrapper) {
	if w == nil || !w.IsRootMeasureNode() {
		return
	}
	host := w.HostNode()
	switch {
	case gt.IsNodeInAndActive(host):
		gt.layoutPropertyIn = host.layoutProperty.Clone()
		gt.modifyLayoutConstraint(host, true)
	case gt.IsNodeOutAndActive(host):
		gt.layoutPropertyOut = host.layoutProperty.Clone()
		gt.modifyLayoutConstraint(host, false)
	}
}

// modifyLayoutConstraint fixes self's ideal size to the size of its partner.
// The partner's geometry is ready because active in-nodes lay out first and
// out-nodes last.
func (gt *GeometryTransition) modifyLayoutConstraint(self *FrameNode, isNodeIn bool) {
	target := gt.OutNode()
	if !isNodeIn {
		target = gt.InNode()
	}
	if target == nil || target == self {
		return
	}
	var size SizeF
	switch {
	case isNodeIn && (target.isRemoving || !target.onMainTree):
		size = gt.outNodeSize
	case !isNodeIn && gt.outNodeTargetAbsRect != nil:
		size = gt.outNodeTargetAbsRect.Size()
	default:
		size = target.geometryNode.FrameSize()
	}
	self.layoutProperty.UpdateUserDefinedIdealSize(size)
	debug.Debug("geometry transition will layout", "id", gt.id, "node", self.id, "in", isNodeIn, "size", size)
}

// DidLayout runs after a node carrying this transition has been laid out.
func (gt *GeometryTransition) DidLayout(w *LayoutWrapper) {
	if w == nil {
		return
	}
	host := w.HostNode()
	var (
		sync     bool
		isNodeIn bool
	)
	switch {
	case w.IsRootMeasureNode() && gt.IsNodeInAndActive(host):
		if gt.layoutPropertyIn != nil {
			host.SetLayoutProperty(gt.layoutPropertyIn)
			gt.layoutPropertyIn = nil
		}
		gt.state = TransitionIdentity
		gt.inNodeActiveFrameSize = host.geometryNode.FrameSize()
		sync, isNodeIn = true, true
	case gt.IsNodeInAndIdentity(host):
		gt.state = TransitionIdle
		host.SetLayoutPriority(0)
		gt.hasInAnim = false
	case w.IsRootMeasureNode() && gt.IsNodeOutAndActive(host) && !(gt.hasInAnim && gt.state == TransitionActive):
		host.SetLayoutPriority(0)
		gt.hasOutAnim = false
		sync, isNodeIn = true, false
	}
	debug.Debug("geometry transition did layout", "id", gt.id, "node", host.id, "state", gt.state, "sync", sync)
	if !sync || host.context == nil {
		return
	}
	host.context.AddAfterLayoutTask(func() {
		gt.SyncGeometry(isNodeIn)
		if isNodeIn {
			return
		}
		if out := gt.OutNode(); out != nil && gt.layoutPropertyOut != nil {
			out.SetLayoutProperty(gt.layoutPropertyOut)
			gt.layoutPropertyOut = nil
		}
	})
}

// OnAdditionalLayout asks for one more pass while node, the in-node, settles
// from its borrowed size to its real one.
func (gt *GeometryTransition) OnAdditionalLayout(node *FrameNode) bool {
	if !gt.IsNodeInAndIdentity(node) {
		return false
	}
	node.MarkDirtyNode(PropertyUpdateMeasure)
	return true
}

// IsRunning reports whether node still has a phase of this transition ahead.
func (gt *GeometryTransition) IsRunning(node *FrameNode) bool {
	return (gt.IsNodeIn(node) && (gt.hasInAnim || gt.state != TransitionIdle)) ||
		(gt.IsNodeOut(node) && gt.hasOutAnim)
}
