package ace

import "weak"

// DefaultNodeSlot appends a child at the end of the children list.
const DefaultNodeSlot = -1

// DisappearingChild is a child that was removed from the active list while its
// exit transition runs. Index is the slot it occupied when it was removed.
type DisappearingChild struct {
	Node  *UINode
	Index int
}

// UINode is a generic node in the UI hierarchy.
// It owns its children and refers to its parent weakly.
type UINode struct {
	id              int32
	tag             string
	accessibilityID int64
	register        *ElementRegister

	// Tree structure
	children             []*UINode
	disappearingChildren []DisappearingChild
	parent               weak.Pointer[UINode]
	depth                int

	// Lifecycle
	onMainTree     bool
	isRemoving     bool
	isDisappearing bool
	context        *Pipeline

	// frame is set when this node is the base of a FrameNode.
	frame *FrameNode
}

// NewUINode creates a structural node with a fresh id from reg.
func NewUINode(reg *ElementRegister, tag string) *UINode {
	return newUINode(reg, tag)
}

func newUINode(reg *ElementRegister, tag string) *UINode {
	n := &UINode{
		id:              reg.MakeUniqueID(),
		tag:             tag,
		accessibilityID: reg.nextAccessibilityID(),
		register:        reg,
		depth:           -1,
	}
	reg.AddUINode(n)
	return n
}

// ID returns the process-unique node id.
func (n *UINode) ID() int32 {
	return n.id
}

// Tag returns the node type name.
func (n *UINode) Tag() string {
	return n.tag
}

// AccessibilityID returns the node's accessibility id.
func (n *UINode) AccessibilityID() int64 {
	return n.accessibilityID
}

// Register returns the element register that issued this node's id.
func (n *UINode) Register() *ElementRegister {
	return n.register
}

// Children returns the active children in paint order.
// The slice is owned by the node and must not be modified.
func (n *UINode) Children() []*UINode {
	return n.children
}

// ChildrenForHitTest returns the active children topmost first.
func (n *UINode) ChildrenForHitTest() []*UINode {
	out := make([]*UINode, len(n.children))
	for i, child := range n.children {
		out[len(n.children)-1-i] = child
	}
	return out
}

// Parent returns the parent node, or nil if there is none.
func (n *UINode) Parent() *UINode {
	return n.parent.Value()
}

// Depth returns the distance from the root, or -1 when detached.
func (n *UINode) Depth() int {
	return n.depth
}

// IsOnMainTree reports whether the node is attached to the rendered tree.
func (n *UINode) IsOnMainTree() bool {
	return n.onMainTree
}

// IsRemoving reports whether the node's subtree is being torn down.
func (n *UINode) IsRemoving() bool {
	return n.isRemoving
}

// IsDisappearing reports whether the node sits in its parent's disappearing list.
func (n *UINode) IsDisappearing() bool {
	return n.isDisappearing
}

// Context returns the pipeline the node was last attached to.
func (n *UINode) Context() *Pipeline {
	return n.context
}

// FrameNode returns the frame node built on this node, or nil for
// structural wrappers.
func (n *UINode) FrameNode() *FrameNode {
	return n.frame
}

// IsFrameNode reports whether the node owns a render context.
func (n *UINode) IsFrameNode() bool {
	return n.frame != nil
}

// SetParent sets the weak parent reference.
func (n *UINode) SetParent(parent *UINode) {
	if parent == nil {
		n.parent = weak.Pointer[UINode]{}
		return
	}
	n.parent = weak.Make(parent)
}

// ResetParent clears the parent reference and marks the subtree detached.
func (n *UINode) ResetParent() {
	n.parent = weak.Pointer[UINode]{}
	n.SetDepth(-1)
}

// SetDepth sets the node's depth and renumbers its subtree.
func (n *UINode) SetDepth(depth int) {
	n.depth = depth
	for _, child := range n.children {
		child.SetDepth(depth + 1)
	}
	for _, dc := range n.disappearingChildren {
		dc.Node.SetDepth(depth + 1)
	}
}

// Root returns the topmost ancestor of the node.
func (n *UINode) Root() *UINode {
	root := n
	for p := root.Parent(); p != nil; p = root.Parent() {
		root = p
	}
	return root
}

// AncestorFrameNode returns the nearest ancestor that is a frame node.
func (n *UINode) AncestorFrameNode() *FrameNode {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.frame != nil {
			return p.frame
		}
	}
	return nil
}

// Walk calls fn for the node and every active descendant, depth first.
// Returning false from fn skips that node's children.
func (n *UINode) Walk(fn func(*UINode) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}
