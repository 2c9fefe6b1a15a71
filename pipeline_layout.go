package ace

import (
	"slices"
	"sort"

	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/layout"
)

// maxAdditionalLayoutPasses bounds the passes a frame spends on transitions
// asking for another layout.
const maxAdditionalLayoutPasses = 4

// AddDirtyLayoutNode queues f for the next layout flush.
func (p *Pipeline) AddDirtyLayoutNode(f *FrameNode) {
	if f == nil || slices.Contains(p.dirtyLayoutNodes, f) {
		return
	}
	p.dirtyLayoutNodes = append(p.dirtyLayoutNodes, f)
	p.RequestFrame()
}

// DirtyLayoutNodes returns a copy of the nodes queued for layout.
func (p *Pipeline) DirtyLayoutNodes() []*FrameNode {
	return slices.Clone(p.dirtyLayoutNodes)
}

// FlushLayout lays out every dirty node. Nodes run highest priority first,
// then shallowest first. Nodes with a negative priority run last, after any
// additional passes the geometry transitions ask for.
func (p *Pipeline) FlushLayout() {
	var deferred []*FrameNode
	for range maxAdditionalLayoutPasses {
		if len(p.dirtyLayoutNodes) == 0 {
			break
		}
		nodes := p.takeDirtyLayoutNodes()
		var now []*FrameNode
		for _, f := range nodes {
			if f.layoutPriority < 0 {
				deferred = append(deferred, f)
			} else {
				now = append(now, f)
			}
		}
		laidOut := p.layoutNodes(now)
		if !p.additionalLayout(laidOut) {
			break
		}
	}
	// Anything still dirty joins the final pass.
	deferred = append(deferred, p.takeDirtyLayoutNodes()...)
	p.layoutNodes(deferred)
}

func (p *Pipeline) takeDirtyLayoutNodes() []*FrameNode {
	nodes := p.dirtyLayoutNodes
	p.dirtyLayoutNodes = nil
	return nodes
}

// layoutNodes runs one pass over nodes and returns the nodes measured in it.
func (p *Pipeline) layoutNodes(nodes []*FrameNode) []*FrameNode {
	if len(nodes) == 0 {
		return nil
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].layoutPriority != nodes[j].layoutPriority {
			return nodes[i].layoutPriority > nodes[j].layoutPriority
		}
		return nodes[i].depth < nodes[j].depth
	})

	p.layoutPassID++
	id := p.layoutPassID
	var measured []*FrameNode
	for _, f := range nodes {
		if !p.isAttached(f) || f.geometryNode.measuredPass == id {
			continue
		}
		measured = append(measured, p.layoutRoot(f, id)...)
	}
	return measured
}

// isAttached reports whether f still hangs under the pipeline root. Leaving
// nodes kept as disappearing children count as attached.
func (p *Pipeline) isAttached(f *FrameNode) bool {
	if f.depth < 0 || p.root == nil {
		return false
	}
	return f.Root() == p.root.Node()
}

// layoutRoot lays out f as a root-measure node and runs the transition hooks
// around it.
func (p *Pipeline) layoutRoot(f *FrameNode, passID uint64) []*FrameNode {
	pass := &layoutPass{id: passID}
	root := pass.wrap(f, true)

	gt := f.GeometryTransition()
	if gt != nil {
		gt.WillLayout(root)
	}

	layout.Calculate(root, f.geometryNode.FrameOffset(), p.constraintFor(f))

	var measured []*FrameNode
	for _, w := range pass.wrappers {
		host := w.host
		if w.arranged {
			host.renderContext.SyncGeometryProperties(host.geometryNode.Frame())
		}
		if !w.measured {
			continue
		}
		measured = append(measured, host)
		host.layoutProperty.CleanDirty()
		if w.isRoot {
			continue
		}
		if childGT := host.GeometryTransition(); childGT != nil && childGT.IsRunning(host) {
			childGT.DidLayout(w)
		}
	}
	if gt != nil {
		gt.DidLayout(root)
	}
	debug.Debug("layout root", "node", f.id, "tag", f.tag, "priority", f.layoutPriority, "frame", f.geometryNode.Frame(), "wrappers", len(pass.wrappers))
	return measured
}

// constraintFor returns the space f was last measured in, falling back to its
// parent's frame and then the window.
func (p *Pipeline) constraintFor(f *FrameNode) SizeF {
	if f == p.root {
		return p.rootSize
	}
	if c, ok := f.geometryNode.ParentLayoutConstraint(); ok {
		return c
	}
	if parent := f.AncestorFrameNode(); parent != nil {
		size := parent.geometryNode.FrameSize()
		return size.Shrink(parent.layoutProperty.LayoutStyle().Padding)
	}
	return p.rootSize
}

// additionalLayout gives the transitions of measured nodes a chance to ask
// for another pass.
func (p *Pipeline) additionalLayout(measured []*FrameNode) bool {
	again := false
	for _, f := range measured {
		if gt := f.GeometryTransition(); gt != nil && gt.OnAdditionalLayout(f) {
			again = true
		}
	}
	return again && len(p.dirtyLayoutNodes) > 0
}
