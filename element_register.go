package ace

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"weak"

	"github.com/grindlemire/go-ace/internal/debug"
)

// ElementRegister issues node ids and keeps the per-instance registries:
// a weak id to node table, nodes waiting for their removal to finish, and
// the geometry transitions keyed by their transition id.
//
// Id allocation and lookup are safe from any goroutine. The pending-removal
// list and the transition registry belong to the UI goroutine.
type ElementRegister struct {
	nextID            atomic.Int32
	nextAccessibility atomic.Int64

	mu    sync.Mutex
	nodes map[int32]weak.Pointer[UINode]

	pendingRemove []*UINode

	transitions map[string]*GeometryTransition
	// swept marks transitions touched since the last sweep.
	swept map[string]bool
}

// NewElementRegister creates an empty register.
func NewElementRegister() *ElementRegister {
	return &ElementRegister{
		nodes:       make(map[int32]weak.Pointer[UINode]),
		transitions: make(map[string]*GeometryTransition),
		swept:       make(map[string]bool),
	}
}

// MakeUniqueID returns the next node id. Ids start at 1.
func (r *ElementRegister) MakeUniqueID() int32 {
	return r.nextID.Add(1)
}

func (r *ElementRegister) nextAccessibilityID() int64 {
	return r.nextAccessibility.Add(1)
}

// AddUINode records n under its id. The entry disappears once n is collected.
func (r *ElementRegister) AddUINode(n *UINode) {
	if n == nil {
		return
	}
	id := n.id
	r.mu.Lock()
	r.nodes[id] = weak.Make(n)
	r.mu.Unlock()
	runtime.AddCleanup(n, r.removeID, id)
}

func (r *ElementRegister) removeID(id int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if wp, ok := r.nodes[id]; ok && wp.Value() == nil {
		delete(r.nodes, id)
	}
}

// GetUINodeByID returns the live node with id, or nil.
func (r *ElementRegister) GetUINodeByID(id int32) *UINode {
	r.mu.Lock()
	defer r.mu.Unlock()
	wp, ok := r.nodes[id]
	if !ok {
		return nil
	}
	return wp.Value()
}

// GetFrameNodeByID returns the live frame node with id, or nil.
func (r *ElementRegister) GetFrameNodeByID(id int32) *FrameNode {
	if n := r.GetUINodeByID(id); n != nil {
		return n.frame
	}
	return nil
}

// AddPendingRemoveNode keeps n alive until the next ClearPendingRemoveNodes.
func (r *ElementRegister) AddPendingRemoveNode(n *UINode) {
	if n == nil || slices.Contains(r.pendingRemove, n) {
		return
	}
	r.pendingRemove = append(r.pendingRemove, n)
}

// PendingRemoveNodes returns a copy of the pending-removal list.
func (r *ElementRegister) PendingRemoveNodes() []*UINode {
	return slices.Clone(r.pendingRemove)
}

// ClearPendingRemoveNodes drops the pending-removal list.
func (r *ElementRegister) ClearPendingRemoveNodes() {
	if len(r.pendingRemove) > 0 {
		debug.Debug("clear pending remove nodes", "count", len(r.pendingRemove))
	}
	r.pendingRemove = nil
}

// GetOrCreateGeometryTransition returns the transition registered under id,
// creating it on first use. An empty id has no transition.
func (r *ElementRegister) GetOrCreateGeometryTransition(id string, followWithoutTransition, doRegisterSharedTransition bool) *GeometryTransition {
	if id == "" {
		return nil
	}
	r.swept[id] = true
	if gt, ok := r.transitions[id]; ok {
		return gt
	}
	gt := NewGeometryTransition(id, followWithoutTransition, doRegisterSharedTransition)
	r.transitions[id] = gt
	debug.Debug("create geometry transition", "id", id, "follow", followWithoutTransition)
	return gt
}

// GeometryTransition returns the transition registered under id, or nil.
func (r *ElementRegister) GeometryTransition(id string) *GeometryTransition {
	return r.transitions[id]
}

// GeometryTransitionCount returns the number of registered transitions.
func (r *ElementRegister) GeometryTransitionCount() int {
	return len(r.transitions)
}

// ReSyncGeometryTransitions calls OnReSync on every registered transition.
func (r *ElementRegister) ReSyncGeometryTransitions(trigger *FrameNode, opt AnimationOption) {
	for _, id := range r.transitionIDs() {
		r.transitions[id].OnReSync(trigger, opt)
	}
}

// SweepGeometryTransitions drops transitions that were not used since the last
// sweep and no longer hold an in or out node.
func (r *ElementRegister) SweepGeometryTransitions() {
	for id, gt := range r.transitions {
		if !r.swept[id] && gt.IsInAndOutEmpty() {
			debug.Debug("sweep geometry transition", "id", id)
			delete(r.transitions, id)
		}
	}
	clear(r.swept)
}

// DumpGeometryTransitions writes one line per registered transition, sorted by id.
func (r *ElementRegister) DumpGeometryTransitions(w io.Writer) error {
	for _, id := range r.transitionIDs() {
		if _, err := fmt.Fprintln(w, r.transitions[id].String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *ElementRegister) transitionIDs() []string {
	ids := make([]string, 0, len(r.transitions))
	for id := range r.transitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
