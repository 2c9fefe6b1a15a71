package ace

import (
	"strings"
	"testing"
	"time"
)

var testAnimation = AnimationOption{Duration: 300 * time.Millisecond, Curve: CurveEaseInOut}

// attachFrame adds a new frame node under root without a transition binding.
func attachFrame(t *testing.T, p *Pipeline, root *FrameNode, tag string, opts ...FrameNodeOption) *FrameNode {
	t.Helper()
	f := NewFrameNode(p.Register(), tag, opts...)
	root.AddChild(f.Node(), DefaultNodeSlot, false)
	return f
}

func rootWrapper(f *FrameNode, pass uint64) *LayoutWrapper {
	return (&layoutPass{id: pass}).wrap(f, true)
}

func TestGeometryTransition_FirstEntry(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	x := attachFrame(t, p, root, "X")
	gt := NewGeometryTransition("c", false, false)

	gt.Build(x, true)

	if gt.InNode() != x {
		t.Fatal("in-node should be X")
	}
	if !gt.HasInAnim() {
		t.Error("HasInAnim() = false, want true")
	}
	if gt.OutNode() != nil {
		t.Error("out-node should be empty")
	}
	if x.LayoutPriority() != 1 {
		t.Errorf("LayoutPriority() = %d, want 1", x.LayoutPriority())
	}

	gt.WillLayout(rootWrapper(x, 100))
	if gt.State() != TransitionActive {
		t.Errorf("state after WillLayout = %s, want active", gt.State())
	}
	gt.DidLayout(rootWrapper(x, 100))
	if gt.State() != TransitionIdentity {
		t.Errorf("state after DidLayout = %s, want identity", gt.State())
	}
}

func TestGeometryTransition_StateMachineTerminates(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	x := attachFrame(t, p, root, "X")
	gt := NewGeometryTransition("hero", false, false)

	gt.Build(x, true)
	gt.WillLayout(rootWrapper(x, 100))
	gt.DidLayout(rootWrapper(x, 100))
	if !gt.IsRunning(x) {
		t.Error("transition should still run for X after the first cycle")
	}

	gt.WillLayout(rootWrapper(x, 101))
	if gt.State() != TransitionIdentity {
		t.Errorf("state after second WillLayout = %s, want identity", gt.State())
	}
	gt.DidLayout(rootWrapper(x, 101))

	if gt.State() != TransitionIdle {
		t.Errorf("state after second cycle = %s, want idle", gt.State())
	}
	if gt.HasInAnim() {
		t.Error("HasInAnim() = true after settling")
	}
	if x.LayoutPriority() != 0 {
		t.Errorf("LayoutPriority() = %d, want 0", x.LayoutPriority())
	}
	if gt.IsRunning(x) {
		t.Error("transition should not run after settling")
	}
}

func TestGeometryTransition_WillLayoutOnlyOnRoot(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	x := attachFrame(t, p, root, "X")
	gt := NewGeometryTransition("root-only", false, false)
	gt.Build(x, true)

	gt.WillLayout((&layoutPass{id: 100}).wrap(x, false))
	gt.DidLayout((&layoutPass{id: 100}).wrap(x, false))

	if gt.State() != TransitionActive {
		t.Errorf("state = %s, want active after non-root phases", gt.State())
	}
}

func TestGeometryTransition_BuildReplaceRules(t *testing.T) {
	type tc struct {
		prepare func(prev *FrameNode)
		prevID  string
		nextID  string
		wantIn  string
		wantOut string
	}

	tests := map[string]tc{
		"different identity replaces": {
			prevID:  "a",
			nextID:  "b",
			wantIn:  "next",
			wantOut: "prev",
		},
		"same identity on tree is a stale duplicate": {
			prevID: "a",
			nextID: "a",
			wantIn: "next",
		},
		"previous off tree replaces": {
			prepare: func(prev *FrameNode) { prev.RemoveFromParent(false) },
			prevID:  "a",
			nextID:  "a",
			wantIn:  "next",
			wantOut: "prev",
		},
		"previous removing replaces": {
			prepare: func(prev *FrameNode) { prev.isRemoving = true },
			prevID:  "a",
			nextID:  "a",
			wantIn:  "next",
			wantOut: "prev",
		},
		"same identity in sandbox is skipped": {
			prepare: func(prev *FrameNode) { prev.RenderContext().SetSandBox(&OffsetF{}) },
			prevID:  "a",
			nextID:  "a",
			wantIn:  "prev",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, _ := newTestPipeline(t)
			root := newTestRoot(t, p, 400, 400)
			prev := attachFrame(t, p, root, "prev", WithInspectorID(tt.prevID))
			next := attachFrame(t, p, root, "next", WithInspectorID(tt.nextID))
			gt := NewGeometryTransition("rules", false, false)
			gt.Build(prev, true)
			if tt.prepare != nil {
				tt.prepare(prev)
			}

			p.OpenImplicitAnimation(testAnimation)
			gt.Build(next, true)
			p.CloseImplicitAnimation()

			if got := nodeTag(gt.InNode()); got != tt.wantIn {
				t.Errorf("in-node = %q, want %q", got, tt.wantIn)
			}
			if got := nodeTag(gt.OutNode()); got != tt.wantOut {
				t.Errorf("out-node = %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func nodeTag(f *FrameNode) string {
	if f == nil {
		return ""
	}
	return f.Tag()
}

// buildValidPair returns a transition whose in-node is x and out-node is y.
func buildValidPair(t *testing.T, p *Pipeline, root *FrameNode) (gt *GeometryTransition, x, y *FrameNode) {
	t.Helper()
	y = attachFrame(t, p, root, "Y", WithInspectorID("y"))
	x = attachFrame(t, p, root, "X", WithInspectorID("x"))
	gt = NewGeometryTransition("pair", false, false)
	p.OpenImplicitAnimation(testAnimation)
	gt.Build(y, true)
	gt.Build(x, true)
	p.CloseImplicitAnimation()
	if gt.InNode() != x || gt.OutNode() != y {
		t.Fatalf("pair = %s, want in X out Y", gt)
	}
	return gt, x, y
}

func TestGeometryTransition_OutNodeLeavesAgain(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	gt, x, y := buildValidPair(t, p, root)
	y.RenderContext().SetFrameWithoutAnimation(NewRectF(NewOffsetF(5, 5), NewSizeF(50, 60)))

	p.OpenImplicitAnimation(testAnimation)
	gt.Build(y, false)
	gt.Build(y, false)
	p.CloseImplicitAnimation()

	if gt.InNode() != x || gt.OutNode() != y {
		t.Errorf("pair changed: %s", gt)
	}
	if !gt.HasOutAnim() {
		t.Error("HasOutAnim() = false, want true")
	}
	if gt.outNodeSize != NewSizeF(50, 60) {
		t.Errorf("recorded out size = %s, want 50x60", gt.outNodeSize)
	}
	if gt.outNodePos != NewOffsetF(5, 5) {
		t.Errorf("recorded out pos = %s, want (5, 5)", gt.outNodePos)
	}
	if y.LayoutPriority() != -1 {
		t.Errorf("out LayoutPriority() = %d, want -1", y.LayoutPriority())
	}
	if y.FocusHub().IsEnabled() {
		t.Error("leaving node's focus hub should be disabled")
	}
}

func TestGeometryTransition_ClosedScopeDowngrades(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	gt, _, y := buildValidPair(t, p, root)

	gt.Build(y, false)

	if gt.HasOutAnim() || gt.HasInAnim() {
		t.Errorf("flags = in:%v out:%v, want both false", gt.HasInAnim(), gt.HasOutAnim())
	}
	if gt.State() != TransitionIdle {
		t.Errorf("state = %s, want idle", gt.State())
	}
}

func TestGeometryTransition_SyncGeometryNeedsValidPair(t *testing.T) {
	type tc struct {
		setup func(gt *GeometryTransition, x, y *FrameNode)
	}

	tests := map[string]tc{
		"missing out-node": {
			setup: func(gt *GeometryTransition, x, y *FrameNode) { gt.Update(y, nil) },
		},
		"missing in-node": {
			setup: func(gt *GeometryTransition, x, y *FrameNode) { gt.Update(x, nil) },
		},
		"same node on both sides": {
			setup: func(gt *GeometryTransition, x, y *FrameNode) { gt.Update(y, x) },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, _ := newTestPipeline(t)
			root := newTestRoot(t, p, 400, 400)
			gt, x, y := buildValidPair(t, p, root)
			tt.setup(gt, x, y)
			memRC(x).ResetMutations()
			memRC(y).ResetMutations()

			gt.SyncGeometry(true)
			gt.SyncGeometry(false)

			if n := len(memRC(x).Mutations()) + len(memRC(y).Mutations()); n != 0 {
				t.Errorf("got %d frame mutations, want none", n)
			}
			if x.RenderContext().HasSandBox() || y.RenderContext().HasSandBox() {
				t.Error("sandbox should not be set")
			}
			if p.RunningAnimations() != 0 {
				t.Errorf("RunningAnimations() = %d, want 0", p.RunningAnimations())
			}
		})
	}
}

func TestGeometryTransition_Update(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	gt, x, y := buildValidPair(t, p, root)
	z := attachFrame(t, p, root, "Z")

	if !gt.Update(x, z) || gt.InNode() != z {
		t.Error("Update(in, Z) should replace the in-node")
	}
	if !gt.Update(y, nil) || gt.OutNode() != nil {
		t.Error("Update(out, nil) should clear the out-node")
	}
	if !gt.Update(nil, y) || gt.OutNode() != y {
		t.Error("Update(nil, Y) should fill the empty role")
	}
	if gt.Update(x, y) {
		t.Error("Update with an unknown node should report false")
	}
}

func TestGeometryTransition_IsInAndOutEmpty(t *testing.T) {
	gt := NewGeometryTransition("empty", false, false)
	gt.hasInAnim, gt.hasOutAnim = true, true

	if !gt.IsInAndOutEmpty() {
		t.Fatal("IsInAndOutEmpty() = false for a fresh transition")
	}
	if gt.HasInAnim() || gt.HasOutAnim() {
		t.Error("empty transition should reset its animation flags")
	}
}

func TestGeometryTransition_String(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	gt, x, y := buildValidPair(t, p, root)

	s := gt.String()
	for _, want := range []string{"pair", x.Tag(), y.Tag(), "state:active"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestGeometryTransition_OnAdditionalLayout(t *testing.T) {
	p, _ := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	x := attachFrame(t, p, root, "X")
	other := attachFrame(t, p, root, "other")
	gt := NewGeometryTransition("extra", false, false)
	gt.Build(x, true)
	p.FlushLayout()

	if gt.OnAdditionalLayout(x) {
		t.Error("active in-node should not ask for another pass")
	}
	gt.WillLayout(rootWrapper(x, 1000))
	gt.DidLayout(rootWrapper(x, 1000))
	if gt.OnAdditionalLayout(other) {
		t.Error("unrelated node should not ask for another pass")
	}
	if !gt.OnAdditionalLayout(x) {
		t.Error("settling in-node should ask for another pass")
	}
	found := false
	for _, f := range p.DirtyLayoutNodes() {
		found = found || f == x
	}
	if !found {
		t.Error("OnAdditionalLayout should mark the in-node dirty")
	}
}
