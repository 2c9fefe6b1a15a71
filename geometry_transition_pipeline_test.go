package ace

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type heroScene struct {
	p     *Pipeline
	clock *ManualClock
	root  *FrameNode
	a     *FrameNode
	gt    *GeometryTransition
}

// newHeroScene lays out a root with one child A bound to the "hero"
// transition at (10, 20) with size 100x100.
func newHeroScene(t *testing.T, follow bool, opts ...FrameNodeOption) *heroScene {
	t.Helper()
	p, clock := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	opts = append([]FrameNodeOption{
		WithSize(100, 100),
		WithPosition(10, 20),
		WithInspectorID("a"),
		WithGeometryTransition("hero", follow, false),
	}, opts...)
	a := NewFrameNode(p.Register(), "A", opts...)
	root.AddChild(a.Node(), DefaultNodeSlot, false)
	p.FlushFrame()

	gt := p.Register().GeometryTransition("hero")
	if gt == nil {
		t.Fatal("hero transition not registered")
	}
	if got := a.GeometryNode().Frame(); got != NewRectF(NewOffsetF(10, 20), NewSizeF(100, 100)) {
		t.Fatalf("A frame = %s, want (10, 20) 100x100", got)
	}
	return &heroScene{p: p, clock: clock, root: root, a: a, gt: gt}
}

// swap removes A and adds B bound to the same transition.
func (s *heroScene) swap(follow bool) *FrameNode {
	s.a.MarkRemoving()
	s.root.RemoveChild(s.a.Node(), true)
	b := NewFrameNode(s.p.Register(), "B",
		WithSize(200, 50),
		WithPosition(100, 300),
		WithInspectorID("b"),
		WithGeometryTransition("hero", follow, false),
	)
	s.root.AddChild(b.Node(), DefaultNodeSlot, false)
	return b
}

func lastMutations(f *FrameNode, n int) []FrameMutation {
	all := memRC(f).Mutations()
	if len(all) < n {
		return all
	}
	return all[len(all)-n:]
}

func TestGeometryTransition_SharedElementFrame(t *testing.T) {
	s := newHeroScene(t, false)

	s.p.OpenImplicitAnimation(testAnimation)
	b := s.swap(false)
	s.p.CloseImplicitAnimation()

	if !s.a.IsDisappearing() {
		t.Fatal("A should stay as a disappearing child while it animates out")
	}
	if s.gt.InNode() != b || s.gt.OutNode() != s.a {
		t.Fatalf("pair = %s, want in B out A", s.gt)
	}

	s.p.FlushFrame()

	wantB := []FrameMutation{
		{Rect: NewRectF(NewOffsetF(10, 20), NewSizeF(100, 100)), Animated: false},
		{Rect: NewRectF(NewOffsetF(100, 300), NewSizeF(200, 50)), Animated: true},
	}
	if diff := cmp.Diff(wantB, lastMutations(b, 2)); diff != "" {
		t.Errorf("B mutations mismatch (-want +got):\n%s", diff)
	}
	wantA := []FrameMutation{
		{Rect: NewRectF(NewOffsetF(100, 300), NewSizeF(200, 50)), Animated: true},
	}
	if diff := cmp.Diff(wantA, lastMutations(s.a, 1)); diff != "" {
		t.Errorf("A mutations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B"}, frameTags(s.root.RenderChildren())); diff != "" {
		t.Errorf("render children mismatch (-want +got):\n%s", diff)
	}
	if s.gt.State() != TransitionIdle || s.gt.HasInAnim() || s.gt.HasOutAnim() {
		t.Errorf("transition = %s, want settled", s.gt)
	}
	if !b.RenderContext().HasSandBox() || !s.a.RenderContext().HasSandBox() {
		t.Error("both nodes should sit in a sandbox while animating")
	}
	if size, _ := b.LayoutProperty().UserDefinedIdealSize(); size != NewSizeF(200, 50) {
		t.Errorf("B ideal size = %s, want its own 200x50 back", size)
	}
	if size, _ := s.a.LayoutProperty().UserDefinedIdealSize(); size != NewSizeF(100, 100) {
		t.Errorf("A ideal size = %s, want its own 100x100 back", size)
	}

	s.clock.Advance(testAnimation.Duration)
	s.p.FlushFrame()

	if s.a.Parent() != nil || s.a.Depth() != -1 {
		t.Errorf("A parent = %v depth = %d, want purged", s.a.Parent(), s.a.Depth())
	}
	if len(s.root.DisappearingChildren()) != 0 {
		t.Error("disappearing list should be empty after the exit")
	}
	if b.RenderContext().HasSandBox() || s.a.RenderContext().HasSandBox() {
		t.Error("sandboxes should be cleared after the animation")
	}
	if n := memRC(b).SharedTransitionCount(); n != 0 {
		t.Errorf("SharedTransitionCount() = %d, want 0", n)
	}
	if diff := cmp.Diff([]string{"B"}, frameTags(s.root.RenderChildren())); diff != "" {
		t.Errorf("render children mismatch (-want +got):\n%s", diff)
	}
}

func TestGeometryTransition_WithoutScopeRemovesAtOnce(t *testing.T) {
	s := newHeroScene(t, false)

	b := s.swap(false)
	s.p.FlushFrame()

	if s.a.Parent() != nil {
		t.Error("A should be purged when no animation scope is open")
	}
	if diff := cmp.Diff([]string{"B"}, frameTags(s.root.RenderChildren())); diff != "" {
		t.Errorf("render children mismatch (-want +got):\n%s", diff)
	}
	if got := b.GeometryNode().Frame(); got != NewRectF(NewOffsetF(100, 300), NewSizeF(200, 50)) {
		t.Errorf("B frame = %s, want its own layout", got)
	}
}

func TestGeometryTransition_UnmatchedOutSettles(t *testing.T) {
	s := newHeroScene(t, false)

	s.p.OpenImplicitAnimation(testAnimation)
	s.a.MarkRemoving()
	s.root.RemoveChild(s.a.Node(), true)
	s.p.CloseImplicitAnimation()

	if !s.a.IsDisappearing() {
		t.Fatal("A should wait for a partner")
	}
	s.p.FlushFrame()

	if s.a.Parent() != nil {
		t.Error("A without a partner should be purged at the next frame")
	}
	if s.gt.HasOutAnim() {
		t.Error("HasOutAnim() should be cleared")
	}
}

func TestGeometryTransition_ReSync(t *testing.T) {
	type tc struct {
		move   func(b *FrameNode)
		assert func(t *testing.T, s *heroScene, b *FrameNode)
	}

	retarget := AnimationOption{Duration: 120 * time.Millisecond, Curve: CurveLinear}

	tests := map[string]tc{
		"moved in-node retargets the out-node": {
			move: func(b *FrameNode) { memRC(b).SetTranslate(NewOffsetF(0, 40)) },
			assert: func(t *testing.T, s *heroScene, b *FrameNode) {
				want := FrameMutation{Rect: NewRectF(NewOffsetF(100, 340), NewSizeF(200, 50)), Animated: true}
				if diff := cmp.Diff([]FrameMutation{want}, lastMutations(s.a, 1)); diff != "" {
					t.Errorf("A mutations mismatch (-want +got):\n%s", diff)
				}
			},
		},
		"small move is ignored": {
			move: func(b *FrameNode) { memRC(b).SetTranslate(NewOffsetF(0.5, 0)) },
			assert: func(t *testing.T, s *heroScene, b *FrameNode) {
				if n := len(memRC(s.a).Mutations()); n != 0 {
					t.Errorf("got %d A mutations, want none", n)
				}
			},
		},
		"move equal to threshold is ignored": {
			move: func(b *FrameNode) { memRC(b).SetTranslate(NewOffsetF(1, 0)) },
			assert: func(t *testing.T, s *heroScene, b *FrameNode) {
				if n := len(memRC(s.a).Mutations()); n != 0 {
					t.Errorf("got %d A mutations, want none", n)
				}
			},
		},
		"move past threshold retargets": {
			move: func(b *FrameNode) { memRC(b).SetTranslate(NewOffsetF(1.5, 0)) },
			assert: func(t *testing.T, s *heroScene, b *FrameNode) {
				want := FrameMutation{Rect: NewRectF(NewOffsetF(101.5, 300), NewSizeF(200, 50)), Animated: true}
				if diff := cmp.Diff([]FrameMutation{want}, lastMutations(s.a, 1)); diff != "" {
					t.Errorf("A mutations mismatch (-want +got):\n%s", diff)
				}
			},
		},
		"resized in-node lays the out-node out again": {
			move: func(b *FrameNode) {
				b.RenderContext().SetFrameWithoutAnimation(NewRectF(NewOffsetF(100, 300), NewSizeF(250, 50)))
			},
			assert: func(t *testing.T, s *heroScene, b *FrameNode) {
				if !s.gt.HasOutAnim() {
					t.Error("HasOutAnim() = false, want true")
				}
				if s.a.LayoutPriority() != -1 {
					t.Errorf("A LayoutPriority() = %d, want -1", s.a.LayoutPriority())
				}
				found := false
				for _, f := range s.p.DirtyLayoutNodes() {
					found = found || f == s.a
				}
				if !found {
					t.Error("A should be queued for layout")
				}
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newHeroScene(t, false)
			s.p.OpenImplicitAnimation(testAnimation)
			b := s.swap(false)
			s.p.CloseImplicitAnimation()
			s.p.FlushFrame()

			tt.move(b)
			memRC(s.a).ResetMutations()
			s.gt.OnReSync(nil, retarget)

			tt.assert(t, s, b)
		})
	}
}

func TestGeometryTransition_ReSyncTriggerStoresOption(t *testing.T) {
	s := newHeroScene(t, false)
	opt := AnimationOption{Duration: time.Second, Curve: CurveFriction}

	s.gt.OnReSync(s.a, opt)

	if s.gt.resyncOption == nil || *s.gt.resyncOption != opt {
		t.Errorf("resyncOption = %v, want %s", s.gt.resyncOption, opt)
	}
}

func TestGeometryTransition_FollowWithoutTransition(t *testing.T) {
	exit := &AnimationOption{Duration: 200 * time.Millisecond, Curve: CurveEase}
	s := newHeroScene(t, true)
	memRC(s.a).SetTransitionOut(exit)

	b := s.swap(true)

	holder := s.gt.Holder()
	if holder == nil {
		t.Fatal("Holder() = nil, want a placeholder")
	}
	if diff := cmp.Diff([]string{HolderTag}, tags(s.root.Children())); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}
	if b.Parent() != s.a.Node() {
		t.Error("B should follow A")
	}
	if size, ok := holder.LayoutProperty().UserDefinedIdealSize(); !ok || size != NewSizeF(200, 50) {
		t.Errorf("holder ideal size = %s, want 200x50", size)
	}
	if holder.FocusHub().IsEnabled() {
		t.Error("holder focus hub should be disabled")
	}

	s.p.FlushFrame()
	s.clock.Advance(exit.Duration)
	s.p.FlushFrame()

	if diff := cmp.Diff([]string{"B"}, tags(s.root.Children())); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}
	if !b.IsOnMainTree() {
		t.Error("B should be back on the main tree")
	}
	if s.gt.Holder() != nil {
		t.Error("holder should be gone after restore")
	}
	if s.a.Parent() != nil {
		t.Error("A should be purged after its exit")
	}
}

func TestGeometryTransition_ReaddCancelsExit(t *testing.T) {
	exit := &AnimationOption{Duration: 200 * time.Millisecond}
	p, clock := newTestPipeline(t)
	root := newTestRoot(t, p, 400, 400)
	a := NewFrameNode(p.Register(), "A", WithSize(50, 50))
	memRC(a).SetTransitionOut(exit)
	root.AddChild(a.Node(), DefaultNodeSlot, false)
	p.FlushFrame()

	root.RemoveChild(a.Node(), true)
	if !a.IsDisappearing() {
		t.Fatal("A should be disappearing")
	}
	root.AddChild(a.Node(), 0, false)
	clock.Advance(exit.Duration)
	p.FlushFrame()

	if a.Parent() != root.Node() || a.IsDisappearing() {
		t.Error("re-added node should stay an active child")
	}
	if diff := cmp.Diff([]string{"A"}, frameTags(root.RenderChildren())); diff != "" {
		t.Errorf("render children mismatch (-want +got):\n%s", diff)
	}
}
