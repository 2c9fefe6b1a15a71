package ace

import (
	"fmt"
	"weak"
)

// BorderRadius holds the four corner radii of a node.
type BorderRadius struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// BorderRadiusAll returns a BorderRadius with the same value on every corner.
func BorderRadiusAll(r float64) BorderRadius {
	return BorderRadius{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// RenderContext is the scene graph side of a FrameNode. It owns the painted
// frame, paint transforms and exit transitions.
type RenderContext interface {
	// SetHostNode binds the context to the frame node it paints.
	SetHostNode(host *FrameNode)

	// SetFrameWithoutAnimation sets the painted frame, bypassing any open
	// implicit animation scope.
	SetFrameWithoutAnimation(frame RectF)
	// SyncGeometryProperties copies the host's laid-out frame into the
	// painted frame. Inside an implicit scope the change is animated.
	SyncGeometryProperties(frame RectF)
	// PaintRect returns the painted frame relative to the parent.
	PaintRect() RectF

	SetBorderRadius(radius BorderRadius)
	BorderRadius() (BorderRadius, bool)

	// SetSandBox pins the parent's global offset to offset. A nil offset
	// clears the sandbox.
	SetSandBox(offset *OffsetF)
	HasSandBox() bool

	RegisterSharedTransition(other RenderContext)
	UnregisterSharedTransition(other RenderContext)

	// PaintRectGlobalOffsetWithTranslate returns the window offset of the
	// painted frame including translations. With excludeSelf set it returns
	// the offset of the parent's content origin.
	PaintRectGlobalOffsetWithTranslate(excludeSelf bool) OffsetF
	// TransformRectRelativeToWindow returns the painted frame in window
	// coordinates.
	TransformRectRelativeToWindow() RectF

	// OnNodeAppear is called when the host joins the main tree.
	OnNodeAppear(recursive bool)
	// OnNodeDisappear is called when the host leaves the main tree. A
	// non-recursive disappear may start the exit transition.
	OnNodeDisappear(recursive bool)
	// HasTransitionOutAnimation reports whether an exit transition is running.
	HasTransitionOutAnimation() bool
}

// FrameMutation is one recorded change of a painted frame.
type FrameMutation struct {
	Rect     RectF
	Animated bool
}

func (m FrameMutation) String() string {
	if m.Animated {
		return fmt.Sprintf("%s animated", m.Rect)
	}
	return m.Rect.String()
}

// MemRenderContext is an in-memory RenderContext. It applies every change
// immediately and records frame mutations so callers can inspect what a
// backend would have been asked to do.
type MemRenderContext struct {
	host weak.Pointer[FrameNode]

	paintRect    RectF
	translate    OffsetF
	borderRadius *BorderRadius
	sandbox      *OffsetF
	opacity      float64

	shared []RenderContext

	transitionOut *AnimationOption
	disappearing  bool
	// generation invalidates the finish callback of a cancelled exit.
	generation uint64

	mutations []FrameMutation
}

// NewMemRenderContext creates an empty, fully opaque render context.
func NewMemRenderContext() *MemRenderContext {
	return &MemRenderContext{opacity: 1}
}

// SetHostNode binds the context to host.
func (c *MemRenderContext) SetHostNode(host *FrameNode) {
	if host == nil {
		c.host = weak.Pointer[FrameNode]{}
		return
	}
	c.host = weak.Make(host)
}

// Host returns the frame node the context paints, or nil.
func (c *MemRenderContext) Host() *FrameNode {
	return c.host.Value()
}

func (c *MemRenderContext) pipeline() *Pipeline {
	if host := c.Host(); host != nil {
		return host.context
	}
	return nil
}

func (c *MemRenderContext) animating() bool {
	ctx := c.pipeline()
	return ctx != nil && ctx.IsImplicitAnimationOpen()
}

func (c *MemRenderContext) SetFrameWithoutAnimation(frame RectF) {
	c.paintRect = frame
	c.mutations = append(c.mutations, FrameMutation{Rect: frame})
}

func (c *MemRenderContext) SyncGeometryProperties(frame RectF) {
	c.paintRect = frame
	c.mutations = append(c.mutations, FrameMutation{Rect: frame, Animated: c.animating()})
}

func (c *MemRenderContext) PaintRect() RectF {
	return c.paintRect
}

// SetTranslate sets the paint translation applied on top of the frame.
func (c *MemRenderContext) SetTranslate(offset OffsetF) {
	c.translate = offset
}

func (c *MemRenderContext) SetBorderRadius(radius BorderRadius) {
	c.borderRadius = &radius
}

func (c *MemRenderContext) BorderRadius() (BorderRadius, bool) {
	if c.borderRadius == nil {
		return BorderRadius{}, false
	}
	return *c.borderRadius, true
}

func (c *MemRenderContext) SetSandBox(offset *OffsetF) {
	if offset == nil {
		c.sandbox = nil
		return
	}
	pos := *offset
	c.sandbox = &pos
}

func (c *MemRenderContext) HasSandBox() bool {
	return c.sandbox != nil
}

func (c *MemRenderContext) RegisterSharedTransition(other RenderContext) {
	if other == nil {
		return
	}
	for _, rc := range c.shared {
		if rc == other {
			return
		}
	}
	c.shared = append(c.shared, other)
}

func (c *MemRenderContext) UnregisterSharedTransition(other RenderContext) {
	for i, rc := range c.shared {
		if rc == other {
			c.shared = append(c.shared[:i], c.shared[i+1:]...)
			return
		}
	}
}

// SharedTransitionCount returns the number of registered shared transitions.
func (c *MemRenderContext) SharedTransitionCount() int {
	return len(c.shared)
}

func (c *MemRenderContext) PaintRectGlobalOffsetWithTranslate(excludeSelf bool) OffsetF {
	var offset OffsetF
	if !excludeSelf {
		offset = c.paintRect.Offset().Add(c.translate)
	}
	if c.sandbox != nil {
		return offset.Add(*c.sandbox)
	}
	host := c.Host()
	if host == nil {
		return offset
	}
	parent := host.AncestorFrameNode()
	if parent == nil {
		return offset
	}
	return offset.Add(parent.renderContext.PaintRectGlobalOffsetWithTranslate(false))
}

func (c *MemRenderContext) TransformRectRelativeToWindow() RectF {
	return NewRectF(c.PaintRectGlobalOffsetWithTranslate(false), c.paintRect.Size())
}

// SetTransitionOut configures the exit transition played on a non-recursive
// disappear. A nil option removes it.
func (c *MemRenderContext) SetTransitionOut(opt *AnimationOption) {
	if opt == nil {
		c.transitionOut = nil
		return
	}
	o := *opt
	c.transitionOut = &o
}

func (c *MemRenderContext) OnNodeAppear(recursive bool) {
	if c.disappearing {
		// Re-added while fading out: cancel the pending finish.
		c.disappearing = false
		c.generation++
	}
	c.opacity = 1
}

func (c *MemRenderContext) OnNodeDisappear(recursive bool) {
	if recursive || c.transitionOut == nil {
		return
	}
	ctx := c.pipeline()
	if ctx == nil {
		return
	}
	c.disappearing = true
	c.generation++
	gen := c.generation
	ctx.Animate(*c.transitionOut, func() {
		c.opacity = 0
	}, func() {
		if c.generation != gen || !c.disappearing {
			return
		}
		c.disappearing = false
		if host := c.Host(); host != nil {
			host.OnTransitionOutFinish()
		}
	})
}

func (c *MemRenderContext) HasTransitionOutAnimation() bool {
	return c.disappearing
}

// Opacity returns the current opacity.
func (c *MemRenderContext) Opacity() float64 {
	return c.opacity
}

// Mutations returns a copy of the recorded frame mutations.
func (c *MemRenderContext) Mutations() []FrameMutation {
	out := make([]FrameMutation, len(c.mutations))
	copy(out, c.mutations)
	return out
}

// ResetMutations forgets the recorded frame mutations.
func (c *MemRenderContext) ResetMutations() {
	c.mutations = nil
}
