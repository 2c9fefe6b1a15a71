package ace

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/grindlemire/go-ace/internal/debug"
)

// Clock supplies the current time to animations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type runningAnimation struct {
	end    time.Time
	finish func()
}

// Pipeline is the per-instance context of a node tree. It schedules frames,
// runs layout and after-layout tasks, owns the implicit animation scope and
// the task executor.
//
// Everything except RequestFrame, NeedsFrame and TaskExecutor().PostTask must
// be called from the goroutine that owns the pipeline.
type Pipeline struct {
	instanceID    int32
	config        Config
	clock         Clock
	frameDuration time.Duration
	taskQueueSize int

	register *ElementRegister
	focus    *FocusManager
	executor *TaskExecutor

	root     *FrameNode
	rootSize SizeF

	needsFrame atomic.Bool
	frameCount uint64

	dirtyLayoutNodes []*FrameNode
	layoutPassID     uint64
	afterLayoutTasks []func()

	implicitScopes []AnimationOption
	animations     []runningAnimation
}

// NewPipeline creates a Pipeline with the given options.
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	cfg := DefaultConfig()
	p := &Pipeline{
		config:        cfg,
		clock:         systemClock{},
		frameDuration: time.Second / time.Duration(cfg.FrameRate),
		taskQueueSize: 256,
		focus:         NewFocusManager(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("failed to apply pipeline option: %w", err)
		}
	}
	if p.register == nil {
		p.register = NewElementRegister()
	}
	p.executor = newTaskExecutor(p.taskQueueSize)
	return p, nil
}

// InstanceID returns the container instance id.
func (p *Pipeline) InstanceID() int32 {
	return p.instanceID
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Clock returns the pipeline's time source.
func (p *Pipeline) Clock() Clock {
	return p.clock
}

// FrameDuration returns the target time between frames.
func (p *Pipeline) FrameDuration() time.Duration {
	return p.frameDuration
}

// Register returns the element register of the pipeline.
func (p *Pipeline) Register() *ElementRegister {
	return p.register
}

// FocusManager returns the pipeline's focus manager.
func (p *Pipeline) FocusManager() *FocusManager {
	return p.focus
}

// TaskExecutor returns the pipeline's task queue.
func (p *Pipeline) TaskExecutor() *TaskExecutor {
	return p.executor
}

// Root returns the root frame node, or nil.
func (p *Pipeline) Root() *FrameNode {
	return p.root
}

// SetRoot makes root the top of the main tree and lays it out in a window of
// the given size.
func (p *Pipeline) SetRoot(root *FrameNode, size SizeF) {
	if p.root != nil && p.root != root {
		p.root.DetachFromMainTree(true)
	}
	p.root = root
	p.rootSize = size
	if root == nil {
		return
	}
	root.SetDepth(0)
	root.AttachToMainTree(false, p)
	root.markDirtyNode(PropertyUpdateMeasure)
}

// RootSize returns the window size the root is laid out in.
func (p *Pipeline) RootSize() SizeF {
	return p.rootSize
}

// RequestFrame asks for another frame. Safe to call from any goroutine.
func (p *Pipeline) RequestFrame() {
	p.needsFrame.Store(true)
}

// NeedsFrame reports whether a frame was requested since the last flush.
func (p *Pipeline) NeedsFrame() bool {
	return p.needsFrame.Load()
}

// FrameCount returns the number of flushed frames.
func (p *Pipeline) FrameCount() uint64 {
	return p.frameCount
}

// AddAfterLayoutTask queues fn to run once the current layout flush ends.
func (p *Pipeline) AddAfterLayoutTask(fn func()) {
	if fn == nil {
		return
	}
	p.afterLayoutTasks = append(p.afterLayoutTasks, fn)
	p.RequestFrame()
}

// FlushAfterLayoutTasks runs the queued after-layout tasks, including tasks
// queued while running them.
func (p *Pipeline) FlushAfterLayoutTasks() {
	for len(p.afterLayoutTasks) > 0 {
		tasks := p.afterLayoutTasks
		p.afterLayoutTasks = nil
		for _, task := range tasks {
			task()
		}
	}
}

// FlushTasks runs the tasks posted to the task executor. UI tasks run before
// platform tasks.
func (p *Pipeline) FlushTasks() {
	ui, platform := p.executor.drain()
	for _, task := range ui {
		task(p)
	}
	for _, task := range platform {
		task(p)
	}
}

// OpenImplicitAnimation opens an implicit animation scope. Frame changes made
// while a scope is open are animated with opt.
func (p *Pipeline) OpenImplicitAnimation(opt AnimationOption) {
	p.implicitScopes = append(p.implicitScopes, opt)
}

// CloseImplicitAnimation closes the innermost implicit animation scope.
func (p *Pipeline) CloseImplicitAnimation() {
	if len(p.implicitScopes) == 0 {
		return
	}
	p.implicitScopes = p.implicitScopes[:len(p.implicitScopes)-1]
}

// IsImplicitAnimationOpen reports whether an implicit animation scope is open.
func (p *Pipeline) IsImplicitAnimationOpen() bool {
	return len(p.implicitScopes) > 0
}

// ImplicitAnimationOption returns the option of the innermost open scope, or
// the configured default when no scope is open.
func (p *Pipeline) ImplicitAnimationOption() AnimationOption {
	if n := len(p.implicitScopes); n > 0 {
		return p.implicitScopes[n-1]
	}
	return p.config.DefaultAnimationOption()
}

// Animate runs props inside a scope animated with opt. finish runs in the
// first FlushAnimations after the animation's end.
func (p *Pipeline) Animate(opt AnimationOption, props func(), finish func()) {
	p.OpenImplicitAnimation(opt)
	if props != nil {
		props()
	}
	p.CloseImplicitAnimation()
	if finish == nil {
		return
	}
	p.animations = append(p.animations, runningAnimation{end: opt.End(p.clock.Now()), finish: finish})
	p.RequestFrame()
}

// RunningAnimations returns the number of animations that have not finished.
func (p *Pipeline) RunningAnimations() int {
	return len(p.animations)
}

// FlushAnimations runs the finish callbacks of animations that have ended.
func (p *Pipeline) FlushAnimations() {
	now := p.clock.Now()
	var due []func()
	kept := p.animations[:0]
	for _, a := range p.animations {
		if !now.Before(a.end) {
			due = append(due, a.finish)
		} else {
			kept = append(kept, a)
		}
	}
	p.animations = kept
	if len(p.animations) > 0 {
		p.RequestFrame()
	}
	for _, finish := range due {
		finish()
	}
}

// FlushFrame runs one frame: posted tasks, layout, after-layout tasks,
// transition resync, finished animations, then the end of frame cleanup.
func (p *Pipeline) FlushFrame() {
	p.needsFrame.Store(false)
	p.frameCount++

	p.FlushTasks()
	p.FlushLayout()
	p.FlushAfterLayoutTasks()
	p.register.ReSyncGeometryTransitions(nil, p.config.DefaultAnimationOption())
	p.FlushAnimations()
	p.FlushTasks()
	p.FlushRenderTree()
	p.register.ClearPendingRemoveNodes()
	p.register.SweepGeometryTransitions()

	debug.Debug("frame flushed", "instance", p.instanceID, "frame", p.frameCount, "animations", len(p.animations))
}

// FlushRenderTree regenerates stale render children from the root down.
func (p *Pipeline) FlushRenderTree() {
	if p.root == nil {
		return
	}
	var sync func(f *FrameNode)
	sync = func(f *FrameNode) {
		f.SyncRenderTree()
		for _, child := range f.renderChildren {
			sync(child)
		}
	}
	sync(p.root)
}
