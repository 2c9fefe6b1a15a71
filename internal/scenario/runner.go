package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	ace "github.com/grindlemire/go-ace"
	"github.com/grindlemire/go-ace/internal/debug"
)

// epoch is where every scenario clock starts, so traces are reproducible.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Result is the trace of one run.
type Result struct {
	Name  string
	Trace []string
}

// WriteTo writes the trace under a header line.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s\n", r.Name)
	for _, line := range r.Trace {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

type runner struct {
	p     *ace.Pipeline
	clock *ace.ManualClock
	root  *ace.FrameNode
	nodes map[string]*ace.FrameNode
	order []string
	trace []string
}

// Run plays s on a new pipeline driven by a manual clock. The root is laid
// out in one frame before the first step.
func Run(ctx context.Context, s *Scenario, opts ...ace.PipelineOption) (*Result, error) {
	clock := ace.NewManualClock(epoch)
	p, err := ace.NewPipeline(append([]ace.PipelineOption{ace.WithClock(clock)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	r := &runner{p: p, clock: clock, nodes: make(map[string]*ace.FrameNode)}

	r.root = r.build(s.Root)
	p.SetRoot(r.root, ace.NewSizeF(s.Root.Size.Width, s.Root.Size.Height))
	r.frame()

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.apply(step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	debug.Debug("scenario finished", "name", s.Name, "frames", p.FrameCount(), "lines", len(r.trace))
	return &Result{Name: s.Name, Trace: r.trace}, nil
}

// build creates n and its subtree. Children are added without attaching;
// they join the main tree with their parent.
func (r *runner) build(n Node) *ace.FrameNode {
	f := ace.NewFrameNode(r.p.Register(), n.Name, nodeOptions(n)...)
	if n.Exit > 0 {
		opt := r.p.Config().DefaultAnimationOption()
		opt.Duration = n.Exit
		memRC(f).SetTransitionOut(&opt)
	}
	r.nodes[n.Name] = f
	r.order = append(r.order, n.Name)
	for _, child := range n.Children {
		f.AddChild(r.build(child).Node(), ace.DefaultNodeSlot, false)
	}
	return f
}

func nodeOptions(n Node) []ace.FrameNodeOption {
	style := ace.DefaultLayoutStyle()
	style.Direction, _ = parseDirection(n.Direction)
	style.Gap = n.Gap
	style.Padding = ace.EdgeAll(n.Padding)
	opts := []ace.FrameNodeOption{ace.WithLayoutStyle(style)}

	if n.Size != nil {
		opts = append(opts, ace.WithSize(n.Size.Width, n.Size.Height))
	}
	if n.Position != nil {
		opts = append(opts, ace.WithPosition(n.Position.X, n.Position.Y))
	}
	if n.Inspector != "" {
		opts = append(opts, ace.WithInspectorID(n.Inspector))
	}
	if v, _ := parseVisibility(n.Visibility); v != ace.Visible {
		opts = append(opts, ace.WithVisibility(v))
	}
	if n.Focusable {
		opts = append(opts, ace.WithFocusable(true))
	}
	if t := n.Transition; t != nil {
		opts = append(opts, ace.WithGeometryTransition(t.ID, t.Follow, t.Shared))
	}
	return opts
}

func (r *runner) node(name string) (*ace.FrameNode, error) {
	f, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownNode, name)
	}
	return f, nil
}

func (r *runner) apply(st Step) error {
	switch st.Op {
	case OpOpen:
		opt, err := r.animationOption(st)
		if err != nil {
			return err
		}
		r.p.OpenImplicitAnimation(opt)
		r.log("open %s", opt)
		return nil
	case OpClose:
		r.p.CloseImplicitAnimation()
		r.log("close")
		return nil
	case OpAdvance:
		r.clock.Advance(st.Duration)
		r.log("advance %s", st.Duration)
		return nil
	case OpFrame:
		for range max(st.Count, 1) {
			r.frame()
		}
		return nil
	case OpDump:
		r.dump("dump")
		return nil
	case OpAdd:
		parent := r.root
		if st.Parent != "" {
			p, err := r.node(st.Parent)
			if err != nil {
				return err
			}
			parent = p
		}
		f := r.build(*st.Node)
		parent.AddChild(f.Node(), slot(st), false)
		r.log("add %s to %s", f.Tag(), parent.Tag())
		return nil
	}

	target, err := r.node(st.Target)
	if err != nil {
		return err
	}
	switch st.Op {
	case OpRemove:
		if st.Transition {
			target.MarkRemoving()
		}
		removed := target.RemoveFromParent(st.Transition)
		r.log("remove %s removed:%t disappearing:%t", target.Tag(), removed, target.IsDisappearing())
	case OpMove:
		target.MovePosition(slot(st))
		r.log("move %s", target.Tag())
	case OpReplace:
		parent := target.Parent()
		if parent == nil {
			return fmt.Errorf("replace %q: node has no parent", st.Target)
		}
		f := r.build(*st.Node)
		parent.ReplaceChild(target.Node(), f.Node())
		r.log("replace %s with %s", target.Tag(), f.Tag())
	case OpClean:
		target.Clean(false, st.Transition)
		r.log("clean %s", target.Tag())
	case OpTranslate:
		memRC(target).SetTranslate(ace.NewOffsetF(st.Offset.X, st.Offset.Y))
		r.log("translate %s %s", target.Tag(), ace.NewOffsetF(st.Offset.X, st.Offset.Y))
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidScenario, st.Op)
	}
	return nil
}

func (r *runner) animationOption(st Step) (ace.AnimationOption, error) {
	opt := r.p.Config().DefaultAnimationOption()
	if st.Duration > 0 {
		opt.Duration = st.Duration
	}
	if st.Curve != "" {
		curve, err := ace.ParseCurve(st.Curve)
		if err != nil {
			return opt, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		opt.Curve = curve
	}
	return opt, nil
}

func slot(st Step) int {
	if st.Slot == nil {
		return ace.DefaultNodeSlot
	}
	return *st.Slot
}

func (r *runner) frame() {
	r.p.FlushFrame()
	r.dump(fmt.Sprintf("frame %d", r.p.FrameCount()))
}

// dump appends the tree, the frame mutations since the last dump and the
// registered transitions.
func (r *runner) dump(header string) {
	r.trace = append(r.trace, header)

	var b strings.Builder
	_ = r.root.DumpTree(&b)
	for _, name := range r.order {
		f := r.nodes[name]
		rc := memRC(f)
		for _, m := range rc.Mutations() {
			fmt.Fprintf(&b, "~ %s %s\n", name, m)
		}
		rc.ResetMutations()
	}
	_ = r.p.Register().DumpGeometryTransitions(&b)

	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		r.trace = append(r.trace, "  "+line)
	}
}

func (r *runner) log(format string, args ...any) {
	r.trace = append(r.trace, fmt.Sprintf(format, args...))
}

func memRC(f *ace.FrameNode) *ace.MemRenderContext {
	return f.RenderContext().(*ace.MemRenderContext)
}

func parseVisibility(name string) (ace.Visibility, error) {
	switch strings.ToLower(name) {
	case "", "visible":
		return ace.Visible, nil
	case "invisible":
		return ace.Invisible, nil
	case "gone":
		return ace.Gone, nil
	default:
		return ace.Visible, fmt.Errorf("unknown visibility %q", name)
	}
}

func parseDirection(name string) (ace.Direction, error) {
	switch strings.ToLower(name) {
	case "", "stack":
		return ace.Stack, nil
	case "row":
		return ace.Row, nil
	case "column":
		return ace.Column, nil
	default:
		return ace.Stack, fmt.Errorf("unknown direction %q", name)
	}
}
