package layout

import "testing"

// testNode is a minimal Layoutable used by the engine tests.
type testNode struct {
	style    Style
	children []*testNode
	measured *SizeF
	frame    RectF
}

func newTestNode(style Style, children ...*testNode) *testNode {
	return &testNode{style: style, children: children}
}

func (n *testNode) LayoutStyle() Style { return n.style }

func (n *testNode) LayoutChildren() []Layoutable {
	out := make([]Layoutable, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *testNode) MeasuredSize() (SizeF, bool) {
	if n.measured == nil {
		return SizeF{}, false
	}
	return *n.measured, true
}

func (n *testNode) SetMeasuredSize(size SizeF, _ SizeF) { n.measured = &size }

func (n *testNode) SetFrame(frame RectF) { n.frame = frame }

func fixed(w, h float64) Style {
	s := DefaultStyle()
	s.Width = Fixed(w)
	s.Height = Fixed(h)
	return s
}

func TestCalculate_SingleNode(t *testing.T) {
	type tc struct {
		style    Style
		avail    SizeF
		expected SizeF
	}

	tests := map[string]tc{
		"fixed width and height": {
			style:    fixed(50, 30),
			avail:    NewSizeF(100, 100),
			expected: NewSizeF(50, 30),
		},
		"auto leaf fills available space": {
			style:    DefaultStyle(),
			avail:    NewSizeF(100, 80),
			expected: NewSizeF(100, 80),
		},
		"percent of available": {
			style: func() Style {
				s := DefaultStyle()
				s.Width = Percent(50)
				s.Height = Percent(25)
				return s
			}(),
			avail:    NewSizeF(200, 100),
			expected: NewSizeF(100, 25),
		},
		"max clamps fixed": {
			style: func() Style {
				s := fixed(300, 300)
				s.MaxWidth = Fixed(120)
				return s
			}(),
			avail:    NewSizeF(400, 400),
			expected: NewSizeF(120, 300),
		},
		"min wins over max": {
			style: func() Style {
				s := fixed(10, 10)
				s.MinHeight = Fixed(40)
				s.MaxHeight = Fixed(20)
				return s
			}(),
			avail:    NewSizeF(100, 100),
			expected: NewSizeF(10, 40),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			node := newTestNode(tt.style)
			Calculate(node, OffsetF{}, tt.avail)

			if node.frame.Size() != tt.expected {
				t.Errorf("frame size = %v, want %v", node.frame.Size(), tt.expected)
			}
			if node.frame.Offset() != (OffsetF{}) {
				t.Errorf("frame offset = %v, want origin", node.frame.Offset())
			}
		})
	}
}

func TestCalculate_Containers(t *testing.T) {
	type tc struct {
		direction  Direction
		gap        float64
		padding    Edges
		wantParent SizeF
		wantFrames []RectF
	}

	tests := map[string]tc{
		"column stacks vertically": {
			direction:  Column,
			gap:        5,
			wantParent: NewSizeF(40, 55),
			wantFrames: []RectF{{X: 0, Y: 0, Width: 20, Height: 10}, {X: 0, Y: 15, Width: 40, Height: 40}},
		},
		"row stacks horizontally": {
			direction:  Row,
			wantParent: NewSizeF(60, 40),
			wantFrames: []RectF{{X: 0, Y: 0, Width: 20, Height: 10}, {X: 20, Y: 0, Width: 40, Height: 40}},
		},
		"stack overlaps with padding": {
			direction:  Stack,
			padding:    EdgeAll(2),
			wantParent: NewSizeF(44, 44),
			wantFrames: []RectF{{X: 2, Y: 2, Width: 20, Height: 10}, {X: 2, Y: 2, Width: 40, Height: 40}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := newTestNode(fixed(20, 10))
			b := newTestNode(fixed(40, 40))
			style := DefaultStyle()
			style.Direction = tt.direction
			style.Gap = tt.gap
			style.Padding = tt.padding
			parent := newTestNode(style, a, b)

			Calculate(parent, NewOffsetF(7, 9), NewSizeF(500, 500))

			if parent.frame != NewRectF(NewOffsetF(7, 9), tt.wantParent) {
				t.Errorf("parent frame = %v, want offset (7,9) size %v", parent.frame, tt.wantParent)
			}
			for i, child := range []*testNode{a, b} {
				if child.frame != tt.wantFrames[i] {
					t.Errorf("child %d frame = %v, want %v", i, child.frame, tt.wantFrames[i])
				}
			}
		})
	}
}

func TestMeasure_ReusesCachedSize(t *testing.T) {
	child := newTestNode(fixed(30, 30))
	cached := NewSizeF(99, 11)
	child.measured = &cached

	style := DefaultStyle()
	style.Direction = Column
	parent := newTestNode(style, child)
	Calculate(parent, OffsetF{}, NewSizeF(200, 200))

	if child.frame.Size() != cached {
		t.Errorf("child size = %v, want cached %v", child.frame.Size(), cached)
	}
	if parent.frame.Size() != cached {
		t.Errorf("parent size = %v, want %v", parent.frame.Size(), cached)
	}
}

func TestRectF_Ops(t *testing.T) {
	r := NewRectF(NewOffsetF(10, 20), NewSizeF(30, 40))

	if got := r.Translate(NewOffsetF(-10, 5)); got != (RectF{X: 0, Y: 25, Width: 30, Height: 40}) {
		t.Errorf("Translate = %v", got)
	}
	if !r.Contains(NewOffsetF(10, 20)) || r.Contains(NewOffsetF(40, 20)) {
		t.Error("Contains should include top-left edge and exclude right edge")
	}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right/Bottom = %v/%v", r.Right(), r.Bottom())
	}
	if !NewOffsetF(1, 1).NearEqual(NewOffsetF(1.5, 0.2), 1.0) {
		t.Error("offsets within epsilon should be near equal")
	}
	if NewSizeF(1, 1).NearEqual(NewSizeF(2, 1), 1.0) {
		t.Error("a full epsilon apart should not be near equal")
	}
}
