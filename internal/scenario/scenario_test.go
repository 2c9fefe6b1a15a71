package scenario

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ace "github.com/grindlemire/go-ace"
	"github.com/grindlemire/go-ace/internal/debug"
)

func TestMain(m *testing.M) {
	debug.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// section returns the trace lines from header up to the next unindented line.
func section(trace []string, header string) []string {
	for i, line := range trace {
		if line != header {
			continue
		}
		end := i + 1
		for end < len(trace) && strings.HasPrefix(trace[end], "  ") {
			end++
		}
		return trace[i+1 : end]
	}
	return nil
}

func TestParse_Errors(t *testing.T) {
	type tc struct {
		yaml    string
		wantErr error
		wantMsg string
	}

	tests := map[string]tc{
		"root without size": {
			yaml:    "root: {name: root}\n",
			wantErr: ErrInvalidScenario,
			wantMsg: "root needs a size",
		},
		"duplicate node": {
			yaml:    "root:\n  size: {width: 1, height: 1}\n  children:\n    - name: a\n    - name: a\n",
			wantErr: ErrInvalidScenario,
			wantMsg: "duplicate node",
		},
		"unknown target": {
			yaml:    "root:\n  size: {width: 1, height: 1}\nsteps:\n  - op: remove\n    target: ghost\n",
			wantErr: ErrUnknownNode,
			wantMsg: "step 1 (remove)",
		},
		"node used before it is added": {
			yaml: "root:\n  size: {width: 1, height: 1}\nsteps:\n" +
				"  - op: move\n    target: late\n" +
				"  - op: add\n    node: {name: late}\n",
			wantErr: ErrUnknownNode,
		},
		"unknown op": {
			yaml:    "root:\n  size: {width: 1, height: 1}\nsteps:\n  - op: explode\n",
			wantErr: ErrInvalidScenario,
			wantMsg: "unknown op",
		},
		"advance without duration": {
			yaml:    "root:\n  size: {width: 1, height: 1}\nsteps:\n  - op: advance\n",
			wantErr: ErrInvalidScenario,
		},
		"bad visibility": {
			yaml:    "root:\n  size: {width: 1, height: 1}\n  visibility: hidden\n",
			wantErr: ErrInvalidScenario,
			wantMsg: "unknown visibility",
		},
		"malformed": {
			yaml:    "root: [",
			wantErr: ErrInvalidScenario,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "hero.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "hero swap", s.Name)
	assert.Equal(t, "root", s.Root.Name)
	require.Len(t, s.Steps, 7)
	assert.Equal(t, OpOpen, s.Steps[0].Op)
	require.NotNil(t, s.Root.Children[0].Transition)
	assert.Equal(t, "hero", s.Root.Children[0].Transition.ID)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	assert.ErrorContains(t, err, "read scenario")
}

func TestRun_HeroSwap(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "hero.yaml"))
	require.NoError(t, err)

	res, err := Run(context.Background(), s)
	require.NoError(t, err)

	during := section(res.Trace, "frame 2")
	require.NotEmpty(t, during)
	joined := strings.Join(during, "\n")
	assert.Contains(t, joined, "A#2 depth:1 removing disappearing")
	assert.Contains(t, joined, "~ B RectT (100.00, 300.00) - [200.00 x 50.00] animated")
	assert.Contains(t, joined, "~ A RectT (100.00, 300.00) - [200.00 x 50.00] animated")
	assert.Contains(t, joined, "hero in:B#3 out:A#2 state:idle")

	after := strings.Join(section(res.Trace, "frame 3"), "\n")
	assert.NotContains(t, after, "A#2 depth")
	assert.Contains(t, after, "B#3 depth:1 onMainTree")
}

func TestRun_ListWithExits(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "list.yaml"))
	require.NoError(t, err)

	res, err := Run(context.Background(), s)
	require.NoError(t, err)

	fading := strings.Join(section(res.Trace, "frame 2"), "\n")
	assert.Contains(t, fading, "second#3 depth:1 removing disappearing")
	assert.Contains(t, fading, "~ third RectT (8.00, 32.00) - [50.00 x 20.00]")

	dump := section(res.Trace, "dump")
	require.GreaterOrEqual(t, len(dump), 4)
	assert.Contains(t, dump[1], "third#4")
	assert.Contains(t, dump[2], "first#2")

	final := strings.Join(section(res.Trace, "frame 4"), "\n")
	assert.NotContains(t, final, "second#3 depth")
}

func TestRun_Errors(t *testing.T) {
	t.Run("unknown node at run time", func(t *testing.T) {
		s := &Scenario{
			Root:  Node{Name: "root", Size: &Size{Width: 10, Height: 10}},
			Steps: []Step{{Op: OpClean, Target: "ghost"}},
		}
		_, err := Run(context.Background(), s)
		assert.ErrorIs(t, err, ErrUnknownNode)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := &Scenario{
			Root:  Node{Name: "root", Size: &Size{Width: 10, Height: 10}},
			Steps: []Step{{Op: OpFrame}},
		}
		_, err := Run(ctx, s)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("pipeline option error", func(t *testing.T) {
		s := &Scenario{Root: Node{Name: "root", Size: &Size{Width: 10, Height: 10}}}
		_, err := Run(context.Background(), s, ace.WithFrameRate(0))
		assert.ErrorContains(t, err, "create pipeline")
	})
}

func TestResult_WriteTo(t *testing.T) {
	res := &Result{Name: "demo", Trace: []string{"frame 1", "  root#1"}}
	var buf bytes.Buffer

	n, err := res.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "== demo\nframe 1\n  root#1\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}
