// Package scenario loads YAML scripts that build a node tree, mutate it
// inside and outside implicit animation scopes, and flush frames on a manual
// clock. Running a scenario produces a text trace of the tree, the frame
// mutations and the geometry transitions after every frame.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownNode is returned when a step names a node that does not exist.
	ErrUnknownNode = errors.New("unknown node")
	// ErrInvalidScenario is returned when a scenario file fails validation.
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Scenario is one script.
type Scenario struct {
	Name  string `yaml:"name"`
	Root  Node   `yaml:"root"`
	Steps []Step `yaml:"steps"`
}

// Node describes a frame node and, through Children, its subtree.
type Node struct {
	Name       string        `yaml:"name"`
	Size       *Size         `yaml:"size,omitempty"`
	Position   *Point        `yaml:"position,omitempty"`
	Direction  string        `yaml:"direction,omitempty"`
	Gap        float64       `yaml:"gap,omitempty"`
	Padding    float64       `yaml:"padding,omitempty"`
	Inspector  string        `yaml:"inspector,omitempty"`
	Visibility string        `yaml:"visibility,omitempty"`
	Focusable  bool          `yaml:"focusable,omitempty"`
	Transition *Transition   `yaml:"transition,omitempty"`
	Exit       time.Duration `yaml:"exit,omitempty"`
	Children   []Node        `yaml:"children,omitempty"`
}

// Size is a width and height in logical pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Point is an offset in logical pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Transition binds a node to a geometry transition id.
type Transition struct {
	ID     string `yaml:"id"`
	Follow bool   `yaml:"follow,omitempty"`
	Shared bool   `yaml:"shared,omitempty"`
}

// Op names a step.
type Op string

const (
	OpOpen      Op = "open"      // open an implicit animation scope
	OpClose     Op = "close"     // close the innermost scope
	OpAdd       Op = "add"       // add Node under Parent at Slot
	OpRemove    Op = "remove"    // remove Target, with its exit when Transition is set
	OpMove      Op = "move"      // move Target to Slot
	OpReplace   Op = "replace"   // put Node in Target's slot
	OpClean     Op = "clean"     // remove every child of Target
	OpTranslate Op = "translate" // set Target's paint translation to Offset
	OpAdvance   Op = "advance"   // move the clock by Duration
	OpFrame     Op = "frame"     // flush Count frames, default 1
	OpDump      Op = "dump"      // write the tree without flushing
)

// Step is one scripted action. Which fields apply depends on Op.
type Step struct {
	Op         Op            `yaml:"op"`
	Target     string        `yaml:"target,omitempty"`
	Parent     string        `yaml:"parent,omitempty"`
	Slot       *int          `yaml:"slot,omitempty"`
	Node       *Node         `yaml:"node,omitempty"`
	Transition bool          `yaml:"transition,omitempty"`
	Duration   time.Duration `yaml:"duration,omitempty"`
	Curve      string        `yaml:"curve,omitempty"`
	Offset     *Point        `yaml:"offset,omitempty"`
	Count      int           `yaml:"count,omitempty"`
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks node names and step fields. Nodes added by steps count as
// declared from the step that adds them on.
func (s *Scenario) Validate() error {
	if s.Root.Size == nil {
		return fmt.Errorf("%w: root needs a size", ErrInvalidScenario)
	}
	if s.Root.Name == "" {
		s.Root.Name = "root"
	}
	names := map[string]bool{}
	if err := declare(names, s.Root); err != nil {
		return err
	}
	for i, step := range s.Steps {
		if err := step.validate(names); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

func declare(names map[string]bool, n Node) error {
	if n.Name == "" {
		return fmt.Errorf("%w: node without a name", ErrInvalidScenario)
	}
	if names[n.Name] {
		return fmt.Errorf("%w: duplicate node %q", ErrInvalidScenario, n.Name)
	}
	if _, err := parseVisibility(n.Visibility); err != nil {
		return fmt.Errorf("%w: node %q: %v", ErrInvalidScenario, n.Name, err)
	}
	if _, err := parseDirection(n.Direction); err != nil {
		return fmt.Errorf("%w: node %q: %v", ErrInvalidScenario, n.Name, err)
	}
	names[n.Name] = true
	for _, child := range n.Children {
		if err := declare(names, child); err != nil {
			return err
		}
	}
	return nil
}

func (st Step) validate(names map[string]bool) error {
	need := func(name string) error {
		if !names[name] {
			return fmt.Errorf("%w %q", ErrUnknownNode, name)
		}
		return nil
	}
	switch st.Op {
	case OpOpen, OpClose, OpDump:
		return nil
	case OpAdvance:
		if st.Duration <= 0 {
			return fmt.Errorf("%w: advance needs a positive duration", ErrInvalidScenario)
		}
		return nil
	case OpFrame:
		if st.Count < 0 {
			return fmt.Errorf("%w: negative frame count", ErrInvalidScenario)
		}
		return nil
	case OpAdd:
		if st.Node == nil {
			return fmt.Errorf("%w: add needs a node", ErrInvalidScenario)
		}
		if st.Parent != "" {
			if err := need(st.Parent); err != nil {
				return err
			}
		}
		return declare(names, *st.Node)
	case OpReplace:
		if st.Node == nil {
			return fmt.Errorf("%w: replace needs a node", ErrInvalidScenario)
		}
		if err := need(st.Target); err != nil {
			return err
		}
		return declare(names, *st.Node)
	case OpTranslate:
		if st.Offset == nil {
			return fmt.Errorf("%w: translate needs an offset", ErrInvalidScenario)
		}
		return need(st.Target)
	case OpRemove, OpMove, OpClean:
		return need(st.Target)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidScenario, st.Op)
	}
}
