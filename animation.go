package ace

import (
	"fmt"
	"strings"
	"time"
)

// Curve names the easing of an animation.
type Curve uint8

const (
	CurveLinear Curve = iota
	CurveEase
	CurveEaseInOut
	CurveFriction
)

func (c Curve) String() string {
	switch c {
	case CurveEase:
		return "ease"
	case CurveEaseInOut:
		return "ease-in-out"
	case CurveFriction:
		return "friction"
	default:
		return "linear"
	}
}

// ParseCurve converts a curve name as written in config files.
func ParseCurve(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return CurveLinear, nil
	case "ease":
		return CurveEase, nil
	case "ease-in-out", "easeinout":
		return CurveEaseInOut, nil
	case "friction":
		return CurveFriction, nil
	default:
		return CurveLinear, fmt.Errorf("unknown curve %q", name)
	}
}

// AnimationOption describes how property changes are animated.
type AnimationOption struct {
	Duration time.Duration
	Delay    time.Duration
	Curve    Curve
}

// IsZero reports whether the option has no duration, delay or curve.
func (o AnimationOption) IsZero() bool {
	return o == AnimationOption{}
}

// End returns the time an animation started at start finishes.
func (o AnimationOption) End(start time.Time) time.Time {
	return start.Add(o.Delay + o.Duration)
}

func (o AnimationOption) String() string {
	return fmt.Sprintf("%s %s+%s", o.Curve, o.Duration, o.Delay)
}
