package ace

import (
	"slices"

	"github.com/grindlemire/go-ace/internal/debug"
)

// FocusHub is the focus state of one FrameNode.
type FocusHub struct {
	focusable bool
	enabled   bool
	focused   bool

	onFocus func()
	onBlur  func()
}

// NewFocusHub creates an enabled hub.
func NewFocusHub(focusable bool) *FocusHub {
	return &FocusHub{focusable: focusable, enabled: true}
}

// IsFocusable reports whether the hub can take focus right now.
func (h *FocusHub) IsFocusable() bool {
	return h != nil && h.focusable && h.enabled
}

// IsEnabled reports whether the hub is enabled.
func (h *FocusHub) IsEnabled() bool {
	return h.enabled
}

// SetEnabled enables or disables the hub. Disabling a focused hub blurs it.
func (h *FocusHub) SetEnabled(enabled bool) {
	h.enabled = enabled
	if !enabled && h.focused {
		h.blur()
	}
}

// IsFocused reports whether the hub holds focus.
func (h *FocusHub) IsFocused() bool {
	return h.focused
}

// SetOnFocus sets the callback run when the hub gains focus.
func (h *FocusHub) SetOnFocus(fn func()) {
	h.onFocus = fn
}

// SetOnBlur sets the callback run when the hub loses focus.
func (h *FocusHub) SetOnBlur(fn func()) {
	h.onBlur = fn
}

func (h *FocusHub) focus() {
	if h.focused {
		return
	}
	h.focused = true
	if h.onFocus != nil {
		h.onFocus()
	}
}

func (h *FocusHub) blur() {
	if !h.focused {
		return
	}
	h.focused = false
	if h.onBlur != nil {
		h.onBlur()
	}
}

// FocusManager tracks focus across the hubs of a pipeline. Hubs register in
// attach order; moving focus is left to the caller.
type FocusManager struct {
	hubs    []*FocusHub
	current int // -1 when nothing is focused
}

// NewFocusManager creates an empty FocusManager.
func NewFocusManager() *FocusManager {
	return &FocusManager{current: -1}
}

// Register adds hub. The first focusable hub takes focus.
func (f *FocusManager) Register(hub *FocusHub) {
	if hub == nil || slices.Contains(f.hubs, hub) {
		return
	}
	f.hubs = append(f.hubs, hub)
	if f.current == -1 && hub.IsFocusable() {
		f.current = len(f.hubs) - 1
		hub.focus()
	}
	debug.Debug("focus register", "hubs", len(f.hubs), "current", f.current)
}

// Unregister removes hub. If it was focused, focus moves to the next
// focusable hub.
func (f *FocusManager) Unregister(hub *FocusHub) {
	idx := slices.Index(f.hubs, hub)
	if idx == -1 {
		return
	}
	wasFocused := idx == f.current
	if wasFocused {
		hub.blur()
	}
	f.hubs = slices.Delete(f.hubs, idx, idx+1)

	switch {
	case len(f.hubs) == 0:
		f.current = -1
	case wasFocused:
		start := idx
		if start >= len(f.hubs) {
			start = 0
		}
		f.focusFrom(start, 1)
	case idx < f.current:
		f.current--
	}
}

// Len returns the number of registered hubs.
func (f *FocusManager) Len() int {
	return len(f.hubs)
}

// Focused returns the focused hub, or nil. A hub blurred by being disabled
// no longer counts; Next picks up from its position.
func (f *FocusManager) Focused() *FocusHub {
	if f.current < 0 || f.current >= len(f.hubs) {
		return nil
	}
	if hub := f.hubs[f.current]; hub.focused {
		return hub
	}
	return nil
}

// SetFocus moves focus to hub if it is registered and focusable.
func (f *FocusManager) SetFocus(hub *FocusHub) {
	idx := slices.Index(f.hubs, hub)
	if idx == -1 || !hub.IsFocusable() {
		return
	}
	if cur := f.Focused(); cur != nil && cur != hub {
		cur.blur()
	}
	f.current = idx
	hub.focus()
}

// Next moves focus to the next focusable hub, wrapping at the end.
func (f *FocusManager) Next() {
	if len(f.hubs) == 0 {
		return
	}
	if cur := f.Focused(); cur != nil {
		cur.blur()
	}
	f.focusFrom(f.current+1, 1)
}

// Prev moves focus to the previous focusable hub, wrapping at the start.
func (f *FocusManager) Prev() {
	if len(f.hubs) == 0 {
		return
	}
	if cur := f.Focused(); cur != nil {
		cur.blur()
	}
	start := f.current - 1
	if f.current < 0 {
		start = len(f.hubs) - 1
	}
	f.focusFrom(start, -1)
}

// focusFrom focuses the first focusable hub found stepping from start.
func (f *FocusManager) focusFrom(start, step int) {
	n := len(f.hubs)
	for i := range n {
		idx := ((start+step*i)%n + n) % n
		if f.hubs[idx].IsFocusable() {
			f.current = idx
			f.hubs[idx].focus()
			return
		}
	}
	f.current = -1
}

// RequestFocus moves the pipeline's focus to this hub.
func (h *FocusHub) RequestFocus(ctx *Pipeline) {
	if ctx == nil {
		return
	}
	ctx.FocusManager().SetFocus(h)
}

// LoseFocus blurs the hub if it holds focus.
func (h *FocusHub) LoseFocus(ctx *Pipeline) {
	if !h.focused {
		return
	}
	if ctx != nil && ctx.FocusManager().Focused() == h {
		ctx.FocusManager().current = -1
	}
	h.blur()
}
