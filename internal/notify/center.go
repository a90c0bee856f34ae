package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/types"
)

// Phase is the animation state of a toast
type Phase int

const (
	PhaseEntering Phase = iota // pushed, not yet shown
	PhaseVisible
	PhaseLeaving // hide transition running
)

// Handle identifies one toast for its whole lifetime
type Handle uint64

// Toast is one transient notification
type Toast struct {
	Handle    Handle
	Message   string
	Severity  types.Severity
	Phase     Phase
	CreatedAt time.Time
}

// Timing controls the toast animation
type Timing struct {
	ShowDelay  time.Duration
	HideDelay  time.Duration
	Transition time.Duration
	MaxVisible int // 0 = unlimited
}

// DefaultTiming matches the config defaults
var DefaultTiming = Timing{
	ShowDelay:  100 * time.Millisecond,
	HideDelay:  3000 * time.Millisecond,
	Transition: 300 * time.Millisecond,
	MaxVisible: 5,
}

// ShowMsg makes a toast visible
type ShowMsg struct{ Handle Handle }

// HideMsg starts the hide transition of a toast
type HideMsg struct{ Handle Handle }

// RemoveMsg drops a toast once its transition is over
type RemoveMsg struct{ Handle Handle }

// Center owns the toast stack and the persistent status line.
// It is driven by the bubbletea update loop and is not safe for concurrent use.
type Center struct {
	timing         Timing
	toasts         []Toast
	next           Handle
	status         string
	statusSeverity types.Severity
	now            func() time.Time
}

// NewCenter creates an empty notification center
func NewCenter(timing Timing) *Center {
	return &Center{timing: timing, now: time.Now}
}

// Push appends a toast (newest last), mirrors it into the status line and
// schedules its show, hide and removal.
func (c *Center) Push(message string, severity types.Severity) (Handle, tea.Cmd) {
	c.next++
	h := c.next

	c.toasts = append(c.toasts, Toast{
		Handle:    h,
		Message:   message,
		Severity:  severity,
		Phase:     PhaseEntering,
		CreatedAt: c.now(),
	})
	if c.timing.MaxVisible > 0 && len(c.toasts) > c.timing.MaxVisible {
		c.toasts = c.toasts[len(c.toasts)-c.timing.MaxVisible:]
	}

	c.status = message
	c.statusSeverity = severity

	return h, tea.Batch(
		tea.Tick(c.timing.ShowDelay, func(time.Time) tea.Msg { return ShowMsg{Handle: h} }),
		tea.Tick(c.timing.HideDelay, func(time.Time) tea.Msg { return HideMsg{Handle: h} }),
	)
}

// Dismiss removes a pending or visible toast. Later ticks for it are ignored.
func (c *Center) Dismiss(h Handle) bool {
	i := c.index(h)
	if i < 0 {
		return false
	}
	c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
	return true
}

// Update advances toast phases. It reports whether msg belonged to the center.
func (c *Center) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ShowMsg:
		if i := c.index(msg.Handle); i >= 0 && c.toasts[i].Phase == PhaseEntering {
			c.toasts[i].Phase = PhaseVisible
		}
		return nil, true

	case HideMsg:
		i := c.index(msg.Handle)
		if i < 0 || c.toasts[i].Phase == PhaseLeaving {
			return nil, true
		}
		c.toasts[i].Phase = PhaseLeaving
		h := msg.Handle
		return tea.Tick(c.timing.Transition, func(time.Time) tea.Msg { return RemoveMsg{Handle: h} }), true

	case RemoveMsg:
		c.Dismiss(msg.Handle)
		return nil, true
	}
	return nil, false
}

// Toasts returns a snapshot of the stack, oldest first
func (c *Center) Toasts() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Visible returns the toasts currently shown
func (c *Center) Visible() []Toast {
	var out []Toast
	for _, t := range c.toasts {
		if t.Phase == PhaseVisible {
			out = append(out, t)
		}
	}
	return out
}

// Status returns the last message mirrored into the status line
func (c *Center) Status() (string, types.Severity) {
	return c.status, c.statusSeverity
}

func (c *Center) index(h Handle) int {
	for i, t := range c.toasts {
		if t.Handle == h {
			return i
		}
	}
	return -1
}
