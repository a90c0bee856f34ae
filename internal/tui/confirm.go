package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/types"
)

// confirmResolvedMsg carries the single outcome of one confirmation
type confirmResolvedMsg struct {
	confirm *Confirmation
	ok      bool
}

// Confirmation is one display of the confirm modal. It resolves exactly once.
type Confirmation struct {
	id      uint64
	message string
	target  types.PostID
	result  chan bool
	once    sync.Once
}

func newConfirmation(id uint64, message string, target types.PostID) *Confirmation {
	return &Confirmation{
		id:      id,
		message: message,
		target:  target,
		result:  make(chan bool, 1),
	}
}

// ID identifies the display
func (c *Confirmation) ID() uint64 { return c.id }

// Message is the question shown in the modal
func (c *Confirmation) Message() string { return c.message }

// Target is the post the confirmed action applies to
func (c *Confirmation) Target() types.PostID { return c.target }

// Resolve records the answer. Only the first call has an effect; it reports
// whether this call was the one that resolved.
func (c *Confirmation) Resolve(ok bool) bool {
	resolved := false
	c.once.Do(func() {
		c.result <- ok
		resolved = true
	})
	return resolved
}

// Wait returns a command that blocks until the confirmation is resolved
func (c *Confirmation) Wait() tea.Cmd {
	return func() tea.Msg {
		return confirmResolvedMsg{confirm: c, ok: <-c.result}
	}
}

// Confirmer owns the single confirm modal
type Confirmer struct {
	pending *Confirmation
	next    uint64
}

// Ask opens a confirmation. A confirmation still pending is resolved with
// false first, so every display yields exactly one outcome.
func (c *Confirmer) Ask(message string, target types.PostID) *Confirmation {
	if c.pending != nil {
		c.pending.Resolve(false)
	}
	c.next++
	c.pending = newConfirmation(c.next, message, target)
	return c.pending
}

// Pending returns the open confirmation, or nil
func (c *Confirmer) Pending() *Confirmation {
	return c.pending
}

// Resolve answers the open confirmation and closes the modal
func (c *Confirmer) Resolve(ok bool) bool {
	if c.pending == nil {
		return false
	}
	p := c.pending
	c.pending = nil
	return p.Resolve(ok)
}
