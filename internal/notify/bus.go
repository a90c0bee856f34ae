package notify

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/types"
)

// Message is a notification raised outside the update loop
type Message struct {
	Text     string
	Severity types.Severity
}

// Bus carries notifications from worker goroutines to the update loop
type Bus struct {
	ch        chan Message
	closeOnce sync.Once
	done      chan struct{}
}

// NewBus creates a bus buffering up to size messages
func NewBus(size int) *Bus {
	return &Bus{
		ch:   make(chan Message, size),
		done: make(chan struct{}),
	}
}

// Notify enqueues a message. With a full buffer it waits for the update loop
// to drain it; only Close releases a waiting sender without delivery.
func (b *Bus) Notify(text string, severity types.Severity) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.ch <- Message{Text: text, Severity: severity}:
	case <-b.done:
	}
}

// Wait returns a command that blocks until the next message.
// Re-issue it after each Message to keep listening.
func (b *Bus) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.ch:
			return msg
		case <-b.done:
			return nil
		}
	}
}

// Close stops pending Wait commands
func (b *Bus) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

// Printer writes notifications to a stream, one per line
type Printer struct {
	W io.Writer
}

// Notify implements executor.Notifier
func (p Printer) Notify(text string, severity types.Severity) {
	fmt.Fprintf(p.W, "%s: %s\n", severity, text)
}
