package tui

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/config"
	"github.com/studiowebux/postboard/internal/mock"
	"github.com/studiowebux/postboard/internal/types"
)

// quietPeriod is how long TestProgram waits for another message before it
// considers the model settled
const quietPeriod = 150 * time.Millisecond

// CreateTestModel creates a Model wired to an unreachable backend.
// Useful for tests that never let commands run.
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	cfg := config.Default()
	cfg.BaseURL = "http://127.0.0.1:1"

	m, err := New(context.Background(), Options{Config: cfg, Clipboard: func(string) error { return nil }})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	t.Cleanup(m.Cleanup)
	return m
}

// TestProgram drives a Model against an in-process dev backend. Commands
// run on goroutines like in a real program; Settle feeds their messages back
// until nothing arrives for a while.
type TestProgram struct {
	t       *testing.T
	Model   *Model
	Backend *mock.Server
	Store   mock.Store
	Copied  []string

	msgs chan tea.Msg
	quit bool
}

// NewTestProgram starts a backend, seeds it and runs the model's Init
func NewTestProgram(t *testing.T, seed func(store mock.Store)) *TestProgram {
	t.Helper()

	store := mock.NewMemoryStore()
	if seed != nil {
		seed(store)
	}
	backend := mock.NewServer(mock.DefaultConfig(), store, nil)
	ts := httptest.NewServer(backend.Handler())

	cfg := config.Default()
	cfg.BaseURL = ts.URL
	// Toasts show at once and stay until the test ends
	cfg.Notifications = config.Notifications{ShowDelayMs: 1, HideDelayMs: int(time.Hour / time.Millisecond), TransitionMs: 1}

	tp := &TestProgram{
		t:       t,
		Backend: backend,
		Store:   store,
		msgs:    make(chan tea.Msg, 64),
	}

	m, err := New(context.Background(), Options{
		Config:    cfg,
		Clipboard: func(s string) error { tp.Copied = append(tp.Copied, s); return nil },
	})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	tp.Model = m

	t.Cleanup(func() {
		m.Cleanup()
		ts.Close()
		backend.Stop()
	})

	tp.Send(tea.WindowSizeMsg{Width: 100, Height: 40})
	tp.run(m.Init())
	tp.Settle()
	backend.ClearLogs()
	return tp
}

// SeedPosts creates posts with the given titles
func SeedPosts(t *testing.T, titles ...string) func(mock.Store) {
	return func(store mock.Store) {
		for _, title := range titles {
			if _, err := store.CreatePost(context.Background(), types.PostInput{Title: title, Content: title + " content"}); err != nil {
				t.Fatalf("Failed to seed post %q: %v", title, err)
			}
		}
	}
}

func (tp *TestProgram) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		if msg := cmd(); msg != nil {
			tp.msgs <- msg
		}
	}()
}

// Send delivers msg to the model and schedules the resulting command
func (tp *TestProgram) Send(msg tea.Msg) {
	_, cmd := tp.Model.Update(msg)
	tp.run(cmd)
}

// Press sends each key, settling after every one
func (tp *TestProgram) Press(keys ...string) {
	for _, k := range keys {
		tp.Send(KeyMsg(k))
		tp.Settle()
	}
}

// Type sends text as typed runes
func (tp *TestProgram) Type(text string) {
	tp.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	tp.Settle()
}

// Settle processes messages until none arrives for quietPeriod
func (tp *TestProgram) Settle() {
	for {
		select {
		case msg := <-tp.msgs:
			switch msg := msg.(type) {
			case tea.BatchMsg:
				for _, c := range msg {
					tp.run(c)
				}
			case tea.QuitMsg:
				tp.quit = true
			default:
				tp.Send(msg)
			}
		case <-time.After(quietPeriod):
			return
		}
	}
}

// Quit reports whether the model asked the program to exit
func (tp *TestProgram) Quit() bool {
	return tp.quit
}

// Toasts returns the messages of all toasts of severity sev
func (tp *TestProgram) Toasts(sev types.Severity) []string {
	var out []string
	for _, toast := range tp.Model.notices.Toasts() {
		if toast.Severity == sev {
			out = append(out, toast.Message)
		}
	}
	return out
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+e":    tea.KeyCtrlE,
	"ctrl+s":    tea.KeyCtrlS,
	"backspace": tea.KeyBackspace,
}

// KeyMsg builds the key message whose String() is key
func KeyMsg(key string) tea.KeyMsg {
	if kt, ok := namedKeys[key]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertCalls checks the requests the backend received, in order
func AssertCalls(t *testing.T, backend *mock.Server, want ...string) {
	t.Helper()
	got := backend.Calls()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}
