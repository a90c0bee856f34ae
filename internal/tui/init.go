package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/api"
	"github.com/studiowebux/postboard/internal/config"
	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/notify"
	"github.com/studiowebux/postboard/internal/theme"
	"github.com/studiowebux/postboard/internal/types"
)

// Options wires the TUI to its collaborators
type Options struct {
	Config     *config.Config
	Keybinds   *keybinds.Registry // nil uses the defaults
	Logger     *slog.Logger       // nil discards
	HTTPClient *http.Client       // nil uses a client with the configured timeout
	Clipboard  func(string) error // nil uses the system clipboard
}

// New creates a new TUI model. Region styles are bound once here; an
// invalid theme is a startup error.
func New(ctx context.Context, opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	regions, err := theme.Bind(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("failed to bind theme: %w", err)
	}

	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	bus := notify.NewBus(NotificationBusBuffer)

	transportOpts := []executor.Option{executor.WithLogger(logger)}
	if opts.HTTPClient != nil {
		transportOpts = append(transportOpts, executor.WithHTTPClient(opts.HTTPClient))
	} else {
		transportOpts = append(transportOpts, executor.WithTimeout(cfg.RequestTimeout()))
	}
	transport := executor.New(cfg.BaseURL, bus, transportOpts...)

	search := textinput.New()
	search.Placeholder = "search titles"
	search.Prompt = ""
	search.Cursor.SetMode(cursor.CursorStatic)

	m := &Model{
		client:    api.New(transport, cfg.APIBasePath, cfg.GUIDPath),
		keybinds:  registry,
		regions:   regions,
		notices:   notify.NewCenter(timingFromConfig(cfg.Notifications)),
		bus:       bus,
		logger:    logger,
		clipboard: copyFn,
		ctx:       ctx,

		view: ViewState{Section: types.SectionList, Mode: types.ModeCreate},

		searchInput: search,
		form:        newDetailForm(),
		commentView: viewport.New(80, CommentViewHeight),

		postsLoad:    &LoadState{},
		detailLoad:   &LoadState{},
		commentsLoad: &LoadState{},
	}
	m.refreshComments()

	return m, nil
}

func timingFromConfig(n config.Notifications) notify.Timing {
	return notify.Timing{
		ShowDelay:  n.ShowDelay(),
		HideDelay:  n.HideDelay(),
		Transition: n.Transition(),
		MaxVisible: n.MaxVisible,
	}
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer m.Cleanup()

	// Update uses pointer receivers, so the program gets the pointer
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
