package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/api"
	"github.com/studiowebux/postboard/internal/filter"
	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/notify"
	"github.com/studiowebux/postboard/internal/theme"
	"github.com/studiowebux/postboard/internal/types"
)

// Model represents the TUI state
type Model struct {
	// Collaborators
	client    *api.Client
	keybinds  *keybinds.Registry
	regions   *theme.Regions
	notices   *notify.Center
	bus       *notify.Bus
	logger    *slog.Logger
	clipboard func(string) error
	ctx       context.Context

	// Sections
	view ViewState

	// Post list
	posts       []types.Post
	postsFailed bool // last load failed, list shows the inline fallback row
	postsHint   string
	guidNotice  notify.Handle
	selected    int  // index into visiblePosts()

	// Title search
	searchInput textinput.Model
	searching   bool   // search input has focus
	searchQuery string // applied filter

	// Detail
	currentPost *types.Post
	form        detailForm
	comments    []types.Comment
	commentView viewport.Model

	// GUID
	guid string

	// Confirmation modal
	confirmer Confirmer

	// Load sequencing
	postsLoad    *LoadState
	detailLoad   *LoadState
	commentsLoad *LoadState

	// UI state
	width    int
	height   int
	quitting bool
}

// Messages produced by API commands

type postsLoadedMsg struct {
	gen   uint64
	posts []types.Post
	err   error
}

type postLoadedMsg struct {
	gen  uint64
	mode types.ViewMode
	post *types.Post
	err  error
}

type commentsLoadedMsg struct {
	gen      uint64
	postID   types.PostID
	comments []types.Comment
	err      error
}

type postSavedMsg struct {
	post *types.Post
	err  error
}

type postDeletedMsg struct {
	id  types.PostID
	err error
}

type commentCreatedMsg struct {
	postID types.PostID
	err    error
}

type guidGeneratedMsg struct {
	guid string
	err  error
}

// Init loads the post list and starts listening for worker notifications
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadPosts(), m.bus.Wait())
}

// Cleanup cancels running loads and stops the notification bus
func (m *Model) Cleanup() {
	m.postsLoad.Cancel()
	m.detailLoad.Cancel()
	m.commentsLoad.Cancel()
	m.confirmer.Resolve(false)
	m.bus.Close()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.notices.Update(msg); ok {
		return m, cmd
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case notify.Message:
		cmd = tea.Batch(m.notify(msg.Text, msg.Severity), m.bus.Wait())

	case postsLoadedMsg:
		cmd = m.handlePostsLoaded(msg)

	case postLoadedMsg:
		cmd = m.handlePostLoaded(msg)

	case commentsLoadedMsg:
		m.handleCommentsLoaded(msg)

	case postSavedMsg:
		cmd = m.handlePostSaved(msg)

	case postDeletedMsg:
		cmd = m.handlePostDeleted(msg)

	case commentCreatedMsg:
		cmd = m.handleCommentCreated(msg)

	case guidGeneratedMsg:
		cmd = m.handleGUIDGenerated(msg)

	case confirmResolvedMsg:
		cmd = m.handleConfirmResolved(msg)
	}

	return m, cmd
}

// View renders the current state
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderMain()
}

// notify pushes a toast and logs it
func (m *Model) notify(text string, severity types.Severity) tea.Cmd {
	m.logger.Debug("notification", "severity", severity, "message", text)
	_, cmd := m.notices.Push(text, severity)
	return cmd
}

// visiblePosts returns the posts matching the applied search
func (m *Model) visiblePosts() []types.Post {
	if m.searchQuery == "" {
		return m.posts
	}
	return filter.MatchPosts(m.posts, m.searchQuery)
}

// selectedPost returns the highlighted post in the list
func (m *Model) selectedPost() (types.Post, bool) {
	posts := m.visiblePosts()
	if m.selected < 0 || m.selected >= len(posts) {
		return types.Post{}, false
	}
	return posts[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(m.visiblePosts())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
