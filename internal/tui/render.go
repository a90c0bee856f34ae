package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/notify"
	"github.com/studiowebux/postboard/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorBlue  = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
)

// Style definitions
var (
	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleInfo    = lipgloss.NewStyle().Foreground(colorBlue)
	styleSubtle  = lipgloss.NewStyle().Foreground(colorGray)
	styleLabel   = lipgloss.NewStyle().Bold(true)
)

// postRow is one line of the post table. A placeholder row has no index.
type postRow struct {
	Index       int // 1-based position in the list
	Title       string
	ID          types.PostID
	Placeholder bool
}

// postRows builds the table body: one row per post, or a single
// placeholder row for an empty or absent list.
func postRows(posts []types.Post) []postRow {
	if len(posts) == 0 {
		return []postRow{{Title: textNoPosts, Placeholder: true}}
	}
	rows := make([]postRow, len(posts))
	for i, p := range posts {
		rows[i] = postRow{Index: i + 1, Title: p.Title, ID: p.ID}
	}
	return rows
}

// commentLines renders each comment as its content and creation time, or a
// placeholder for an empty or absent list.
func commentLines(comments []types.Comment) []string {
	if len(comments) == 0 {
		return []string{textNoComments}
	}
	lines := make([]string, 0, len(comments)*2)
	for _, c := range comments {
		lines = append(lines, c.Content, styleSubtle.Render(textWrittenPrefix+c.CreatedAt.Display()))
	}
	return lines
}

func severityStyle(sev types.Severity) lipgloss.Style {
	switch sev {
	case types.SeveritySuccess:
		return styleSuccess
	case types.SeverityError:
		return styleError
	}
	return styleInfo
}

// refreshComments re-renders the comment viewport
func (m *Model) refreshComments() {
	m.commentView.SetContent(m.regions.CommentList.Render(strings.Join(commentLines(m.comments), "\n")))
	m.commentView.GotoTop()
}

// resize adapts inputs and the comment viewport to the window
func (m *Model) resize() {
	inner := m.width - SectionBorderWidth - SectionPadding
	m.form.setWidth(inner)
	m.searchInput.Width = inner - len(m.searchInput.Prompt)
	m.commentView.Width = inner
	m.commentView.Height = CommentViewHeight
	m.refreshComments()
}

// renderMain renders the header, the visible section, the status bar and overlays
func (m *Model) renderMain() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	sectionWidth := width - SectionBorderWidth

	var section string
	if m.view.Section == types.SectionDetail {
		section = m.regions.PostDetailSection.Width(sectionWidth).Render(m.renderDetail())
	} else {
		section = m.regions.PostListSection.Width(sectionWidth).Render(m.renderList())
	}

	parts := []string{m.renderHeader(), section}
	if toasts := m.renderToasts(); toasts != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Right, toasts))
	}
	parts = append(parts, m.renderStatusBar(width))
	main := lipgloss.JoinVertical(lipgloss.Left, parts...)

	c := m.confirmer.Pending()
	switch {
	case c == nil:
		return main
	case m.height > 0:
		return lipgloss.Place(width, m.height, lipgloss.Center, lipgloss.Center, m.renderConfirm(c))
	default:
		return lipgloss.JoinVertical(lipgloss.Left, main, m.renderConfirm(c))
	}
}

// binding returns the keys bound to action for the help lines
func (m *Model) binding(ctx keybinds.Context, action keybinds.Action) string {
	return m.keybinds.GetBindingString(ctx, action)
}

func (m *Model) renderHeader() string {
	title := m.regions.DetailTitle.Render(textAppTitle)
	guid := styleSubtle.Render(textGUIDLabel + "-")
	if m.guid != "" {
		guid = styleSubtle.Render(textGUIDLabel) + m.regions.GeneratedGUIDDisplay.Render(m.guid)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, guid)
}

func (m *Model) renderList() string {
	var lines []string

	if m.searching || m.searchQuery != "" {
		lines = append(lines, "/"+m.searchInput.View(), "")
	}

	lines = append(lines, styleLabel.Render(fmt.Sprintf("%-4s %s", "#", "Title")))

	posts := m.visiblePosts()
	switch {
	case m.postsFailed:
		lines = append(lines, styleError.Render(textLoadFailed))
		if m.postsHint != "" {
			lines = append(lines, styleSubtle.Render(m.postsHint))
		}
	case len(posts) == 0 && m.searchQuery != "" && len(m.posts) > 0:
		lines = append(lines, styleSubtle.Render(textNoMatches))
	default:
		for i, row := range postRows(posts) {
			if row.Placeholder {
				lines = append(lines, styleSubtle.Render(row.Title))
				continue
			}
			line := fmt.Sprintf("%-4d %s %s", row.Index, row.Title, styleSubtle.Render("#"+row.ID.String()))
			if i == m.selected {
				line = styleSelected.Render(line)
			}
			lines = append(lines, line)
		}
	}

	lines = append(lines, "", styleSubtle.Render(m.listHelp()))
	return m.regions.PostsTable.Render(strings.Join(lines, "\n"))
}

func (m *Model) listHelp() string {
	items := []struct {
		action keybinds.Action
		label  string
	}{
		{keybinds.ActionNewPost, "new"},
		{keybinds.ActionViewPost, "view"},
		{keybinds.ActionEditPost, "edit"},
		{keybinds.ActionDeletePost, "delete"},
		{keybinds.ActionRefresh, "reload"},
		{keybinds.ActionGenerateGUID, "guid"},
		{keybinds.ActionCopyGUID, "copy"},
		{keybinds.ActionOpenSearch, "search"},
		{keybinds.ActionQuit, "quit"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = m.binding(keybinds.ContextList, it.action) + " " + it.label
	}
	return strings.Join(parts, " • ")
}

func (m *Model) renderDetail() string {
	var b strings.Builder

	b.WriteString(m.regions.DetailTitle.Render(detailTitle(m.view.Mode)))
	b.WriteString("\n\n")

	b.WriteString(styleLabel.Render("Title"))
	b.WriteString("\n")
	if m.form.readOnly {
		b.WriteString(m.form.title.Value())
	} else {
		b.WriteString(m.form.title.View())
	}
	b.WriteString("\n\n")

	b.WriteString(styleLabel.Render("Content"))
	b.WriteString("\n")
	if m.form.readOnly {
		b.WriteString(m.form.content.Value())
	} else {
		b.WriteString(m.form.content.View())
	}
	b.WriteString("\n\n")

	var actions []string
	if m.view.ShowSave() {
		actions = append(actions, m.binding(keybinds.ContextDetail, keybinds.ActionSave)+" save")
	}
	if m.view.ShowDelete() {
		actions = append(actions, m.binding(keybinds.ContextDetail, keybinds.ActionDeletePost)+" delete", m.binding(keybinds.ContextDetail, keybinds.ActionEditPost)+" edit")
	}
	actions = append(actions, m.binding(keybinds.ContextDetail, keybinds.ActionCancel)+" back")
	b.WriteString(styleSubtle.Render(strings.Join(actions, " • ")))

	if m.view.ShowComments() {
		b.WriteString("\n")
		b.WriteString(m.renderComments())
	}
	return b.String()
}

func (m *Model) renderComments() string {
	header := styleLabel.Render(fmt.Sprintf("Comments (%d)", len(m.comments)))
	form := m.regions.CommentForm.Render(m.form.comment.View())
	return m.regions.CommentSection.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.commentView.View(), form))
}

func (m *Model) renderStatusBar(width int) string {
	text, sev := m.notices.Status()
	if text == "" {
		text = "Ready"
	}
	status := m.regions.StatusMessageBar.Render(text)
	if sev != "" {
		status = severityStyle(sev).Inherit(m.regions.StatusMessageBar).Render(text)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(status)
}

func (m *Model) renderToasts() string {
	visible := m.notices.Visible()
	if len(visible) == 0 {
		return ""
	}
	var toasts []string
	for _, t := range visible {
		toasts = append(toasts, renderToast(m.regions.NotificationContainer, t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, toasts...)
}

func renderToast(base lipgloss.Style, t notify.Toast) string {
	style := severityStyle(t.Severity)
	return base.Width(ToastWidth).BorderForeground(style.GetForeground()).Render(style.Render(t.Message))
}

func (m *Model) renderConfirm(c *Confirmation) string {
	help := styleSubtle.Render(fmt.Sprintf("%s yes • %s no",
		m.binding(keybinds.ContextConfirm, keybinds.ActionConfirm), m.binding(keybinds.ContextConfirm, keybinds.ActionCancel)))
	return m.regions.CustomConfirmModal.Render(c.Message() + "\n\n" + help)
}
