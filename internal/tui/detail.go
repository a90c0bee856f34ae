package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/types"
)

// Detail form fields
const (
	fieldTitle = iota
	fieldContent
	fieldComment
)

// detailForm holds the inputs of the detail section
type detailForm struct {
	title    textinput.Model
	content  textarea.Model
	comment  textinput.Model
	focus    int
	readOnly bool
}

func newDetailForm() detailForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = TitleCharLimit
	title.Prompt = ""
	title.Cursor.SetMode(cursor.CursorStatic)

	content := textarea.New()
	content.Placeholder = "Content"
	content.CharLimit = 0
	content.ShowLineNumbers = false
	content.SetHeight(ContentFieldHeight)
	content.Cursor.SetMode(cursor.CursorStatic)

	comment := textinput.New()
	comment.Placeholder = "Write a comment and press enter"
	comment.Prompt = "> "
	comment.Cursor.SetMode(cursor.CursorStatic)

	return detailForm{title: title, content: content, comment: comment}
}

// load fills the fields from post, or clears them when post is nil
func (f *detailForm) load(post *types.Post, readOnly bool) {
	if post != nil {
		f.title.SetValue(post.Title)
		f.content.SetValue(post.Content)
	} else {
		f.title.SetValue("")
		f.content.SetValue("")
	}
	f.title.CursorEnd()
	f.comment.SetValue("")
	f.readOnly = readOnly
	f.focusField(f.focusable()[0])
}

// focusable returns the fields that accept input in the current mode
func (f *detailForm) focusable() []int {
	if f.readOnly {
		return []int{fieldComment}
	}
	return []int{fieldTitle, fieldContent}
}

func (f *detailForm) focusField(field int) {
	f.focus = field
	f.title.Blur()
	f.content.Blur()
	f.comment.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldContent:
		f.content.Focus()
	case fieldComment:
		f.comment.Focus()
	}
}

// cycle moves focus by delta among the focusable fields
func (f *detailForm) cycle(delta int) {
	fields := f.focusable()
	pos := 0
	for i, field := range fields {
		if field == f.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	f.focusField(fields[pos])
}

func (f *detailForm) blur() {
	f.title.Blur()
	f.content.Blur()
	f.comment.Blur()
}

// input returns the post body built from the fields
func (f *detailForm) input() types.PostInput {
	return types.PostInput{Title: f.title.Value(), Content: f.content.Value()}
}

// update forwards msg to the focused field. Locked fields never change.
func (f *detailForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		if !f.readOnly {
			f.title, cmd = f.title.Update(msg)
		}
	case fieldContent:
		if !f.readOnly {
			f.content, cmd = f.content.Update(msg)
		}
	case fieldComment:
		f.comment, cmd = f.comment.Update(msg)
	}
	return cmd
}

func (f *detailForm) setWidth(w int) {
	if w < MinFieldWidth {
		w = MinFieldWidth
	}
	f.title.Width = w
	f.content.SetWidth(w)
	f.comment.Width = w - len(f.comment.Prompt)
}

// detailTitle is the heading shown for mode
func detailTitle(mode types.ViewMode) string {
	switch mode {
	case types.ModeEdit:
		return textTitleEdit
	case types.ModeView:
		return textTitleView
	}
	return textTitleCreate
}

// prepareDetailView opens the detail section in mode for post (nil for a new
// post), filling the form and setting which actions are offered.
func (m *Model) prepareDetailView(mode types.ViewMode, post *types.Post) {
	m.detailLoad.Cancel()
	next := ViewState{Section: types.SectionDetail, Mode: mode}
	if post != nil {
		p := *post
		m.currentPost = &p
		next.CurrentPostID = p.ID
	} else {
		m.currentPost = nil
	}

	m.clearComments()
	m.form.load(m.currentPost, mode == types.ModeView)
	m.view = next
	m.logger.Debug("detail view", "mode", mode, "post", next.CurrentPostID)
}

// showSection makes s the only visible section. Returning to the list
// forgets the current post and drops a post still being opened.
func (m *Model) showSection(s types.Section) {
	if s == types.SectionList {
		m.detailLoad.Cancel()
		m.view = ViewState{Section: types.SectionList, Mode: m.view.Mode}
		m.form.blur()
		return
	}
	m.view = m.view.WithSection(s)
}

// clearComments empties the rendered comment list
func (m *Model) clearComments() {
	m.commentsLoad.Cancel()
	m.comments = nil
	m.refreshComments()
}
