package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/types"
)

// handleKeyPress routes key presses: modal first, then search, then the visible section
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, key); ok && action == keybinds.ActionQuitForce {
		return m.quit()
	}

	if m.confirmer.Pending() != nil {
		return m.handleConfirmKeys(key)
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch m.view.Section {
	case types.SectionDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Cleanup()
	return tea.Quit
}

// handleConfirmKeys answers the modal. Every other key is swallowed.
func (m *Model) handleConfirmKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		m.confirmer.Resolve(true)
	case keybinds.ActionCancel:
		m.confirmer.Resolve(false)
	}
	return nil
}

// handleListKeys handles the post list section
func (m *Model) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextList, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		return m.quit()

	case keybinds.ActionNavigateUp:
		if m.selected > 0 {
			m.selected--
		}
	case keybinds.ActionNavigateDown:
		if m.selected < len(m.visiblePosts())-1 {
			m.selected++
		}
	case keybinds.ActionGoToTop:
		m.selected = 0
	case keybinds.ActionGoToBottom:
		m.selected = len(m.visiblePosts()) - 1
		m.clampSelection()

	case keybinds.ActionNewPost:
		m.prepareDetailView(types.ModeCreate, nil)
	case keybinds.ActionViewPost:
		if post, ok := m.selectedPost(); ok {
			return m.openPost(post.ID, types.ModeView)
		}
	case keybinds.ActionEditPost:
		if post, ok := m.selectedPost(); ok {
			return m.openPost(post.ID, types.ModeEdit)
		}
	case keybinds.ActionDeletePost:
		if post, ok := m.selectedPost(); ok {
			return m.askDelete(post.ID)
		}
	case keybinds.ActionRefresh:
		return m.loadPosts()

	case keybinds.ActionGenerateGUID:
		return m.generateGUID()
	case keybinds.ActionCopyGUID:
		return m.copyGUID()

	case keybinds.ActionOpenSearch:
		m.searching = true
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()
	case keybinds.ActionClearSearch:
		m.searchQuery = ""
		m.searchInput.SetValue("")
		m.clampSelection()
	}
	return nil
}

// handleSearchKeys edits the title filter; results update while typing
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextSearch, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.searching = false
			m.searchInput.Blur()
			return nil
		case keybinds.ActionTextCancel:
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.searchQuery = ""
			m.clampSelection()
			return nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchQuery = m.searchInput.Value()
	m.selected = 0
	return cmd
}

// handleDetailKeys handles the create/edit/view form
func (m *Model) handleDetailKeys(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if m.form.focus == fieldComment {
		if action, ok := m.keybinds.Match(keybinds.ContextTextInput, key); ok && action == keybinds.ActionTextSubmit {
			return m.submitComment()
		}
	}

	action, ok := m.keybinds.Match(keybinds.ContextDetail, key)
	if !ok {
		return m.form.update(msg)
	}

	switch action {
	case keybinds.ActionSave:
		if m.view.ShowSave() {
			return m.savePost()
		}
	case keybinds.ActionCancel:
		m.showSection(types.SectionList)
		m.clearComments()
	case keybinds.ActionDeletePost:
		if m.view.ShowDelete() {
			return m.askDelete(m.view.CurrentPostID)
		}
	case keybinds.ActionEditPost:
		if m.view.Mode == types.ModeView && m.currentPost != nil {
			m.prepareDetailView(types.ModeEdit, m.currentPost)
		}
	case keybinds.ActionNextField:
		m.form.cycle(1)
	case keybinds.ActionPrevField:
		m.form.cycle(-1)
	case keybinds.ActionScrollUp:
		m.commentView.PageUp()
	case keybinds.ActionScrollDown:
		m.commentView.PageDown()
	default:
		return m.form.update(msg)
	}
	return nil
}
