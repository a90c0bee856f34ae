package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/types"
)

// loadPosts fetches the post list, superseding any list load in flight
func (m *Model) loadPosts() tea.Cmd {
	ctx, gen := m.postsLoad.Begin(m.ctx)
	client := m.client
	return func() tea.Msg {
		posts, err := client.ListPosts(ctx)
		return postsLoadedMsg{gen: gen, posts: posts, err: err}
	}
}

// openPost fetches a post and opens it in mode
func (m *Model) openPost(id types.PostID, mode types.ViewMode) tea.Cmd {
	ctx, gen := m.detailLoad.Begin(m.ctx)
	client := m.client
	return func() tea.Msg {
		post, err := client.GetPost(ctx, id)
		return postLoadedMsg{gen: gen, mode: mode, post: post, err: err}
	}
}

// loadComments fetches the comments of a post
func (m *Model) loadComments(id types.PostID) tea.Cmd {
	ctx, gen := m.commentsLoad.Begin(m.ctx)
	client := m.client
	return func() tea.Msg {
		comments, err := client.ListComments(ctx, id)
		return commentsLoadedMsg{gen: gen, postID: id, comments: comments, err: err}
	}
}

// savePost creates the post when no id is set and updates it otherwise
func (m *Model) savePost() tea.Cmd {
	in := m.form.input()
	id := m.view.CurrentPostID
	client := m.client
	ctx := m.ctx

	return func() tea.Msg {
		var (
			post *types.Post
			err  error
		)
		if id.IsZero() {
			post, err = client.CreatePost(ctx, in)
		} else {
			post, err = client.UpdatePost(ctx, id, in)
		}
		return postSavedMsg{post: post, err: err}
	}
}

// deletePost removes a post once confirmed
func (m *Model) deletePost(id types.PostID) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		return postDeletedMsg{id: id, err: client.DeletePost(ctx, id)}
	}
}

// askDelete opens the confirm modal for deleting id
func (m *Model) askDelete(id types.PostID) tea.Cmd {
	if id.IsZero() {
		return nil
	}
	return m.confirmer.Ask(msgConfirmDelete, id).Wait()
}

// submitComment posts the comment input for the current post. Blank input is
// rejected without a request.
func (m *Model) submitComment() tea.Cmd {
	content := strings.TrimSpace(m.form.comment.Value())
	if content == "" {
		return m.notify(msgCommentRequired, types.SeverityError)
	}

	id := m.view.CurrentPostID
	if id.IsZero() {
		return nil
	}

	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		_, err := client.CreateComment(ctx, id, types.CommentInput{Content: content})
		return commentCreatedMsg{postID: id, err: err}
	}
}

// generateGUID announces the request and asks the backend for a GUID
func (m *Model) generateGUID() tea.Cmd {
	client := m.client
	ctx := m.ctx
	if m.guidNotice != 0 {
		m.notices.Dismiss(m.guidNotice)
	}
	handle, notice := m.notices.Push(msgGeneratingGUID, types.SeverityInfo)
	m.guidNotice = handle
	return tea.Batch(
		notice,
		func() tea.Msg {
			guid, err := client.GenerateGUID(ctx)
			return guidGeneratedMsg{guid: guid, err: err}
		},
	)
}

// copyGUID puts the last generated GUID on the clipboard
func (m *Model) copyGUID() tea.Cmd {
	if m.guid == "" {
		return m.notify(msgNoGUID, types.SeverityInfo)
	}
	if err := m.clipboard(m.guid); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		return m.notify(fmt.Sprintf("Failed to copy GUID: %v", err), types.SeverityError)
	}
	return m.notify(msgGUIDCopied, types.SeveritySuccess)
}

// Result handlers. A failed request has already been notified by the
// transport, so errors only lead to local fallbacks here.

func (m *Model) handlePostsLoaded(msg postsLoadedMsg) tea.Cmd {
	if !m.postsLoad.Finish(msg.gen) {
		m.logger.Debug("discarding stale post list", "gen", msg.gen)
		return nil
	}
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		m.posts = nil
		m.postsFailed = true
		m.postsHint = executor.Hint(msg.err)
		m.selected = 0
		return nil
	}

	m.posts = msg.posts
	m.postsFailed = false
	m.postsHint = ""
	m.clampSelection()
	return nil
}

func (m *Model) handlePostLoaded(msg postLoadedMsg) tea.Cmd {
	if !m.detailLoad.Finish(msg.gen) || msg.err != nil || msg.post == nil {
		return nil
	}

	m.prepareDetailView(msg.mode, msg.post)
	if msg.mode == types.ModeView {
		return m.loadComments(msg.post.ID)
	}
	return nil
}

func (m *Model) handleCommentsLoaded(msg commentsLoadedMsg) {
	if !m.commentsLoad.Finish(msg.gen) || msg.err != nil {
		return
	}
	if msg.postID != m.view.CurrentPostID {
		return
	}
	m.comments = msg.comments
	m.refreshComments()
}

func (m *Model) handlePostSaved(msg postSavedMsg) tea.Cmd {
	if msg.err != nil {
		return nil
	}
	m.showSection(types.SectionList)
	m.clearComments()
	return tea.Batch(m.notify(msgSaved, types.SeveritySuccess), m.loadPosts())
}

func (m *Model) handlePostDeleted(msg postDeletedMsg) tea.Cmd {
	if msg.err != nil {
		return nil
	}
	if m.view.Section == types.SectionDetail {
		m.showSection(types.SectionList)
		m.clearComments()
	}
	return tea.Batch(m.notify(msgDeleted, types.SeveritySuccess), m.loadPosts())
}

func (m *Model) handleCommentCreated(msg commentCreatedMsg) tea.Cmd {
	if msg.err != nil {
		return nil
	}
	cmds := []tea.Cmd{m.notify(msgCommentAdded, types.SeveritySuccess)}
	if msg.postID == m.view.CurrentPostID {
		m.form.comment.SetValue("")
		cmds = append(cmds, m.loadComments(msg.postID))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleGUIDGenerated(msg guidGeneratedMsg) tea.Cmd {
	// The progress toast gives way to the result
	m.notices.Dismiss(m.guidNotice)
	m.guidNotice = 0
	if msg.err != nil || msg.guid == "" {
		return nil
	}
	m.guid = msg.guid
	return m.notify(msgGUIDGenerated, types.SeveritySuccess)
}

func (m *Model) handleConfirmResolved(msg confirmResolvedMsg) tea.Cmd {
	m.logger.Debug("confirmation resolved", "id", msg.confirm.ID(), "ok", msg.ok)
	if !msg.ok {
		return nil
	}
	return m.deletePost(msg.confirm.Target())
}
