package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/postboard/internal/api"
	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/mock"
	"github.com/studiowebux/postboard/internal/notify"
	"github.com/studiowebux/postboard/internal/types"
)

type harness struct {
	backend *mock.Server
	store   mock.Store
	runner  *Runner
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newHarness(t *testing.T, format, query, input string) *harness {
	t.Helper()

	store := mock.NewMemoryStore()
	cfg := mock.DefaultConfig()
	backend := mock.NewServer(cfg, store, nil)
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(func() {
		ts.Close()
		backend.Stop()
	})

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	transport := executor.New(ts.URL, notify.Printer{W: errOut})
	client := api.New(transport, cfg.APIBasePath, cfg.GUIDPath)

	runner := New(client, Options{
		Format: format,
		Query:  query,
		Out:    out,
		Err:    errOut,
		In:     strings.NewReader(input),
	})
	return &harness{backend: backend, store: store, runner: runner, out: out, errOut: errOut}
}

func (h *harness) seed(t *testing.T, title, content string, comments ...string) types.PostID {
	t.Helper()
	ctx := context.Background()
	post, err := h.store.CreatePost(ctx, types.PostInput{Title: title, Content: content})
	require.NoError(t, err)
	for _, c := range comments {
		_, err := h.store.AddComment(ctx, post.ID, c)
		require.NoError(t, err)
	}
	return post.ID
}

func TestListPosts_Text(t *testing.T) {
	h := newHarness(t, FormatText, "", "")
	h.seed(t, "First", "a")
	h.seed(t, "Second", "b")

	require.NoError(t, h.runner.ListPosts(context.Background()))

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TITLE")
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "First")
	assert.True(t, strings.HasPrefix(lines[2], "2 "))
	assert.Contains(t, lines[2], "Second")
}

func TestListPosts_Empty(t *testing.T) {
	h := newHarness(t, FormatText, "", "")
	require.NoError(t, h.runner.ListPosts(context.Background()))
	assert.Equal(t, "No posts.\n", h.out.String())

	h.out.Reset()
	h.runner.opts.Format = FormatJSON
	require.NoError(t, h.runner.ListPosts(context.Background()))
	assert.JSONEq(t, `[]`, h.out.String())
}

func TestListPosts_JSONAndQuery(t *testing.T) {
	h := newHarness(t, FormatJSON, "", "")
	h.seed(t, "First", "a")
	h.seed(t, "Second", "b")

	require.NoError(t, h.runner.ListPosts(context.Background()))
	assert.JSONEq(t, `[{"id":1,"title":"First","content":"a"},{"id":2,"title":"Second","content":"b"}]`, h.out.String())

	h.out.Reset()
	h.runner.opts.Query = "[].title"
	require.NoError(t, h.runner.ListPosts(context.Background()))
	assert.JSONEq(t, `["First","Second"]`, h.out.String())
}

func TestListPosts_YAML(t *testing.T) {
	h := newHarness(t, FormatYAML, "", "")
	h.seed(t, "First", "a")

	require.NoError(t, h.runner.ListPosts(context.Background()))
	assert.Contains(t, h.out.String(), "title: First")
	assert.Contains(t, h.out.String(), "id: 1")
}

func TestShowPost_FetchesPostAndComments(t *testing.T) {
	h := newHarness(t, FormatText, "", "")
	id := h.seed(t, "Hello", "body text", "nice", "agreed")

	require.NoError(t, h.runner.ShowPost(context.Background(), id))

	out := h.out.String()
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "body text")
	assert.Contains(t, out, "Comments (2)")
	assert.Contains(t, out, "- nice")
	assert.Contains(t, out, "- agreed")
	assert.ElementsMatch(t, []string{"GET /api/posts/1", "GET /api/posts/1/comments"}, h.backend.Calls())
}

func TestShowPost_NoComments(t *testing.T) {
	h := newHarness(t, FormatJSON, "", "")
	id := h.seed(t, "Lonely", "")

	require.NoError(t, h.runner.ShowPost(context.Background(), id))
	assert.JSONEq(t, `{"post":{"id":1,"title":"Lonely","content":""},"comments":[]}`, h.out.String())
}

func TestShowPost_MissingIsReported(t *testing.T) {
	h := newHarness(t, FormatText, "", "")

	err := h.runner.ShowPost(context.Background(), "99")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, h.errOut.String(), "API request failed: HTTP error! status: 404")
	assert.Empty(t, h.out.String())
}

func TestCreateAndUpdatePost(t *testing.T) {
	h := newHarness(t, FormatText, "", "")
	ctx := context.Background()

	require.NoError(t, h.runner.CreatePost(ctx, types.PostInput{Title: "T", Content: "C"}))
	assert.Contains(t, h.out.String(), "#1 T")
	assert.Contains(t, h.errOut.String(), "Post saved.")

	h.out.Reset()
	require.NoError(t, h.runner.UpdatePost(ctx, "1", types.PostInput{Title: "T2", Content: "C2"}))
	assert.Contains(t, h.out.String(), "#1 T2")

	assert.Equal(t, []string{"POST /api/posts", "PUT /api/posts/1"}, h.backend.Calls())
}

func TestDeletePost_Confirmation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		yes       bool
		wantErr   error
		wantCalls []string
	}{
		{name: "declined", input: "n\n", wantErr: ErrAborted, wantCalls: []string{}},
		{name: "empty answer", input: "", wantErr: ErrAborted, wantCalls: []string{}},
		{name: "accepted", input: "y\n", wantCalls: []string{"DELETE /api/posts/1"}},
		{name: "yes flag", yes: true, wantCalls: []string{"DELETE /api/posts/1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, FormatText, "", tt.input)
			id := h.seed(t, "Doomed", "x")

			err := h.runner.DeletePost(context.Background(), id, tt.yes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if !tt.yes {
				assert.Contains(t, h.errOut.String(), "Proceed? [y/N]")
			}
			assert.Equal(t, tt.wantCalls, h.backend.Calls())
		})
	}
}

func TestAddComment(t *testing.T) {
	h := newHarness(t, FormatText, "", "")
	id := h.seed(t, "Post", "x")
	ctx := context.Background()

	err := h.runner.AddComment(ctx, id, "   \n\t")
	assert.ErrorIs(t, err, ErrCommentRequired)
	assert.Empty(t, h.backend.Calls())

	require.NoError(t, h.runner.AddComment(ctx, id, "  hello  "))
	assert.Equal(t, []string{"POST /api/posts/1/comments"}, h.backend.Calls())

	comments, err := h.store.ListComments(ctx, id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hello", comments[0].Content)
}

func TestListComments_Empty(t *testing.T) {
	h := newHarness(t, FormatText, "", "")
	id := h.seed(t, "Post", "x")

	require.NoError(t, h.runner.ListComments(context.Background(), id))
	assert.Equal(t, "No comments yet.\n", h.out.String())
}

func TestGenerateGUID(t *testing.T) {
	h := newHarness(t, FormatText, "", "")
	require.NoError(t, h.runner.GenerateGUID(context.Background()))

	guid := strings.TrimSpace(h.out.String())
	assert.Len(t, guid, 36)

	h.out.Reset()
	h.runner.opts.Format = FormatJSON
	require.NoError(t, h.runner.GenerateGUID(context.Background()))
	assert.Contains(t, h.out.String(), `"guid"`)
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateFormat(f))
	}
	assert.Error(t, ValidateFormat("xml"))
}

func TestPickerModel_SelectAndCancel(t *testing.T) {
	posts := []types.Post{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}

	var m tea.Model = newPickerModel(posts)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, types.PostID("2"), m.(pickerModel).choice)

	m = newPickerModel(posts)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.(pickerModel).choice.IsZero())
	assert.True(t, m.(pickerModel).quitting)
}

func TestErrorLine(t *testing.T) {
	assert.Equal(t, "Error: boom", ErrorLine(errors.New("boom"), false))

	line := ErrorLine(&executor.RequestError{Status: 404, Message: "Post not found"}, false)
	assert.Equal(t, "Error: HTTP error! status: 404, message: Post not found\nHint: Not found - the post may have been deleted", line)

	colored := ErrorLine(errors.New("boom"), true)
	assert.True(t, strings.HasPrefix(colored, colorRed))
	assert.True(t, strings.HasSuffix(colored, colorReset))
}
