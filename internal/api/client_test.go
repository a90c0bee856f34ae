package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/types"
)

// fakeDoer records requests and answers with canned JSON or text
type fakeDoer struct {
	requests []executor.Request
	json     string
	text     string
	err      error
}

func (f *fakeDoer) Do(ctx context.Context, req executor.Request, out any) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if f.json != "" && out != nil {
		if err := json.Unmarshal([]byte(f.json), out); err != nil {
			return "", err
		}
	}
	return f.text, nil
}

func (f *fakeDoer) last(t *testing.T) executor.Request {
	t.Helper()
	if len(f.requests) == 0 {
		t.Fatal("no request issued")
	}
	return f.requests[len(f.requests)-1]
}

func TestClient_Routes(t *testing.T) {
	ctx := context.Background()
	in := types.PostInput{Title: "T", Content: "C"}

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantBody   any
	}{
		{"list posts", func(c *Client) error { _, err := c.ListPosts(ctx); return err }, http.MethodGet, "/api/posts", nil},
		{"get post", func(c *Client) error { _, err := c.GetPost(ctx, "1"); return err }, http.MethodGet, "/api/posts/1", nil},
		{"create post", func(c *Client) error { _, err := c.CreatePost(ctx, in); return err }, http.MethodPost, "/api/posts", in},
		{"update post", func(c *Client) error { _, err := c.UpdatePost(ctx, "7", in); return err }, http.MethodPut, "/api/posts/7", in},
		{"delete post", func(c *Client) error { return c.DeletePost(ctx, "7") }, http.MethodDelete, "/api/posts/7", nil},
		{"list comments", func(c *Client) error { _, err := c.ListComments(ctx, "1"); return err }, http.MethodGet, "/api/posts/1/comments", nil},
		{"create comment", func(c *Client) error {
			_, err := c.CreateComment(ctx, "1", types.CommentInput{Content: "hi"})
			return err
		}, http.MethodPost, "/api/posts/1/comments", types.CommentInput{Content: "hi"}},
		{"guid", func(c *Client) error { _, err := c.GenerateGUID(ctx); return err }, http.MethodGet, "/api/guid/generate", nil},
		{"escaped id", func(c *Client) error { _, err := c.GetPost(ctx, "a/b c"); return err }, http.MethodGet, "/api/posts/a%2Fb%20c", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &fakeDoer{}
			c := New(doer, "/api/posts/", "/api/guid/generate")
			if err := tt.call(c); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			req := doer.last(t)
			if req.Method != tt.wantMethod {
				t.Errorf("method = %s, want %s", req.Method, tt.wantMethod)
			}
			if req.Path != tt.wantPath {
				t.Errorf("path = %s, want %s", req.Path, tt.wantPath)
			}
			if req.Body != tt.wantBody {
				t.Errorf("body = %#v, want %#v", req.Body, tt.wantBody)
			}
		})
	}
}

func TestClient_CreatePostStatusOnly(t *testing.T) {
	doer := &fakeDoer{}
	post, err := New(doer, "/api/posts", "/g").CreatePost(context.Background(), types.PostInput{Title: "T"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if post != nil {
		t.Errorf("expected nil post for status-only answer, got %+v", post)
	}
}

func TestClient_GenerateGUIDTrims(t *testing.T) {
	doer := &fakeDoer{text: "  abc-123\n"}
	guid, err := New(doer, "/api/posts", "/g").GenerateGUID(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if guid != "abc-123" {
		t.Errorf("guid = %q", guid)
	}
}

func TestClient_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	c := New(&fakeDoer{err: boom}, "/api/posts", "/g")

	if _, err := c.ListPosts(context.Background()); !errors.Is(err, boom) {
		t.Errorf("ListPosts err = %v", err)
	}
	if err := c.DeletePost(context.Background(), "1"); !errors.Is(err, boom) {
		t.Errorf("DeletePost err = %v", err)
	}
}

func TestClient_OverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/posts/1/comments":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"content":"first","createdAt":1709296200000}]`)
		case "/api/posts":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":3,"title":"T","content":"C"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(executor.New(server.URL, nil), "/api/posts", "/api/guid/generate")

	comments, err := c.ListComments(context.Background(), "1")
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 1 || comments[0].Content != "first" || comments[0].CreatedAt.IsZero() {
		t.Errorf("unexpected comments: %+v", comments)
	}

	post, err := c.CreatePost(context.Background(), types.PostInput{Title: "T", Content: "C"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post == nil || post.ID != "3" {
		t.Errorf("unexpected post: %+v", post)
	}

	_, err = c.GetPost(context.Background(), "99")
	var reqErr *executor.RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusNotFound {
		t.Errorf("expected 404 RequestError, got %v", err)
	}
}
