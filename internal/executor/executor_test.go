package executor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/studiowebux/postboard/internal/types"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	levels   []types.Severity
}

func (r *recordingNotifier) Notify(message string, severity types.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	r.levels = append(r.levels, severity)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func TestDo_DecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json;charset=UTF-8")
		io.WriteString(w, `[{"id":1,"title":"A","content":"a"},{"id":2,"title":"B","content":"b"}]`)
	}))
	defer server.Close()

	n := &recordingNotifier{}
	tr := New(server.URL+"/", n)

	var posts []types.Post
	text, err := tr.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/posts"}, &posts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected no text for JSON response, got %q", text)
	}
	if len(posts) != 2 || posts[0].ID != "1" || posts[1].Title != "B" {
		t.Errorf("unexpected posts: %+v", posts)
	}
	if n.count() != 0 {
		t.Errorf("expected no notification, got %d", n.count())
	}
}

func TestDo_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "3f2c6a4e-guid")
	}))
	defer server.Close()

	var out map[string]any
	text, err := New(server.URL, nil).Do(context.Background(), Request{Method: http.MethodGet, Path: "/g"}, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "3f2c6a4e-guid" {
		t.Errorf("text = %q", text)
	}
	if out != nil {
		t.Errorf("out should stay untouched for text responses")
	}
}

func TestDo_SendsJSONBody(t *testing.T) {
	var gotBody, gotType, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	_, err := New(server.URL, nil).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/posts",
		Body:   types.PostInput{Title: "T", Content: "C"},
	}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if gotBody != `{"title":"T","content":"C"}` {
		t.Errorf("body = %s", gotBody)
	}
}

func TestDo_ErrorStatusNotifiesOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Post not found", http.StatusNotFound)
	}))
	defer server.Close()

	n := &recordingNotifier{}
	_, err := New(server.URL, n).Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/posts/9"}, nil)
	if err == nil {
		t.Fatal("Expected error but got nil")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d", reqErr.Status)
	}
	if !strings.HasPrefix(err.Error(), "HTTP error! status: 404, message: Post not found") {
		t.Errorf("error = %q", err.Error())
	}

	if n.count() != 1 {
		t.Fatalf("expected exactly one notification, got %d", n.count())
	}
	if !strings.HasPrefix(n.messages[0], "API request failed: HTTP error! status: 404") {
		t.Errorf("notification = %q", n.messages[0])
	}
	if n.levels[0] != types.SeverityError {
		t.Errorf("severity = %s", n.levels[0])
	}
}

func TestDo_NetworkErrorNotifiesOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	n := &recordingNotifier{}
	_, err := New(url, n).Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/posts"}, nil)
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
	if n.count() != 1 {
		t.Errorf("expected exactly one notification, got %d", n.count())
	}
}

func TestDo_BadJSONNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":`)
	}))
	defer server.Close()

	n := &recordingNotifier{}
	var p types.Post
	_, err := New(server.URL, n).Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, &p)
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
	if n.count() != 1 {
		t.Errorf("expected exactly one notification, got %d", n.count())
	}
}

func TestDo_CancelledIsSilent(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	n := &recordingNotifier{}
	done := make(chan error, 1)
	go func() {
		_, err := New(server.URL, n).Do(ctx, Request{Method: http.MethodGet, Path: "/api/posts"}, nil)
		done <- err
	}()
	cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n.count() != 0 {
		t.Errorf("cancelled request should not notify, got %d", n.count())
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatDuration(250), "250ms"},
		{FormatDuration(1500), "1.50s"},
		{FormatSize(512), "512B"},
		{FormatSize(2048), "2.00KB"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
	if !IsSuccessStatus(204) || IsSuccessStatus(404) {
		t.Error("IsSuccessStatus mismatch")
	}
	if !IsJSONContentType("Application/JSON; charset=utf-8") || IsJSONContentType("text/plain") {
		t.Error("IsJSONContentType mismatch")
	}
}
