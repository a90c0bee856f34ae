// Package api provides typed operations over the board backend.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/types"
)

// Doer performs one transport request
type Doer interface {
	Do(ctx context.Context, req executor.Request, out any) (string, error)
}

// Client is a pass-through over the transport. Errors have already been
// surfaced to the user by the transport when they reach the caller.
type Client struct {
	transport Doer
	basePath  string
	guidPath  string
}

// New creates a client rooted at basePath (posts) and guidPath
func New(transport Doer, basePath, guidPath string) *Client {
	return &Client{
		transport: transport,
		basePath:  strings.TrimRight(basePath, "/"),
		guidPath:  guidPath,
	}
}

func (c *Client) postPath(id types.PostID) string {
	return c.basePath + "/" + url.PathEscape(id.String())
}

// GenerateGUID asks the backend for a fresh GUID
func (c *Client) GenerateGUID(ctx context.Context) (string, error) {
	text, err := c.transport.Do(ctx, executor.Request{Method: http.MethodGet, Path: c.guidPath}, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ListPosts returns all posts
func (c *Client) ListPosts(ctx context.Context) ([]types.Post, error) {
	var posts []types.Post
	if _, err := c.transport.Do(ctx, executor.Request{Method: http.MethodGet, Path: c.basePath}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns one post
func (c *Client) GetPost(ctx context.Context, id types.PostID) (*types.Post, error) {
	var post types.Post
	if _, err := c.transport.Do(ctx, executor.Request{Method: http.MethodGet, Path: c.postPath(id)}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost submits a new post. The result is nil when the backend
// answers with a status only.
func (c *Client) CreatePost(ctx context.Context, in types.PostInput) (*types.Post, error) {
	return c.writePost(ctx, http.MethodPost, c.basePath, in)
}

// UpdatePost replaces title and content of an existing post
func (c *Client) UpdatePost(ctx context.Context, id types.PostID, in types.PostInput) (*types.Post, error) {
	return c.writePost(ctx, http.MethodPut, c.postPath(id), in)
}

func (c *Client) writePost(ctx context.Context, method, path string, in types.PostInput) (*types.Post, error) {
	var post *types.Post
	if _, err := c.transport.Do(ctx, executor.Request{Method: method, Path: path, Body: in}, &post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post
func (c *Client) DeletePost(ctx context.Context, id types.PostID) error {
	_, err := c.transport.Do(ctx, executor.Request{Method: http.MethodDelete, Path: c.postPath(id)}, nil)
	return err
}

// ListComments returns the comments of a post
func (c *Client) ListComments(ctx context.Context, id types.PostID) ([]types.Comment, error) {
	var comments []types.Comment
	if _, err := c.transport.Do(ctx, executor.Request{Method: http.MethodGet, Path: c.postPath(id) + "/comments"}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment attaches a comment to a post
func (c *Client) CreateComment(ctx context.Context, id types.PostID, in types.CommentInput) (*types.Comment, error) {
	var comment *types.Comment
	req := executor.Request{Method: http.MethodPost, Path: c.postPath(id) + "/comments", Body: in}
	if _, err := c.transport.Do(ctx, req, &comment); err != nil {
		return nil, err
	}
	return comment, nil
}
