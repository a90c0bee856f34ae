package mock

import (
	"context"
	"errors"
	"strconv"

	"github.com/studiowebux/postboard/internal/types"
)

// ErrPostNotFound is returned for unknown post ids
var ErrPostNotFound = errors.New("post not found")

// Store persists posts and their comments
type Store interface {
	ListPosts(ctx context.Context) ([]types.Post, error)
	GetPost(ctx context.Context, id types.PostID) (*types.Post, error)
	CreatePost(ctx context.Context, in types.PostInput) (*types.Post, error)
	UpdatePost(ctx context.Context, id types.PostID, in types.PostInput) (*types.Post, error)
	DeletePost(ctx context.Context, id types.PostID) error
	ListComments(ctx context.Context, postID types.PostID) ([]types.Comment, error)
	AddComment(ctx context.Context, postID types.PostID, content string) (*types.Comment, error)
	Close() error
}

// parseID converts a post id to the numeric key used by the stores
func parseID(id types.PostID) (int64, error) {
	n, err := strconv.ParseInt(id.String(), 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrPostNotFound
	}
	return n, nil
}

func formatID(n int64) types.PostID {
	return types.PostID(strconv.FormatInt(n, 10))
}
