package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/studiowebux/postboard/internal/types"
)

// MemoryStore keeps the board in process memory
type MemoryStore struct {
	mu            sync.RWMutex
	posts         map[int64]types.Post
	comments      map[int64][]types.Comment // by post id
	nextPostID    int64
	nextCommentID int64
	now           func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:    make(map[int64]types.Post),
		comments: make(map[int64][]types.Comment),
		now:      time.Now,
	}
}

// ListPosts returns all posts ordered by id
func (s *MemoryStore) ListPosts(ctx context.Context) ([]types.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.posts))
	for id := range s.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	posts := make([]types.Post, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, s.posts[id])
	}
	return posts, nil
}

// GetPost returns one post
func (s *MemoryStore) GetPost(ctx context.Context, id types.PostID) (*types.Post, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[n]
	if !ok {
		return nil, ErrPostNotFound
	}
	return &post, nil
}

// CreatePost stores a new post with the next id
func (s *MemoryStore) CreatePost(ctx context.Context, in types.PostInput) (*types.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPostID++
	post := types.Post{ID: formatID(s.nextPostID), Title: in.Title, Content: in.Content}
	s.posts[s.nextPostID] = post
	return &post, nil
}

// UpdatePost replaces title and content
func (s *MemoryStore) UpdatePost(ctx context.Context, id types.PostID, in types.PostInput) (*types.Post, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[n]; !ok {
		return nil, ErrPostNotFound
	}
	post := types.Post{ID: formatID(n), Title: in.Title, Content: in.Content}
	s.posts[n] = post
	return &post, nil
}

// DeletePost removes a post and its comments
func (s *MemoryStore) DeletePost(ctx context.Context, id types.PostID) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[n]; !ok {
		return ErrPostNotFound
	}
	delete(s.posts, n)
	delete(s.comments, n)
	return nil
}

// ListComments returns the comments of a post, oldest first
func (s *MemoryStore) ListComments(ctx context.Context, postID types.PostID) ([]types.Comment, error) {
	n, err := parseID(postID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.posts[n]; !ok {
		return nil, ErrPostNotFound
	}
	comments := make([]types.Comment, len(s.comments[n]))
	copy(comments, s.comments[n])
	return comments, nil
}

// AddComment attaches a comment stamped with the current time
func (s *MemoryStore) AddComment(ctx context.Context, postID types.PostID, content string) (*types.Comment, error) {
	n, err := parseID(postID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[n]; !ok {
		return nil, ErrPostNotFound
	}

	s.nextCommentID++
	comment := types.Comment{
		ID:        formatID(s.nextCommentID),
		PostID:    formatID(n),
		Content:   content,
		CreatedAt: types.Timestamp{Time: s.now()},
	}
	s.comments[n] = append(s.comments[n], comment)
	return &comment, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
