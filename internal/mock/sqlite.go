package mock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/postboard/internal/migrations"
	"github.com/studiowebux/postboard/internal/types"
)

// SQLiteStore keeps the board in a sqlite database
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and migrates it
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite allows a single writer; ":memory:" databases are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// ListPosts returns all posts ordered by id
func (s *SQLiteStore) ListPosts(ctx context.Context) ([]types.Post, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, content FROM posts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []types.Post{}
	for rows.Next() {
		var id int64
		var post types.Post
		if err := rows.Scan(&id, &post.Title, &post.Content); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.ID = formatID(id)
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetPost returns one post
func (s *SQLiteStore) GetPost(ctx context.Context, id types.PostID) (*types.Post, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	post := types.Post{ID: formatID(n)}
	err = s.db.QueryRowContext(ctx, "SELECT title, content FROM posts WHERE id = ?", n).Scan(&post.Title, &post.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// CreatePost inserts a post and returns it with its new id
func (s *SQLiteStore) CreatePost(ctx context.Context, in types.PostInput) (*types.Post, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO posts (title, content) VALUES (?, ?)", in.Title, in.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read post id: %w", err)
	}
	return &types.Post{ID: formatID(id), Title: in.Title, Content: in.Content}, nil
}

// UpdatePost replaces title and content
func (s *SQLiteStore) UpdatePost(ctx context.Context, id types.PostID, in types.PostInput) (*types.Post, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, "UPDATE posts SET title = ?, content = ? WHERE id = ?", in.Title, in.Content, n)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return &types.Post{ID: formatID(n), Title: in.Title, Content: in.Content}, nil
}

// DeletePost removes a post; its comments cascade
func (s *SQLiteStore) DeletePost(ctx context.Context, id types.PostID) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", n)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return requireRow(res)
}

// ListComments returns the comments of a post, oldest first
func (s *SQLiteStore) ListComments(ctx context.Context, postID types.PostID) ([]types.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	n, _ := parseID(postID)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, content, created_at FROM comments WHERE post_id = ? ORDER BY created_at, id", n)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []types.Comment{}
	for rows.Next() {
		var id int64
		var createdAt time.Time
		c := types.Comment{PostID: formatID(n)}
		if err := rows.Scan(&id, &c.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.ID = formatID(id)
		c.CreatedAt = types.Timestamp{Time: createdAt}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// AddComment attaches a comment stamped with the current time
func (s *SQLiteStore) AddComment(ctx context.Context, postID types.PostID, content string) (*types.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	n, _ := parseID(postID)

	createdAt := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO comments (post_id, content, created_at) VALUES (?, ?, ?)", n, content, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read comment id: %w", err)
	}

	return &types.Comment{
		ID:        formatID(id),
		PostID:    formatID(n),
		Content:   content,
		CreatedAt: types.Timestamp{Time: createdAt},
	}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}
	return nil
}
