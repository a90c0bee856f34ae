package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/filter"
	"github.com/studiowebux/postboard/internal/types"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrCommentRequired is returned when a comment has no content
var ErrCommentRequired = errors.New("comment content is required")

// ErrAborted is returned when the user declines a confirmation
var ErrAborted = errors.New("aborted")

// Board is the set of backend operations the commands need
type Board interface {
	GenerateGUID(ctx context.Context) (string, error)
	ListPosts(ctx context.Context) ([]types.Post, error)
	GetPost(ctx context.Context, id types.PostID) (*types.Post, error)
	CreatePost(ctx context.Context, in types.PostInput) (*types.Post, error)
	UpdatePost(ctx context.Context, id types.PostID, in types.PostInput) (*types.Post, error)
	DeletePost(ctx context.Context, id types.PostID) error
	ListComments(ctx context.Context, id types.PostID) ([]types.Comment, error)
	CreateComment(ctx context.Context, id types.PostID, in types.CommentInput) (*types.Comment, error)
}

// Options controls output and prompting
type Options struct {
	Format string // text, json, yaml
	Query  string // JMESPath over the JSON form of the result
	Out    io.Writer
	Err    io.Writer
	In     io.Reader
	Color  bool
}

// Runner executes board commands and prints their results
type Runner struct {
	board Board
	opts  Options
}

// New creates a runner. Nil writers default to stdout/stderr.
func New(board Board, opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return &Runner{board: board, opts: opts}
}

// ValidateFormat checks an --output value
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
}

// PostDetail is a post together with its comments
type PostDetail struct {
	Post     types.Post      `json:"post" yaml:"post"`
	Comments []types.Comment `json:"comments" yaml:"comments"`
}

// ListPosts prints all posts
func (r *Runner) ListPosts(ctx context.Context) error {
	posts, err := r.board.ListPosts(ctx)
	if err != nil {
		return Reported(err)
	}
	if posts == nil {
		posts = []types.Post{}
	}
	return r.print(posts, func() string { return formatPostTable(posts) })
}

// ShowPost fetches a post and its comments concurrently and prints both
func (r *Runner) ShowPost(ctx context.Context, id types.PostID) error {
	var (
		post     *types.Post
		comments []types.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.board.GetPost(gctx, id)
		post = p
		return err
	})
	g.Go(func() error {
		c, err := r.board.ListComments(gctx, id)
		comments = c
		return err
	})
	if err := g.Wait(); err != nil {
		return Reported(err)
	}

	detail := PostDetail{Post: *post, Comments: comments}
	if detail.Comments == nil {
		detail.Comments = []types.Comment{}
	}
	return r.print(detail, func() string { return r.formatDetail(detail) })
}

// CreatePost submits a new post
func (r *Runner) CreatePost(ctx context.Context, in types.PostInput) error {
	post, err := r.board.CreatePost(ctx, in)
	if err != nil {
		return Reported(err)
	}
	r.success("Post saved.")
	if post == nil {
		return nil
	}
	return r.print(post, func() string { return formatPost(*post) })
}

// UpdatePost replaces an existing post
func (r *Runner) UpdatePost(ctx context.Context, id types.PostID, in types.PostInput) error {
	post, err := r.board.UpdatePost(ctx, id, in)
	if err != nil {
		return Reported(err)
	}
	r.success("Post saved.")
	if post == nil {
		return nil
	}
	return r.print(post, func() string { return formatPost(*post) })
}

// DeletePost removes a post after confirmation unless yes is set
func (r *Runner) DeletePost(ctx context.Context, id types.PostID, yes bool) error {
	if !yes {
		ok, err := r.confirm(fmt.Sprintf("Delete post %s? Proceed? [y/N] ", id))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}
	if err := r.board.DeletePost(ctx, id); err != nil {
		return Reported(err)
	}
	r.success("Post deleted.")
	return nil
}

// ListComments prints the comments of a post
func (r *Runner) ListComments(ctx context.Context, id types.PostID) error {
	comments, err := r.board.ListComments(ctx, id)
	if err != nil {
		return Reported(err)
	}
	if comments == nil {
		comments = []types.Comment{}
	}
	return r.print(comments, func() string { return formatComments(comments) })
}

// AddComment attaches a comment. Blank content is rejected before any request.
func (r *Runner) AddComment(ctx context.Context, id types.PostID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrCommentRequired
	}
	comment, err := r.board.CreateComment(ctx, id, types.CommentInput{Content: content})
	if err != nil {
		return Reported(err)
	}
	r.success("Comment added.")
	if comment == nil {
		return nil
	}
	return r.print(comment, func() string { return formatComments([]types.Comment{*comment}) })
}

// GenerateGUID prints a fresh GUID
func (r *Runner) GenerateGUID(ctx context.Context) error {
	guid, err := r.board.GenerateGUID(ctx)
	if err != nil {
		return Reported(err)
	}
	return r.print(map[string]string{"guid": guid}, func() string { return guid + "\n" })
}

// print renders v in the configured format. A query always yields JSON.
func (r *Runner) print(v any, text func() string) error {
	output, err := r.format(v, text)
	if err != nil {
		return err
	}
	fmt.Fprint(r.opts.Out, output)
	return nil
}

func (r *Runner) format(v any, text func() string) (string, error) {
	if r.opts.Query != "" {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		out, err := filter.Apply(string(data), r.opts.Query)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	}

	switch r.opts.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case FormatYAML:
		data, err := yaml.Marshal(toPlain(v))
		if err != nil {
			return "", err
		}
		return string(data), nil

	default:
		return text(), nil
	}
}

// toPlain round-trips v through JSON so YAML sees the same field names and
// value forms (numeric ids, RFC3339 times) as the JSON output.
func toPlain(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var plain any
	if err := yaml.Unmarshal(data, &plain); err != nil {
		return v
	}
	return plain
}

func (r *Runner) confirm(prompt string) (bool, error) {
	fmt.Fprint(r.opts.Err, prompt)
	reader := bufio.NewReader(r.opts.In)
	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func (r *Runner) success(message string) {
	if r.opts.Format != FormatText || r.opts.Query != "" {
		return
	}
	fmt.Fprintln(r.opts.Err, r.colorize(colorGreen, message))
}

func (r *Runner) colorize(color, s string) string {
	if !r.opts.Color {
		return s
	}
	return color + s + colorReset
}

func (r *Runner) formatDetail(d PostDetail) string {
	var sb strings.Builder
	sb.WriteString(r.colorize(colorBold, d.Post.Title))
	sb.WriteString(fmt.Sprintf(" (#%s)\n", d.Post.ID))
	if d.Post.Content != "" {
		sb.WriteString("\n")
		sb.WriteString(d.Post.Content)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\n%s\n", r.colorize(colorYellow, fmt.Sprintf("Comments (%d)", len(d.Comments)))))
	sb.WriteString(formatComments(d.Comments))
	return sb.String()
}

func formatPostTable(posts []types.Post) string {
	if len(posts) == 0 {
		return "No posts.\n"
	}

	idWidth := len("ID")
	for _, p := range posts {
		if n := len(p.ID.String()); n > idWidth {
			idWidth = n
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %-*s %s\n", "#", idWidth, "ID", "TITLE"))
	for i, p := range posts {
		sb.WriteString(fmt.Sprintf("%-4d %-*s %s\n", i+1, idWidth, p.ID, p.Title))
	}
	return sb.String()
}

func formatPost(p types.Post) string {
	return fmt.Sprintf("#%s %s\n%s\n", p.ID, p.Title, p.Content)
}

func formatComments(comments []types.Comment) string {
	if len(comments) == 0 {
		return "No comments yet.\n"
	}
	var sb strings.Builder
	for _, c := range comments {
		sb.WriteString(fmt.Sprintf("- %s\n  Written: %s\n", c.Content, c.CreatedAt.Display()))
	}
	return sb.String()
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// reportedError marks a failure the transport already showed to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported wraps an error that has already been printed as a notification
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// ErrorLine formats err for stderr the way the command prints fatal errors
func ErrorLine(err error, color bool) string {
	line := fmt.Sprintf("Error: %v", err)
	if hint := executor.Hint(err); hint != "" {
		line += "\nHint: " + hint
	}
	if color {
		return colorRed + line + colorReset
	}
	return line
}
