package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PostID is the backend-assigned identifier of a post.
// The client never interprets it; numbers and strings are both accepted.
type PostID string

// UnmarshalJSON accepts a JSON number or string
func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid post id: %w", err)
		}
		*id = PostID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid post id: %w", err)
	}
	*id = PostID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as JSON numbers and anything else as a string
func (id PostID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if s != "" && strings.Trim(s, "0123456789") == "" && (len(s) == 1 || s[0] != '0') {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// String returns the textual form of the id
func (id PostID) String() string {
	return string(id)
}

// IsZero reports whether no id is set
func (id PostID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Post is the primary content entity exposed by the backend
type Post struct {
	ID      PostID `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// PostInput is the request body for creating or updating a post
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Comment is a text annotation attached to one post
type Comment struct {
	ID        PostID    `json:"id,omitempty" yaml:"id,omitempty"`
	PostID    PostID    `json:"postId,omitempty" yaml:"postId,omitempty"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt Timestamp `json:"createdAt" yaml:"createdAt"`
}

// CommentInput is the request body for creating a comment
type CommentInput struct {
	Content string `json:"content"`
}

// TimestampLayout is the layout used to display comment times
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a comment creation time as sent by the backend.
// It decodes epoch milliseconds or ISO-8601 strings with or without zone.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		t.Time = time.UnixMilli(ms)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes the time as RFC3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// ParseTimestamp parses the string forms a backend may send.
// Strings without a zone are read in local time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if tm, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// Display formats the timestamp in local time
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.Time.Local().Format(TimestampLayout)
}

// ViewMode controls the detail form behaviour
type ViewMode int

const (
	ModeCreate ViewMode = iota
	ModeEdit
	ModeView
)

func (m ViewMode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	case ModeView:
		return "view"
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

// Section is one of the two mutually exclusive screens
type Section int

const (
	SectionList Section = iota
	SectionDetail
)

func (s Section) String() string {
	if s == SectionDetail {
		return "detail"
	}
	return "list"
}

// Severity classifies a notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)
