// Package theme binds the named UI regions to lipgloss styles once at startup.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/postboard/internal/config"
)

// RegionIDs lists every UI region by its kebab-case id
var RegionIDs = []string{
	"post-list-section",
	"post-detail-section",
	"posts-table",
	"comment-section",
	"comment-list",
	"comment-form",
	"notification-container",
	"custom-confirm-modal",
	"status-message-bar",
	"generated-guid-display",
	"detail-title",
}

// Regions holds the resolved style of each UI region
type Regions struct {
	PostListSection       lipgloss.Style
	PostDetailSection     lipgloss.Style
	PostsTable            lipgloss.Style
	CommentSection        lipgloss.Style
	CommentList           lipgloss.Style
	CommentForm           lipgloss.Style
	NotificationContainer lipgloss.Style
	CustomConfirmModal    lipgloss.Style
	StatusMessageBar      lipgloss.Style
	GeneratedGUIDDisplay  lipgloss.Style
	DetailTitle           lipgloss.Style
}

func (r *Regions) fields() map[string]*lipgloss.Style {
	return map[string]*lipgloss.Style{
		"postListSection":       &r.PostListSection,
		"postDetailSection":     &r.PostDetailSection,
		"postsTable":            &r.PostsTable,
		"commentSection":        &r.CommentSection,
		"commentList":           &r.CommentList,
		"commentForm":           &r.CommentForm,
		"notificationContainer": &r.NotificationContainer,
		"customConfirmModal":    &r.CustomConfirmModal,
		"statusMessageBar":      &r.StatusMessageBar,
		"generatedGuidDisplay":  &r.GeneratedGUIDDisplay,
		"detailTitle":           &r.DetailTitle,
	}
}

var (
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
)

// Defaults returns the built-in style of each region keyed by camelCase id
func Defaults() map[string]lipgloss.Style {
	section := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorGray).Padding(0, 1)
	return map[string]lipgloss.Style{
		"postListSection":       section,
		"postDetailSection":     section.BorderForeground(colorCyan),
		"postsTable":            lipgloss.NewStyle(),
		"commentSection":        lipgloss.NewStyle().MarginTop(1),
		"commentList":           lipgloss.NewStyle().PaddingLeft(2),
		"commentForm":           lipgloss.NewStyle().MarginTop(1),
		"notificationContainer": lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		"customConfirmModal":    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorYellow).Padding(1, 2),
		"statusMessageBar":      lipgloss.NewStyle().Foreground(colorGray),
		"generatedGuidDisplay":  lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		"detailTitle":           lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
	}
}

// CamelCase converts a kebab-case id to its camelCase key
func CamelCase(id string) string {
	parts := strings.Split(id, "-")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// Bind resolves every region from the defaults and the user overrides.
// Override keys may be kebab or camel case.
func Bind(overrides map[string]config.StyleSpec) (*Regions, error) {
	return bind(RegionIDs, Defaults(), overrides)
}

func bind(ids []string, defaults map[string]lipgloss.Style, overrides map[string]config.StyleSpec) (*Regions, error) {
	regions := &Regions{}
	fields := regions.fields()

	if len(ids) != len(fields) {
		return nil, fmt.Errorf("theme declares %d regions but binds %d", len(ids), len(fields))
	}

	for _, id := range ids {
		key := CamelCase(id)
		field, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("region %q is not bound", id)
		}
		style, ok := defaults[key]
		if !ok {
			return nil, fmt.Errorf("region %q has no style", id)
		}
		*field = style
	}

	// sorted for deterministic error reporting
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		field, ok := fields[CamelCase(k)]
		if !ok {
			return nil, fmt.Errorf("unknown theme region %q", k)
		}
		*field = Apply(*field, overrides[k])
	}

	return regions, nil
}

// Apply layers a user style override on top of s
func Apply(s lipgloss.Style, spec config.StyleSpec) lipgloss.Style {
	if spec.Foreground != "" {
		s = s.Foreground(lipgloss.Color(spec.Foreground))
	}
	if spec.Background != "" {
		s = s.Background(lipgloss.Color(spec.Background))
	}
	if spec.BorderColor != "" {
		s = s.BorderForeground(lipgloss.Color(spec.BorderColor))
	}
	if spec.Bold != nil {
		s = s.Bold(*spec.Bold)
	}
	return s
}
