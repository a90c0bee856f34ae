// Package filter narrows CLI output and the post list.
package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/postboard/internal/types"
)

// Apply runs a JMESPath query over a JSON document and returns indented JSON.
// An empty query returns body unchanged.
func Apply(body string, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return body, nil
	}

	result, err := Search(body, query)
	if err != nil {
		return "", err
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// Search evaluates a JMESPath expression against a JSON string
func Search(jsonStr string, expression string) (any, error) {
	var data any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}

	return result, nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

type postTitles []types.Post

func (p postTitles) String(i int) string { return p[i].Title }
func (p postTitles) Len() int            { return len(p) }

// MatchPosts returns the posts whose title fuzzy-matches pattern, best match first.
// An empty pattern returns posts unchanged.
func MatchPosts(posts []types.Post, pattern string) []types.Post {
	if strings.TrimSpace(pattern) == "" {
		return posts
	}

	matches := fuzzy.FindFrom(pattern, postTitles(posts))
	out := make([]types.Post, 0, len(matches))
	for _, m := range matches {
		out = append(out, posts[m.Index])
	}
	return out
}
