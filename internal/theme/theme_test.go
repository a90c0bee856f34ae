package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/postboard/internal/config"
)

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"post-list-section", "postListSection"},
		{"generated-guid-display", "generatedGuidDisplay"},
		{"detail-title", "detailTitle"},
		{"statusMessageBar", "statusMessageBar"},
		{"single", "single"},
		{"trailing-", "trailing"},
	}
	for _, tt := range tests {
		if got := CamelCase(tt.in); got != tt.want {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBind_AllRegionsResolved(t *testing.T) {
	regions, err := Bind(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	fields := regions.fields()
	defaults := Defaults()
	for _, id := range RegionIDs {
		key := CamelCase(id)
		if _, ok := fields[key]; !ok {
			t.Errorf("region %s has no field", id)
		}
		if _, ok := defaults[key]; !ok {
			t.Errorf("region %s has no default", id)
		}
	}
	if !regions.DetailTitle.GetBold() {
		t.Error("detail title should be bold by default")
	}
}

func TestBind_Overrides(t *testing.T) {
	bold := false
	regions, err := Bind(map[string]config.StyleSpec{
		"detail-title":     {Foreground: "#ff0000", Bold: &bold},
		"statusMessageBar": {Background: "#000000"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if regions.DetailTitle.GetBold() {
		t.Error("bold override not applied")
	}
	if fg := regions.DetailTitle.GetForeground(); fg != lipgloss.Color("#ff0000") {
		t.Errorf("foreground = %v", fg)
	}
	if bg := regions.StatusMessageBar.GetBackground(); bg != lipgloss.Color("#000000") {
		t.Errorf("background = %v", bg)
	}
}

func TestBind_UnknownRegion(t *testing.T) {
	_, err := Bind(map[string]config.StyleSpec{"sidebar": {Foreground: "1"}})
	if err == nil || !strings.Contains(err.Error(), "sidebar") {
		t.Fatalf("expected unknown region error, got %v", err)
	}
}

func TestBind_MissingStyleIsStartupError(t *testing.T) {
	defaults := Defaults()
	delete(defaults, "commentList")

	_, err := bind(RegionIDs, defaults, nil)
	if err == nil || !strings.Contains(err.Error(), "comment-list") {
		t.Fatalf("expected missing style error, got %v", err)
	}
}

func TestBind_UnboundRegionIsStartupError(t *testing.T) {
	ids := append([]string{}, RegionIDs...)
	ids[0] = "side-panel"

	_, err := bind(ids, Defaults(), nil)
	if err == nil || !strings.Contains(err.Error(), "side-panel") {
		t.Fatalf("expected unbound region error, got %v", err)
	}
}
