package tui

import (
	"github.com/studiowebux/postboard/internal/types"
)

// ViewState is which section is on screen, the detail mode and the post it
// belongs to. It is replaced as a whole, never mutated in place.
type ViewState struct {
	Section       types.Section
	Mode          types.ViewMode
	CurrentPostID types.PostID
}

// WithSection returns a copy showing section s
func (v ViewState) WithSection(s types.Section) ViewState {
	v.Section = s
	return v
}

// ReadOnly reports whether the title and content fields are locked
func (v ViewState) ReadOnly() bool {
	return v.Mode == types.ModeView
}

// ShowSave reports whether the save action is offered
func (v ViewState) ShowSave() bool {
	return v.Section == types.SectionDetail && v.Mode != types.ModeView
}

// ShowDelete reports whether the delete action is offered on the detail form
func (v ViewState) ShowDelete() bool {
	return v.Section == types.SectionDetail && v.Mode == types.ModeView
}

// ShowComments reports whether the comment section is visible
func (v ViewState) ShowComments() bool {
	return v.Section == types.SectionDetail && v.Mode == types.ModeView
}
