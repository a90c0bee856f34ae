package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal    Context = "global"     // Available everywhere
	ContextList      Context = "list"       // Post list section
	ContextDetail    Context = "detail"     // Post detail form (create/edit/view)
	ContextSearch    Context = "search"     // Title search input
	ContextConfirm   Context = "confirm"    // Confirmation modal
	ContextTextInput Context = "text_input" // Comment input
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"   // Move up one item
	ActionNavigateDown Action = "navigate_down" // Move down one item
	ActionGoToTop      Action = "go_to_top"     // Go to first post
	ActionGoToBottom   Action = "go_to_bottom"  // Go to last post
	ActionScrollUp     Action = "scroll_up"     // Scroll comments up
	ActionScrollDown   Action = "scroll_down"   // Scroll comments down

	// Post actions
	ActionNewPost      Action = "new_post"      // Open empty create form
	ActionViewPost     Action = "view_post"     // Open selected post read-only
	ActionEditPost     Action = "edit_post"     // Open selected post for editing
	ActionDeletePost   Action = "delete_post"   // Delete post (with confirm)
	ActionRefresh      Action = "refresh"       // Reload the post list
	ActionGenerateGUID Action = "generate_guid" // Ask the backend for a GUID
	ActionCopyGUID     Action = "copy_guid"     // Copy last GUID to clipboard
	ActionOpenSearch   Action = "open_search"   // Filter posts by title
	ActionClearSearch  Action = "clear_search"  // Drop the title filter

	// Detail form actions
	ActionSave      Action = "save"       // Create or update the post
	ActionCancel    Action = "cancel"     // Back to list / decline confirmation
	ActionNextField Action = "next_field" // Focus next input
	ActionPrevField Action = "prev_field" // Focus previous input

	// Text input actions
	ActionTextSubmit Action = "text_submit" // Submit text input
	ActionTextCancel Action = "text_cancel" // Cancel text input

	// Confirm actions
	ActionConfirm Action = "confirm" // Accept confirmation

	ActionNoOp Action = "noop" // No operation (ignore key)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:         {ActionQuit, "quit", "Global"},
	ActionQuitForce:    {ActionQuitForce, "force quit", "Global"},
	ActionNavigateUp:   {ActionNavigateUp, "up", "Navigation"},
	ActionNavigateDown: {ActionNavigateDown, "down", "Navigation"},
	ActionGoToTop:      {ActionGoToTop, "top", "Navigation"},
	ActionGoToBottom:   {ActionGoToBottom, "bottom", "Navigation"},
	ActionScrollUp:     {ActionScrollUp, "scroll up", "Navigation"},
	ActionScrollDown:   {ActionScrollDown, "scroll down", "Navigation"},
	ActionNewPost:      {ActionNewPost, "new", "Posts"},
	ActionViewPost:     {ActionViewPost, "view", "Posts"},
	ActionEditPost:     {ActionEditPost, "edit", "Posts"},
	ActionDeletePost:   {ActionDeletePost, "delete", "Posts"},
	ActionRefresh:      {ActionRefresh, "reload", "Posts"},
	ActionGenerateGUID: {ActionGenerateGUID, "guid", "Posts"},
	ActionCopyGUID:     {ActionCopyGUID, "copy guid", "Posts"},
	ActionOpenSearch:   {ActionOpenSearch, "search", "Posts"},
	ActionClearSearch:  {ActionClearSearch, "clear search", "Posts"},
	ActionSave:         {ActionSave, "save", "Detail"},
	ActionCancel:       {ActionCancel, "back", "Detail"},
	ActionNextField:    {ActionNextField, "next field", "Detail"},
	ActionPrevField:    {ActionPrevField, "previous field", "Detail"},
	ActionTextSubmit:   {ActionTextSubmit, "submit", "Text Input"},
	ActionTextCancel:   {ActionTextCancel, "cancel", "Text Input"},
	ActionConfirm:      {ActionConfirm, "yes", "Confirm"},
	ActionNoOp:         {ActionNoOp, "nothing", "Other"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is defined
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuitForce
}
