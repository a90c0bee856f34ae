package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerListBindings(r)
	registerDetailBindings(r)
	registerSearchBindings(r)
	registerTextInputBindings(r)
	registerConfirmBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerListBindings sets up the post list
func registerListBindings(r *Registry) {
	r.Register(ContextList, "q", ActionQuit)
	r.RegisterMultiple(ContextList, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextList, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextList, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextList, []string{"end", "G"}, ActionGoToBottom)
	r.Register(ContextList, "n", ActionNewPost)
	r.RegisterMultiple(ContextList, []string{"enter", "v"}, ActionViewPost)
	r.Register(ContextList, "e", ActionEditPost)
	r.Register(ContextList, "d", ActionDeletePost)
	r.Register(ContextList, "r", ActionRefresh)
	r.Register(ContextList, "u", ActionGenerateGUID)
	r.Register(ContextList, "y", ActionCopyGUID)
	r.Register(ContextList, "/", ActionOpenSearch)
	r.Register(ContextList, "esc", ActionClearSearch)
}

// registerDetailBindings sets up the detail form. Only modifier keys are
// used here so plain characters reach the inputs.
func registerDetailBindings(r *Registry) {
	r.Register(ContextDetail, "ctrl+s", ActionSave)
	r.Register(ContextDetail, "esc", ActionCancel)
	r.Register(ContextDetail, "ctrl+d", ActionDeletePost)
	r.Register(ContextDetail, "ctrl+e", ActionEditPost)
	r.Register(ContextDetail, "tab", ActionNextField)
	r.Register(ContextDetail, "shift+tab", ActionPrevField)
	r.Register(ContextDetail, "pgup", ActionScrollUp)
	r.Register(ContextDetail, "pgdown", ActionScrollDown)
}

// registerSearchBindings sets up the title search input
func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
}

// registerTextInputBindings sets up the comment input
func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
}

// registerConfirmBindings sets up the confirmation modal
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}
