/*
Package tui implements the terminal user interface of the post board.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, message types and the update loop
  - init.go: Wiring (config, theme, keybinds, transport) and Run
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: API commands and their result handlers
  - detail.go: The create/edit/view form (prepareDetailView, showSection)
  - render.go: Post table, comment list, toasts, status bar and modal
  - confirm.go: The awaitable confirmation modal
  - view_state.go: ViewState, the section/mode/current post value
  - sync_state.go: LoadState, generation-sequenced cancellable loads

# Sections

Exactly one of two sections is visible. The list shows the posts with
1-based positions; the detail section shows one post in create, edit or view
mode. Title and content are read-only in view mode, where the delete action
and the comment section are offered instead of save.

# Threading Model

The TUI runs in a single goroutine (Bubble Tea's event loop). API calls run
as tea.Cmd goroutines and report back with messages. Transport failures are
raised on those goroutines and reach the loop through notify.Bus.

Loads of the post list, a post and its comments are sequenced by LoadState:
a new load cancels the previous one and stale results are dropped. Writes
are never cancelled.
*/
package tui
