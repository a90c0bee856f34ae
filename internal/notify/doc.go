/*
Package notify implements transient notifications.

Center keeps a stack of toasts for the TUI. Each toast goes through three
phases driven by tea.Tick messages:

	entering --ShowDelay--> visible --HideDelay--> leaving --Transition--> removed

Every toast gets a Handle. Dismissing a handle removes the toast at once and
any tick still in flight for it is ignored. The stack is capped at
Timing.MaxVisible; pushing beyond the cap evicts the oldest toast. The latest
message is also kept as the status line.

Bus is a non-blocking Notifier for code running outside the bubbletea loop
(API calls in tea.Cmd goroutines); Printer is the Notifier of the CLI.
*/
package notify
