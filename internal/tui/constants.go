package tui

// UI Layout Constants

const (
	// Section box
	SectionBorderWidth = 2 // Left + right border
	SectionPadding     = 2 // Horizontal padding inside a section
	StatusBarHeight    = 1
	HeaderHeight       = 2 // App title + GUID line

	// Detail form
	ContentFieldHeight = 6  // Rows of the content textarea
	CommentViewHeight  = 8  // Visible comment lines
	MinFieldWidth      = 20 // Inputs never shrink below this
	TitleCharLimit     = 200

	// Toasts
	ToastWidth = 40

	// Buffer Sizes
	NotificationBusBuffer = 64 // Worker notifications waiting for the update loop
)

// User-facing messages
const (
	msgSaved           = "Post saved successfully."
	msgDeleted         = "Post deleted successfully."
	msgGeneratingGUID  = "Generating GUID..."
	msgGUIDGenerated   = "GUID generated successfully!"
	msgCommentRequired = "Please enter comment content."
	msgCommentAdded    = "Comment added successfully."
	msgConfirmDelete   = "Are you sure you want to delete this post?"
	msgNoGUID          = "No GUID generated yet."
	msgGUIDCopied      = "GUID copied to clipboard."

	textNoPosts       = "No posts."
	textLoadFailed    = "Could not load posts."
	textNoComments    = "No comments yet."
	textTitleCreate   = "New post"
	textTitleEdit     = "Edit post"
	textTitleView     = "Post detail"
	textNoMatches     = "No posts match the search."
	textAppTitle      = "Post Board"
	textGUIDLabel     = "GUID: "
	textWrittenPrefix = "Written: "
)
