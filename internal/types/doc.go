/*
Package types defines the data shared by the API client, the TUI and the
development backend.

# Entities

  - Post: id, title, content. The id is assigned by the backend and treated
    as opaque text (the reference backend sends numbers).
  - Comment: content and creation time, attached to one post.
  - PostInput / CommentInput: request bodies.

# Timestamps

Comment times arrive either as epoch milliseconds or as ISO-8601 strings.
Timestamp accepts both and renders them in local time.

# View state enums

ViewMode (create, edit, view), Section (list, detail) and Severity (info,
success, error) are used by the TUI and notification layers.
*/
package types
