/*
Package mock implements a development backend for the post board.

It serves the same contract the client expects:

	GET    /api/posts                 list posts
	POST   /api/posts                 create (201)
	GET    /api/posts/{id}            one post, 404 if missing
	PUT    /api/posts/{id}            update, 404 if missing
	DELETE /api/posts/{id}            delete (204), 404 if missing
	GET    /api/posts/{id}/comments   comments, 404 if the post is missing
	POST   /api/posts/{id}/comments   add comment (201)
	GET    /api/guid/generate         text/plain GUID

Errors are plain text bodies. Posts live in a Store (in memory or sqlite);
GUIDs come from a GUIDPool filled by a background producer. Every request is
kept in a ring of the last 1000 entries for inspection.
*/
package mock
