/*
Package executor is the transport layer between the client and the board backend.

# Overview

Every API call funnels through Transport.Do, which:
  - joins the configured base URL with the request path
  - JSON-encodes the request body when one is given
  - fails with *RequestError on any non-2xx status, carrying the status and body text
  - decodes the response as JSON when Content-Type contains application/json,
    otherwise returns the body as text

# Error Handling

Transport is the single point of error surfacing. A failed request (network
error, bad status or undecodable JSON) is logged, reported once to the
Notifier with severity error and then returned, so callers never show a
second notification. Requests cancelled through their context are returned
silently: the caller abandoned them.

	var reqErr *executor.RequestError
	if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
		// ...
	}

Hint turns a failure into an actionable line (connection refused, DNS,
TLS, status class) for the CLI error output and the TUI fallback row.

# Example Usage

	t := executor.New("http://localhost:8080", notifier, executor.WithTimeout(10*time.Second))
	var posts []types.Post
	if _, err := t.Do(ctx, executor.Request{Method: http.MethodGet, Path: "/api/posts"}, &posts); err != nil {
		return err
	}
*/
package executor
