// Package http is the web front end of NoteHub.
//
// It renders the notes list, note detail and create-note pages as HTML and
// serves a small JSON API under /api. Every browser session owns its own
// query cache, so pages visited again within the stale window are rendered
// without calling the NoteHub API. Trace ids, access logging, compression,
// ETags and session cookies are handled by middleware before a request
// reaches a page handler.
package http
