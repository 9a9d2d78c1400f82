// Package view holds the front-end independent view models of NoteHub: the
// filtered, searchable, paginated notes list and the note detail.
//
// Both the HTML handlers and the terminal UI render from [ListState] and
// [DetailState]; neither keeps its own copy of fetched data. All fetched
// data lives in the session's query cache and is reached through a
// [query.Observer].
package view
