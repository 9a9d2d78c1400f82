package models

// NotesPage is one page of the notes list for a given combination of
// page, page size, search term and tag.
type NotesPage struct {
	// Notes holds the notes of the requested page in server order.
	Notes []Note `json:"notes"`

	// TotalPages is the number of pages available for the same filter.
	TotalPages int `json:"totalPages"`
}

// ListParams describes a list request to the NoteHub API.
type ListParams struct {
	// Page is 1-based.
	Page int

	// PerPage is the page size.
	PerPage int

	// Search is the free-text filter; empty means no search.
	Search string

	// Tag is the tag filter. Empty or "All" (any case) means no filter.
	Tag string
}
