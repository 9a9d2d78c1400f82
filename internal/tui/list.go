package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/view"
	"github.com/MKhiriev/note-hub/models"
)

const listTitleWidth = 40

// tagFilters is the order the list cycles through tag filters.
var tagFilters = func() []string {
	out := []string{models.TagAll}
	for _, t := range models.Tags {
		out = append(out, t.String())
	}
	return out
}()

type listModel struct {
	svc      service.NotesService
	notes    *view.NotesList
	debounce time.Duration
	logger   *logger.Logger

	tagIdx    int
	search    textinput.Model
	searching bool
	idx       int
	spinner   spinner.Model
	status    string
}

func newListModel(svc service.NotesService, debounce time.Duration, log *logger.Logger) listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	in := textinput.New()
	in.Placeholder = "type to search"
	in.Prompt = ""

	return listModel{
		svc:      svc,
		notes:    view.NewNotesList(svc, view.ListConfig{Tag: models.TagAll, Debounce: debounce}, log),
		debounce: debounce,
		logger:   log,
		search:   in,
		spinner:  s,
	}
}

// withTag opens the list of another tag filter with an empty search, the
// way following a sidebar link does.
func (m listModel) withTag(idx int) listModel {
	m.notes.Close()

	m.tagIdx = (idx%len(tagFilters) + len(tagFilters)) % len(tagFilters)
	m.notes = view.NewNotesList(m.svc, view.ListConfig{
		Tag:      tagFilters[m.tagIdx],
		Debounce: m.debounce,
	}, m.logger)
	m.search.SetValue("")
	m.search.Blur()
	m.searching = false
	m.idx = 0
	return m
}

func (m listModel) current() (models.Note, bool) {
	notes := m.notes.State().Notes
	if len(notes) == 0 || m.idx < 0 || m.idx >= len(notes) {
		return models.Note{}, false
	}
	return notes[m.idx], true
}

func (m listModel) clampCursor() listModel {
	n := len(m.notes.State().Notes)
	if m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
	return m
}

func (m listModel) View() string {
	st := m.notes.State()

	var b strings.Builder
	b.WriteString("Search: ")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch {
	case st.IsLoading && !st.HasData:
		b.WriteString(m.spinner.View() + " " + app.MsgLoadingNotes + "\n")
	case st.IsError && !st.HasData:
		b.WriteString(errorStyle.Render(humanizeError(st.Err)) + "\n")
	case st.IsEmpty:
		b.WriteString(app.MsgNoNotesFound + "\n")
	default:
		for i, note := range st.Notes {
			row := padText(note.Title, listTitleWidth) + "  " + tagStyle.Render(note.Tag.String())
			switch {
			case i == m.idx:
				row = selectedStyle.Render("> ") + row
			default:
				row = "  " + row
			}
			if st.IsPlaceholder {
				row = helpStyle.Render(row)
			}
			b.WriteString(row + "\n")
		}
		if st.IsError {
			b.WriteString("\n" + errorStyle.Render(humanizeError(st.Err)) + "\n")
		}
	}

	if st.IsFetching && st.HasData {
		b.WriteString("\n" + m.spinner.View() + " updating\n")
	}
	if st.ShowPagination {
		b.WriteString("\n" + renderPager(st) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	hotKeys := "↑/↓: select · ←/→: page · [/]: tag · /: search · enter: open · n: " +
		st.CreateLabel + " · v: about · q: quit"
	if m.searching {
		hotKeys = "enter / esc: stop typing"
	}

	return renderPage(fmt.Sprintf("NOTEHUB · %s", st.Tag), b.String(), hotKeys)
}

func renderPager(st view.ListState) string {
	parts := make([]string, 0, len(st.Pages)+2)
	if st.HasPrev {
		parts = append(parts, "‹")
	}
	for _, item := range st.Pages {
		switch {
		case item.Ellipsis:
			parts = append(parts, "…")
		case item.Current:
			parts = append(parts, selectedStyle.Render(fmt.Sprintf("[%d]", item.Page)))
		default:
			parts = append(parts, fmt.Sprintf("%d", item.Page))
		}
	}
	if st.HasNext {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}
