package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/view"
)

const (
	detailWrapWidth  = 72
	detailDateLayout = "2006-01-02 15:04"
)

type detailModel struct {
	note     *view.NoteDetail
	renderer *glamour.TermRenderer
	status   string
}

func newDetailModel(note *view.NoteDetail, renderer *glamour.TermRenderer) detailModel {
	return detailModel{note: note, renderer: renderer}
}

func newMarkdownRenderer() *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(detailWrapWidth),
	)
	if err != nil {
		return nil
	}
	return r
}

// content returns the note body to copy, if the note is loaded.
func (m detailModel) content() (string, bool) {
	if m.note == nil {
		return "", false
	}
	st := m.note.State()
	if !st.HasData {
		return "", false
	}
	return st.Note.Content, true
}

func (m detailModel) renderContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return helpStyle.Render("(no content)")
	}
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func (m detailModel) View() string {
	if m.note == nil {
		return renderPage("NOTE", "", "esc: back")
	}
	st := m.note.State()

	var b strings.Builder
	switch {
	case st.HasData:
		note := st.Note
		b.WriteString(titleStyle.Render(note.Title) + "\n")
		b.WriteString("Tag: " + tagStyle.Render(note.Tag.String()) + "\n")
		if !note.CreatedAt.IsZero() {
			b.WriteString("Created: " + note.CreatedAt.Format(detailDateLayout) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.renderContent(note.Content))
	case st.IsError:
		b.WriteString(errorStyle.Render(humanizeError(st.Err)))
	default:
		b.WriteString(app.MsgLoadingNote)
	}

	if m.status != "" {
		b.WriteString("\n\n" + m.status)
	}

	return renderPage("NOTE", b.String(), "c: copy content · esc: back · q: quit")
}
