package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/form"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/models"
)

const (
	focusTitle = iota
	focusContent
	focusTag
	focusSubmit
	focusCount
)

// formFields maps focus positions to form field names.
var formFields = [...]string{validators.FieldTitle, validators.FieldContent, validators.FieldTag}

type createModel struct {
	form      *form.Controller
	title     textinput.Model
	content   textarea.Model
	tagIdx    int
	focus     int
	submitErr string
}

func newCreateModel(ctrl *form.Controller) createModel {
	draft := ctrl.Values()

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.SetValue(draft.Title)
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Content (optional)"
	content.ShowLineNumbers = false
	content.SetHeight(5)
	content.SetValue(draft.Content)

	tagIdx := 0
	for i, t := range models.Tags {
		if t == draft.Tag {
			tagIdx = i
		}
	}

	return createModel{
		form:    ctrl,
		title:   title,
		content: content,
		tagIdx:  tagIdx,
	}
}

func (m createModel) tag() models.Tag {
	return models.Tags[m.tagIdx]
}

// moveFocus leaves the focused field, which marks it visited, and focuses
// the next one.
func (m createModel) moveFocus(delta int) (createModel, tea.Cmd) {
	if m.focus < len(formFields) {
		_ = m.form.Blur(formFields[m.focus])
	}
	m.focus = ((m.focus+delta)%focusCount + focusCount) % focusCount

	m.title.Blur()
	m.content.Blur()
	switch m.focus {
	case focusTitle:
		return m, m.title.Focus()
	case focusContent:
		return m, m.content.Focus()
	}
	return m, nil
}

func (m createModel) cycleTag(delta int) createModel {
	m.tagIdx = ((m.tagIdx+delta)%len(models.Tags) + len(models.Tags)) % len(models.Tags)
	_ = m.form.SetField(validators.FieldTag, m.tag().String())
	return m
}

// updateInput feeds msg to the focused text field and copies its value
// into the form.
func (m createModel) updateInput(msg tea.Msg) (createModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
		_ = m.form.SetField(validators.FieldTitle, m.title.Value())
	case focusContent:
		m.content, cmd = m.content.Update(msg)
		_ = m.form.SetField(validators.FieldContent, m.content.Value())
	}
	return m, cmd
}

func (m createModel) View(createLabel string) string {
	errs := m.form.Errors()

	var b strings.Builder
	field := func(label string, focus int, body string) {
		if m.focus == focus {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label + "\n" + body + "\n")
		if msg, ok := errs[formFields[focus]]; ok {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}

	field("Title", focusTitle, m.title.View())
	field("Content", focusContent, m.content.View())
	field("Tag", focusTag, "‹ "+tagStyle.Render(m.tag().String())+" ›")

	button := "[ " + createLabel + " ]"
	if m.focus == focusSubmit {
		button = selectedStyle.Render(button)
	}
	b.WriteString(button)

	if m.submitErr != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.submitErr))
	}

	hotKeys := "tab: next field · ←/→: tag · ctrl+s: create · esc: cancel"
	if m.form.Pending() {
		hotKeys = app.MsgCreating
	}
	return renderPage("NEW NOTE", b.String(), hotKeys)
}
