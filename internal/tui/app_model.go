package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/MKhiriev/note-hub/internal/form"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/internal/view"
	"github.com/MKhiriev/note-hub/models"
)

const statusDuration = 2 * time.Second

type screen int

const (
	screenList screen = iota
	screenDetail
	screenCreate
)

type appModel struct {
	ctx       context.Context
	svc       service.NotesService
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
	renderer  *glamour.TermRenderer

	currentScreen screen
	list          listModel
	detail        detailModel
	create        createModel

	showBuildInfo bool
	overlay       *errorOverlayModel
}

func newAppModel(ctx context.Context, svc service.NotesService, buildInfo models.AppBuildInfo, debounce time.Duration, log *logger.Logger) appModel {
	return appModel{
		ctx:       ctx,
		svc:       svc,
		buildInfo: buildInfo,
		logger:    log,
		renderer:  newMarkdownRenderer(),
		list:      newListModel(svc, debounce, log),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.list.spinner.Tick, m.cmdLoadList())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.overlay != nil {
			if key.Matches(msg, keys.enter, keys.esc) {
				m.overlay = nil
			}
			return m, nil
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc, keys.buildInfo) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.list.spinner, cmd = m.list.spinner.Update(msg)
		return m, cmd
	case listLoadedMsg:
		if msg.err == nil {
			m.logger.Debug().Str("key", msg.key.String()).Msg("notes list loaded")
		}
		m.list = m.list.clampCursor()
		return m, nil
	case searchCommitMsg:
		if m.list.notes.CommitSearch(msg.gen) {
			m.list.idx = 0
			return m, m.cmdLoadList()
		}
		return m, nil
	case noteLoadedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Int64("id", msg.id).Msg("failed to load note")
		}
		return m, nil
	case noteCreatedMsg:
		return m.handleCreated(msg)
	case copiedMsg:
		if msg.err != nil {
			m.overlay = &errorOverlayModel{message: msg.err.Error()}
			return m, nil
		}
		m.detail.status = "Copied to clipboard"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		m.list.status = ""
		return m, nil
	}

	switch m.currentScreen {
	case screenDetail:
		return m.updateDetail(msg)
	case screenCreate:
		return m.updateCreate(msg)
	default:
		return m.updateList(msg)
	}
}

func (m appModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.list.searching {
			var cmd tea.Cmd
			m.list.search, cmd = m.list.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.list.searching {
		if key.Matches(keyMsg, keys.esc, keys.enter) {
			m.list.searching = false
			m.list.search.Blur()
			return m, nil
		}

		prev := m.list.search.Value()
		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(keyMsg)
		if value := m.list.search.Value(); value != prev {
			gen := m.list.notes.SetSearch(value)
			m.list.idx = 0
			return m, tea.Batch(cmd, m.cmdLoadList(), cmdCommitSearch(gen, m.list.notes.DebounceDelay()))
		}
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.buildInfo):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.search):
		m.list.searching = true
		return m, m.list.search.Focus()
	case key.Matches(keyMsg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.list.idx < len(m.list.notes.State().Notes)-1 {
			m.list.idx++
		}
	case key.Matches(keyMsg, keys.prevPage):
		if m.list.notes.PrevPage() {
			m.list.idx = 0
			return m, m.cmdLoadList()
		}
	case key.Matches(keyMsg, keys.nextPage):
		if m.list.notes.NextPage() {
			m.list.idx = 0
			return m, m.cmdLoadList()
		}
	case key.Matches(keyMsg, keys.nextTag):
		m.list = m.list.withTag(m.list.tagIdx + 1)
		return m, m.cmdLoadList()
	case key.Matches(keyMsg, keys.prevTag):
		m.list = m.list.withTag(m.list.tagIdx - 1)
		return m, m.cmdLoadList()
	case key.Matches(keyMsg, keys.enter):
		note, ok := m.list.current()
		if !ok {
			return m, nil
		}
		return m.openDetail(note.ID)
	case key.Matches(keyMsg, keys.newNote):
		return m.openCreate()
	}

	return m, nil
}

func (m appModel) openDetail(id int64) (tea.Model, tea.Cmd) {
	if m.detail.note != nil {
		m.detail.note.Close()
	}
	m.detail = newDetailModel(view.NewNoteDetail(m.svc, id), m.renderer)
	m.currentScreen = screenDetail
	return m, m.cmdLoadNote()
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.detail.note.Close()
		m.detail = detailModel{}
		m.currentScreen = screenList
		return m, m.cmdLoadList()
	case key.Matches(keyMsg, keys.copy):
		content, ok := m.detail.content()
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(content)
	case key.Matches(keyMsg, keys.buildInfo):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) openCreate() (tea.Model, tea.Cmd) {
	ctrl := m.list.notes.OpenCreate(nil)
	m.create = newCreateModel(ctrl)
	m.currentScreen = screenCreate
	return m, nil
}

func (m appModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.create, cmd = m.create.updateInput(msg)
		return m, cmd
	}

	if m.create.form.Pending() {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(keyMsg, keys.esc):
		if err := m.list.notes.CloseCreate(); err != nil {
			return m, nil
		}
		m.create = createModel{}
		m.currentScreen = screenList
		return m, m.cmdLoadList()
	case key.Matches(keyMsg, keys.tab):
		m.create, cmd = m.create.moveFocus(1)
		return m, cmd
	case key.Matches(keyMsg, keys.backtab):
		m.create, cmd = m.create.moveFocus(-1)
		return m, cmd
	case key.Matches(keyMsg, keys.submit):
		return m.submitCreate()
	case m.create.focus == focusTag && key.Matches(keyMsg, keys.prevPage):
		m.create = m.create.cycleTag(-1)
		return m, nil
	case m.create.focus == focusTag && key.Matches(keyMsg, keys.nextPage):
		m.create = m.create.cycleTag(1)
		return m, nil
	case m.create.focus != focusContent && key.Matches(keyMsg, keys.enter):
		return m.submitCreate()
	}

	m.create, cmd = m.create.updateInput(keyMsg)
	return m, cmd
}

func (m appModel) submitCreate() (tea.Model, tea.Cmd) {
	m.create.submitErr = ""
	ctrl, ctx := m.create.form, m.ctx
	return m, func() tea.Msg {
		note, err := ctrl.Submit(ctx)
		return noteCreatedMsg{note: note, err: err}
	}
}

func (m appModel) handleCreated(msg noteCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		var validationErr *validators.ValidationError
		if errors.As(msg.err, &validationErr) || errors.Is(msg.err, form.ErrSubmitting) {
			return m, nil
		}
		m.create.submitErr = humanizeError(msg.err)
		return m, nil
	}

	m.create = createModel{}
	m.currentScreen = screenList
	m.list.idx = 0
	m.list.status = fmt.Sprintf("Note %q created", msg.note.Title)
	return m, tea.Batch(m.cmdLoadList(), cmdClearStatus())
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}
	if m.overlay != nil {
		return appStyle.Render(m.overlay.View())
	}

	switch m.currentScreen {
	case screenDetail:
		return appStyle.Render(m.detail.View())
	case screenCreate:
		return appStyle.Render(m.create.View(m.list.notes.State().CreateLabel))
	default:
		return appStyle.Render(m.list.View())
	}
}

// close releases the cache subscriptions held by the screens.
func (m appModel) close() {
	m.list.notes.Close()
	if m.detail.note != nil {
		m.detail.note.Close()
	}
}

func (m appModel) cmdLoadList() tea.Cmd {
	ctx, notes := m.ctx, m.list.notes
	listKey := notes.Key()
	return func() tea.Msg {
		_, err := notes.Load(ctx)
		return listLoadedMsg{key: listKey, err: err}
	}
}

func (m appModel) cmdLoadNote() tea.Cmd {
	ctx, note := m.ctx, m.detail.note
	return func() tea.Msg {
		_, err := note.Load(ctx)
		return noteLoadedMsg{id: note.ID(), err: err}
	}
}

func cmdCommitSearch(gen uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchCommitMsg{gen: gen}
	})
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
