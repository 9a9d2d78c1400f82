package view

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/note-hub/internal/adapter"
	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/form"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/mock"
	"github.com/MKhiriev/note-hub/internal/query"
	"github.com/MKhiriev/note-hub/internal/service"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newSvc(t *testing.T) (service.NotesService, *mock.MockNotesAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockNotesAdapter(ctrl)
	svc := service.NewNotesService(mockAdapter, query.NewClient(), service.NotesConfig{PerPage: 12}, logger.Nop())
	return svc, mockAdapter
}

func pageOf(total int, ids ...int64) models.NotesPage {
	notes := make([]models.Note, 0, len(ids))
	for _, id := range ids {
		notes = append(notes, models.Note{ID: id, Title: "note", Tag: models.TagTodo})
	}
	return models.NotesPage{Notes: notes, TotalPages: total}
}

func params(page int, search, tag string) models.ListParams {
	return models.ListParams{Page: page, PerPage: 12, Search: search, Tag: tag}
}

// ── NotesList ─────────────────────────────────────────────────────────────────

func TestNotesList_SeedServedWithoutFetch(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), gomock.Any()).Times(0)
	seed := pageOf(1, 1, 2)

	l := NewNotesList(svc, ListConfig{Tag: "All", Seed: &seed}, logger.Nop())
	got, err := l.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, seed, got)

	st := l.State()
	assert.Len(t, st.Notes, 2)
	assert.False(t, st.ShowPagination)
	assert.False(t, st.IsLoading)
}

func TestNotesList_OneFetchPerKey(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "", "Work")).Return(pageOf(3, 1), nil).Times(1)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(2, "", "Work")).Return(pageOf(3, 2), nil).Times(1)

	l := NewNotesList(svc, ListConfig{Tag: "Work"}, logger.Nop())
	ctx := context.Background()

	for range 3 {
		_, err := l.Load(ctx)
		require.NoError(t, err)
	}

	assert.True(t, l.SetPage(2))
	assert.False(t, l.SetPage(2))
	for range 2 {
		_, err := l.Load(ctx)
		require.NoError(t, err)
	}

	// back to a cached page
	l.SetPage(1)
	_, err := l.Load(ctx)
	require.NoError(t, err)
}

func TestNotesList_PaginationState(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "", "All")).Return(pageOf(3, 1), nil)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(2, "", "All")).Return(pageOf(3, 13), nil)

	l := NewNotesList(svc, ListConfig{Tag: "All"}, logger.Nop())
	_, err := l.Load(context.Background())
	require.NoError(t, err)

	st := l.State()
	assert.True(t, st.ShowPagination)
	assert.Equal(t, 3, st.TotalPages)
	assert.False(t, st.HasPrev)
	assert.True(t, st.HasNext)

	require.True(t, l.NextPage())
	st = l.State()
	assert.Equal(t, 2, st.Page)
	assert.True(t, st.IsPlaceholder, "previous page shown while page 2 loads")
	assert.Equal(t, int64(1), st.Notes[0].ID)

	_, err = l.Load(context.Background())
	require.NoError(t, err)
	st = l.State()
	assert.False(t, st.IsPlaceholder)
	assert.Equal(t, int64(13), st.Notes[0].ID)
	assert.Equal(t, []PageItem{{Page: 1}, {Page: 2, Current: true}, {Page: 3}}, st.Pages)
}

func TestNotesList_LateResponseForLeftPageIgnored(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	started := make(chan struct{})
	release := make(chan struct{})
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "", "All")).Return(pageOf(3, 1), nil)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(2, "", "All")).
		DoAndReturn(func(context.Context, models.ListParams) (models.NotesPage, error) {
			close(started)
			<-release
			return pageOf(3, 13), nil
		})
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(3, "", "All")).Return(pageOf(3, 25), nil)

	l := NewNotesList(svc, ListConfig{Tag: "All"}, logger.Nop())
	ctx := context.Background()
	_, err := l.Load(ctx)
	require.NoError(t, err)

	require.True(t, l.NextPage())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = l.Load(ctx)
	}()
	<-started

	require.True(t, l.NextPage())
	_, err = l.Load(ctx)
	require.NoError(t, err)

	close(release)
	<-done

	st := l.State()
	assert.Equal(t, 3, st.Page)
	assert.False(t, st.IsPlaceholder)
	require.NotEmpty(t, st.Notes)
	assert.Equal(t, int64(25), st.Notes[0].ID)
}

func TestNotesList_SearchDebouncedAndResetsPage(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "", "All")).Return(pageOf(4, 1), nil)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(3, "", "All")).Return(pageOf(4, 25), nil)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "milk", "All")).Return(pageOf(1, 7), nil).Times(1)

	l := NewNotesList(svc, ListConfig{Tag: "All"}, logger.Nop())
	ctx := context.Background()
	_, _ = l.Load(ctx)
	l.SetPage(3)
	_, _ = l.Load(ctx)

	g1 := l.SetSearch("m")
	g2 := l.SetSearch("mi")
	g3 := l.SetSearch("milk")

	assert.Equal(t, 1, l.Page())
	assert.Equal(t, "milk", l.State().SearchInput)
	assert.Equal(t, "", l.State().Search)

	assert.False(t, l.CommitSearch(g1))
	assert.False(t, l.CommitSearch(g2))
	assert.True(t, l.CommitSearch(g3))
	assert.Equal(t, service.NotesListKey("milk", 1, "All"), l.Key())

	_, err := l.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), l.State().Notes[0].ID)
}

func TestNotesList_SeedNotUsedForSearchOrLaterPages(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	seed := pageOf(2, 1)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(2, "", "Todo")).Return(pageOf(2, 13), nil)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "abc", "Todo")).Return(pageOf(1), nil)

	l := NewNotesList(svc, ListConfig{Tag: "Todo", Seed: &seed}, logger.Nop())
	ctx := context.Background()

	l.SetPage(2)
	got, err := l.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(13), got.Notes[0].ID)

	l.ApplySearch("abc")
	_, err = l.Load(ctx)
	require.NoError(t, err)
	assert.True(t, l.State().IsEmpty)
}

func TestNotesList_RefetchAfterCreateWithinStaleWindow(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "", "All")).Return(pageOf(1, 1), nil),
		mockAdapter.EXPECT().CreateNote(gomock.Any(), gomock.Any()).Return(models.Note{ID: 2}, nil),
		mockAdapter.EXPECT().ListNotes(gomock.Any(), params(1, "", "All")).Return(pageOf(1, 2, 1), nil),
	)

	l := NewNotesList(svc, ListConfig{Tag: "All"}, logger.Nop())
	_, err := l.Load(ctx)
	require.NoError(t, err)

	closed := false
	f := l.OpenCreate(func() { closed = true })
	assert.True(t, l.State().ModalOpen)
	require.NoError(t, f.SetField(validators.FieldTitle, "Second"))

	_, err = f.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.False(t, l.State().ModalOpen)

	_, err = l.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, l.State().Notes, 2)
}

func TestNotesList_CreatePendingLabelAndClose(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	release := make(chan struct{})
	mockAdapter.EXPECT().CreateNote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.NewNotePayload) (models.Note, error) {
			<-release
			return models.Note{ID: 1}, nil
		})

	l := NewNotesList(svc, ListConfig{}, logger.Nop())
	assert.Equal(t, app.MsgCreateNote, l.State().CreateLabel)
	assert.Equal(t, "All", l.State().Tag)

	f := l.OpenCreate(nil)
	assert.Same(t, f, l.OpenCreate(nil))
	require.NoError(t, f.SetField(validators.FieldTitle, "Pending"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(context.Background())
	}()

	require.Eventually(t, func() bool { return l.State().CreatePending }, time.Second, time.Millisecond)
	assert.Equal(t, app.MsgCreating, l.State().CreateLabel)
	assert.ErrorIs(t, l.CloseCreate(), form.ErrSubmitting)

	close(release)
	<-done
	assert.False(t, l.State().ModalOpen)
}

func TestNotesList_CancelCreate(t *testing.T) {
	svc, _ := newSvc(t)
	l := NewNotesList(svc, ListConfig{}, logger.Nop())

	l.OpenCreate(nil)
	require.NoError(t, l.CloseCreate())
	assert.False(t, l.State().ModalOpen)
	assert.NoError(t, l.CloseCreate())
}

func TestNotesList_ErrorState(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	mockAdapter.EXPECT().ListNotes(gomock.Any(), gomock.Any()).Return(models.NotesPage{}, adapter.ErrNetwork)

	l := NewNotesList(svc, ListConfig{Tag: "All"}, logger.Nop())
	_, err := l.Load(context.Background())
	require.Error(t, err)

	st := l.State()
	assert.True(t, st.IsError)
	assert.Equal(t, app.MsgSomethingWrong, st.ErrorMessage)
	assert.False(t, st.IsLoading)
	assert.False(t, st.ShowPagination)
}

func TestNotesList_LoadingBeforeFirstFetch(t *testing.T) {
	svc, _ := newSvc(t)
	l := NewNotesList(svc, ListConfig{Tag: "All"}, logger.Nop())

	st := l.State()
	assert.True(t, st.IsLoading)
	assert.False(t, st.HasData)
	assert.Equal(t, 1, st.TotalPages)
}

// ── NoteDetail ────────────────────────────────────────────────────────────────

func TestNoteDetail_HydratedDataNoCall(t *testing.T) {
	// server side: prefetch and dehydrate
	serverSvc, serverAdapter := newSvc(t)
	serverAdapter.EXPECT().GetNote(gomock.Any(), int64(42)).Return(models.Note{ID: 42, Title: "Standup"}, nil).Times(1)
	require.NoError(t, serverSvc.Prefetch(context.Background(), 42))

	state, err := serverSvc.Cache().Dehydrate()
	require.NoError(t, err)
	raw, err := json.Marshal(state)
	require.NoError(t, err)

	// client side: hydrate and render
	clientSvc, clientAdapter := newSvc(t)
	clientAdapter.EXPECT().GetNote(gomock.Any(), gomock.Any()).Times(0)

	var decoded query.DehydratedState
	require.NoError(t, json.Unmarshal(raw, &decoded))
	clientSvc.Cache().Hydrate(decoded)

	d := NewNoteDetail(clientSvc, 42)
	st := d.State()
	require.True(t, st.HasData)
	assert.Equal(t, "Standup", st.Note.Title)

	note, err := d.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), note.ID)
}

func TestNoteDetail_NotFound(t *testing.T) {
	svc, mockAdapter := newSvc(t)
	mockAdapter.EXPECT().GetNote(gomock.Any(), int64(9)).Return(models.Note{}, &adapter.HTTPError{StatusCode: 404})

	d := NewNoteDetail(svc, 9)
	_, err := d.Load(context.Background())
	require.Error(t, err)

	st := d.State()
	assert.True(t, st.NotFound)
	assert.True(t, st.IsError)
	assert.Equal(t, app.MsgNoteNotFound, st.ErrorMessage)
	assert.Equal(t, int64(9), d.ID())
}

// ── helpers under test ────────────────────────────────────────────────────────

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(0)
	assert.Equal(t, DefaultSearchDebounce, d.Delay())

	g1 := d.Push("a")
	g2 := d.Push("ab")
	assert.False(t, d.Fire(g1))
	assert.Equal(t, "", d.Value())
	assert.True(t, d.Fire(g2))
	assert.Equal(t, "ab", d.Value())
	assert.False(t, d.Fire(g2))

	d.Set("x")
	assert.Equal(t, "x", d.Value())
}

func TestPageWindow(t *testing.T) {
	assert.Nil(t, PageWindow(1, 1))
	assert.Nil(t, PageWindow(1, 0))

	assert.Equal(t, []PageItem{{Page: 1, Current: true}, {Page: 2}}, PageWindow(1, 2))

	got := PageWindow(10, 20)
	pages := make([]int, 0, len(got))
	for _, it := range got {
		if it.Ellipsis {
			pages = append(pages, -1)
			continue
		}
		pages = append(pages, it.Page)
	}
	assert.Equal(t, []int{1, -1, 8, 9, 10, 11, 12, -1, 20}, pages)

	first := PageWindow(1, 20)
	assert.Equal(t, PageItem{Page: 1, Current: true}, first[0])
	assert.Equal(t, PageItem{Page: 5}, first[4])
	assert.True(t, first[5].Ellipsis)
	assert.Equal(t, PageItem{Page: 20}, first[6])
}

func TestTagFromSegments(t *testing.T) {
	assert.Equal(t, "All", TagFromSegments(nil))
	assert.Equal(t, "All", TagFromSegments([]string{""}))
	assert.Equal(t, "Work", TagFromSegments([]string{"Work", "extra"}))
}

func TestParseNoteID(t *testing.T) {
	id, err := ParseNoteID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "4.2"} {
		_, err := ParseNoteID(raw)
		assert.ErrorIs(t, err, ErrInvalidNoteID, raw)
	}
}
