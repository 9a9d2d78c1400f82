package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/MKhiriev/note-hub/internal/app"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/utils"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageList   = "list"
	pageDetail = "detail"
	pageCreate = "create"
	pageError  = "error"
)

var templateFuncs = template.FuncMap{
	"tagURL":  tagURL,
	"noteURL": noteURL,
	"truncate": func(s string, width int) string {
		return runewidth.Truncate(s, width, "…")
	},
	"fieldError": func(errs validators.FieldErrors, name string) string {
		return errs[name]
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
}

type pages struct {
	byName map[string]*template.Template
}

func parsePages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template)}
	for _, name := range []string{pageList, pageDetail, pageCreate, pageError} {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/form.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", name, err)
		}
		p.byName[name] = t
	}
	return p, nil
}

// render executes a page into a buffer first, so a template error still
// produces a clean 500.
func (p *pages) render(w http.ResponseWriter, name string, status int, data any) error {
	t, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// layoutData is shared by every page.
type layoutData struct {
	Title     string
	TraceID   string
	Tags      []string
	ActiveTag string
}

func newLayout(r *http.Request, title, activeTag string) layoutData {
	tags := make([]string, 0, len(models.Tags)+1)
	tags = append(tags, models.TagAll)
	for _, t := range models.Tags {
		tags = append(tags, t.String())
	}

	traceID, _ := utils.GetTraceIDFromContext(r.Context())
	return layoutData{
		Title:     title,
		TraceID:   traceID,
		Tags:      tags,
		ActiveTag: activeTag,
	}
}

type errorPageData struct {
	layoutData
	Status  int
	Message string
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	if err := h.pages.render(w, name, status, data); err != nil {
		logger.FromRequest(r).Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.renderPage(w, r, pageError, status, errorPageData{
		layoutData: newLayout(r, http.StatusText(status), ""),
		Status:     status,
		Message:    message,
	})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, app.MsgNotFound)
}

func tagURL(tag string) string {
	return "/notes/filter/" + url.PathEscape(tag)
}

func noteURL(id int64) string {
	return "/notes/" + strconv.FormatInt(id, 10)
}

// listURL builds the address of a list page. Page 1 and an empty search are
// left out.
func listURL(tag, search string, page int, create bool) string {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if create {
		q.Set("create", "1")
	}

	u := tagURL(tag)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}
