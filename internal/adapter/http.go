package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/note-hub/internal/config"
	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/utils"
	"github.com/MKhiriev/note-hub/models"
)

type httpNotesAdapter struct {
	client  *utils.HTTPClient
	token   string
	limiter *rate.Limiter

	logger *logger.Logger
}

// NewHTTPNotesAdapter constructs the HTTP/JSON implementation of
// [NotesAdapter].
//
// The base URL is normalised; a scheme-less address gets "https://".
// cfg.Token may be given bare or as "Bearer <token>". When it is a JWT whose
// exp claim is already in the past the constructor fails with
// [ErrTokenExpired], since every request would be refused.
// cfg.RateLimitRPS > 0 enables an outbound token bucket.
func NewHTTPNotesAdapter(cfg config.Adapter, log *logger.Logger) (NotesAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	token := strings.TrimSpace(cfg.Token)
	if bearer, err := utils.ParseBearerToken(token); err == nil {
		token = bearer
	}
	if token != "" {
		if exp, ok, err := utils.TokenExpiry(token); err == nil && ok && !exp.After(time.Now()) {
			return nil, fmt.Errorf("%w at %s", ErrTokenExpired, exp.Format(time.RFC3339))
		}
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}

	return &httpNotesAdapter{
		client:  utils.NewHTTPClient(baseURL, cfg.RequestTimeout.D()),
		token:   token,
		limiter: limiter,
		logger:  log.WithComponent("adapter"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ListNotes implements [NotesAdapter]. GET /notes.
func (h *httpNotesAdapter) ListNotes(ctx context.Context, params models.ListParams) (models.NotesPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("perPage", strconv.Itoa(params.PerPage))
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if !models.IsAllTag(params.Tag) {
		query.Set("tag", strings.TrimSpace(params.Tag))
	}

	var page models.NotesPage
	req, err := h.request(ctx)
	if err != nil {
		return models.NotesPage{}, err
	}

	resp, err := req.
		SetQueryParamsFromValues(query).
		SetResult(&page).
		Get("/notes")
	if err = h.check(resp, err, "list notes"); err != nil {
		return models.NotesPage{}, err
	}

	if page.Notes == nil {
		page.Notes = []models.Note{}
	}
	return page, nil
}

// GetNote implements [NotesAdapter]. GET /notes/{id}.
func (h *httpNotesAdapter) GetNote(ctx context.Context, id int64) (models.Note, error) {
	var note models.Note
	req, err := h.request(ctx)
	if err != nil {
		return models.Note{}, err
	}

	resp, err := req.
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&note).
		Get("/notes/{id}")
	if err = h.check(resp, err, "get note"); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// CreateNote implements [NotesAdapter]. POST /notes.
func (h *httpNotesAdapter) CreateNote(ctx context.Context, payload models.NewNotePayload) (models.Note, error) {
	if payload.Content != nil && strings.TrimSpace(*payload.Content) == "" {
		payload.Content = nil
	}

	var note models.Note
	req, err := h.request(ctx)
	if err != nil {
		return models.Note{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&note).
		Post("/notes")
	if err = h.check(resp, err, "create note"); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// request waits for the rate limiter and returns a request bound to ctx with
// the bearer token attached.
func (h *httpNotesAdapter) request(ctx context.Context) (*resty.Request, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %w", ErrNetwork, err)
		}
	}

	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req, nil
}

func (h *httpNotesAdapter) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		h.logger.Debug().Err(err).Str("op", op).Msg("api transport failure")
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}

	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Int("status", resp.StatusCode()).Str("op", op).Msg("api returned error status")
		return fmt.Errorf("%s: %w", op, err)
	}

	h.logger.Debug().
		Str("op", op).
		Str("url", resp.Request.URL).
		Dur("duration", resp.Time()).
		Msg("api call")
	return nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &HTTPError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(resp.Body())),
	}
}
