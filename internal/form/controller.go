// Package form drives the create-note form: field state, validation and
// the submission lifecycle.
//
//	Editing ──Submit──▶ Validating ──invalid──▶ Editing
//	                         │
//	                       valid
//	                         ▼
//	                    Submitting ──ok──▶ Success
//	                         │
//	                       error
//	                         ▼
//	                      Failed ──▶ Editing
//
// A [Controller] is used by one form instance. Its methods are safe for
// concurrent use, so a front end may submit from a background goroutine
// while rendering from another.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/note-hub/internal/logger"
	"github.com/MKhiriev/note-hub/internal/validators"
	"github.com/MKhiriev/note-hub/models"
)

// Status is the lifecycle stage of a form.
type Status int

const (
	StatusEditing Status = iota
	StatusValidating
	StatusSubmitting
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusValidating:
		return "validating"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrSubmitting is returned by mutating calls while a submission runs.
var ErrSubmitting = errors.New("form: submission in progress")

// Creator stores a note. The notes service implements it and invalidates the
// cached lists on success.
type Creator interface {
	CreateNote(ctx context.Context, payload models.NewNotePayload) (models.Note, error)
}

// Controller holds the state of one create-note form.
type Controller struct {
	creator Creator

	onClose      func()
	onTransition func(from, to Status)
	logger       *logger.Logger

	mu        sync.Mutex
	draft     models.NoteDraft
	touched   map[string]bool
	errs      validators.FieldErrors
	status    Status
	submitErr error
	created   *models.Note
}

// Option configures a [Controller].
type Option func(*Controller)

// WithOnClose registers the callback run after a successful submit or a
// cancel. Front ends close their modal or navigate away in it.
func WithOnClose(fn func()) Option {
	return func(c *Controller) { c.onClose = fn }
}

// WithTransitionHook registers a callback for every status change. It runs
// outside the controller lock.
func WithTransitionHook(fn func(from, to Status)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New returns a form in Editing with an empty draft and the default tag.
func New(creator Creator, opts ...Option) *Controller {
	c := &Controller{
		creator: creator,
		logger:  logger.Nop(),
		draft:   models.NewNoteDraft(),
		touched: make(map[string]bool),
		errs:    validators.FieldErrors{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type transition struct{ from, to Status }

// setStatusLocked records a change for [Controller.fire].
func (c *Controller) setStatusLocked(to Status, log *[]transition) {
	if c.status == to {
		return
	}
	*log = append(*log, transition{from: c.status, to: to})
	c.status = to
}

func (c *Controller) fire(log []transition) {
	for _, t := range log {
		c.logger.Debug().Str("from", t.from.String()).Str("to", t.to.String()).Msg("form transition")
		if c.onTransition != nil {
			c.onTransition(t.from, t.to)
		}
	}
}

// Values returns the current draft.
func (c *Controller) Values() models.NoteDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetField changes one field. A field the user already left is revalidated
// immediately.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSubmitting {
		return ErrSubmitting
	}

	switch name {
	case validators.FieldTitle:
		c.draft.Title = value
	case validators.FieldContent:
		c.draft.Content = value
	case validators.FieldTag:
		c.draft.Tag = models.Tag(value)
	default:
		return fmt.Errorf("%w: %s", validators.ErrUnknownField, name)
	}

	if c.touched[name] {
		c.validateFieldLocked(name)
	}
	return nil
}

// Blur marks a field as visited and validates it.
func (c *Controller) Blur(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case validators.FieldTitle, validators.FieldContent, validators.FieldTag:
	default:
		return fmt.Errorf("%w: %s", validators.ErrUnknownField, name)
	}

	c.touched[name] = true
	c.validateFieldLocked(name)
	return nil
}

func (c *Controller) validateFieldLocked(name string) {
	fieldErrs := validators.ValidateNoteFields(c.draft, name)
	if msg, ok := fieldErrs[name]; ok {
		c.errs[name] = msg
		return
	}
	delete(c.errs, name)
}

// Submit validates the whole draft and, when valid, creates the note.
//
// Invalid input returns a [*validators.ValidationError] and the form stays
// editable; the creator is not called. A creator failure is kept in
// [Controller.SubmitError] and returned; the form goes back to Editing with
// the values intact. On success the close callback runs and the created note
// is returned.
func (c *Controller) Submit(ctx context.Context) (models.Note, error) {
	var log []transition

	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return models.Note{}, ErrSubmitting
	}

	c.submitErr = nil
	c.setStatusLocked(StatusValidating, &log)

	errs := validators.ValidateNoteFields(c.draft)
	for _, name := range []string{validators.FieldTitle, validators.FieldContent, validators.FieldTag} {
		c.touched[name] = true
	}
	c.errs = errs

	if !errs.Valid() {
		c.setStatusLocked(StatusEditing, &log)
		c.mu.Unlock()
		c.fire(log)
		return models.Note{}, &validators.ValidationError{Fields: errs}
	}

	c.setStatusLocked(StatusSubmitting, &log)
	payload := c.draft.Payload()
	c.mu.Unlock()
	c.fire(log)
	log = nil

	note, err := c.creator.CreateNote(ctx, payload)

	c.mu.Lock()
	if err != nil {
		c.submitErr = err
		c.setStatusLocked(StatusFailed, &log)
		c.setStatusLocked(StatusEditing, &log)
		c.mu.Unlock()
		c.fire(log)
		c.logger.Warn().Err(err).Msg("failed to create note")
		return models.Note{}, err
	}

	c.created = &note
	c.setStatusLocked(StatusSuccess, &log)
	onClose := c.onClose
	c.mu.Unlock()
	c.fire(log)

	if onClose != nil {
		onClose()
	}
	return note, nil
}

// Cancel discards the draft and runs the close callback. It is refused while
// a submission runs.
func (c *Controller) Cancel() error {
	var log []transition

	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return ErrSubmitting
	}

	c.draft = models.NewNoteDraft()
	c.touched = make(map[string]bool)
	c.errs = validators.FieldErrors{}
	c.submitErr = nil
	c.created = nil
	c.setStatusLocked(StatusEditing, &log)
	onClose := c.onClose
	c.mu.Unlock()
	c.fire(log)

	if onClose != nil {
		onClose()
	}
	return nil
}

// Status returns the current stage.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Pending reports whether a submission is running. Front ends disable their
// submit and cancel buttons while it is true.
func (c *Controller) Pending() bool {
	return c.Status() == StatusSubmitting
}

// Errors returns the messages of visited fields.
func (c *Controller) Errors() validators.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(validators.FieldErrors, len(c.errs))
	for name, msg := range c.errs {
		if c.touched[name] {
			out[name] = msg
		}
	}
	return out
}

// SubmitError returns the error of the last failed submission.
func (c *Controller) SubmitError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}

// Created returns the note stored by a successful submit.
func (c *Controller) Created() (models.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.created == nil {
		return models.Note{}, false
	}
	return *c.created, true
}
