// Package doubts holds the ordered list of question threads for one browser
// profile and the pure filters applied to it.
package doubts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	applog "doubtsolver/internal/log"
	"doubtsolver/internal/store"
	"doubtsolver/models"
)

type newDoubt struct {
	Subject  string `validate:"required"`
	Question string `validate:"required"`
}

var validate = validator.New()

// Repository is the in-memory doubt list. Every mutation is written through
// to the backing store before the method returns.
type Repository struct {
	store  store.Store
	doubts []models.Doubt
	now    func() time.Time
}

// Option customises a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// Open rehydrates the repository from s. When nothing was saved, the list
// starts with the built-in sample doubts.
func Open(ctx context.Context, s store.Store, opts ...Option) *Repository {
	if s == nil {
		s = store.Unavailable{}
	}
	r := &Repository{store: s, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	var saved []models.Doubt
	if store.Restore(ctx, s, store.KeyDoubts, &saved) {
		r.doubts = normalize(saved)
		applog.Debug(ctx, "doubts restored", "count", len(r.doubts))
	} else {
		r.doubts = models.SampleDoubts()
		applog.Debug(ctx, "doubts initialised from samples")
	}
	return r
}

func normalize(list []models.Doubt) []models.Doubt {
	out := make([]models.Doubt, 0, len(list))
	for _, doubt := range list {
		if doubt.Answers == nil {
			doubt.Answers = []string{}
		}
		out = append(out, doubt)
	}
	return out
}

// All returns a snapshot of the list, newest first.
func (r *Repository) All() []models.Doubt {
	out := make([]models.Doubt, len(r.doubts))
	for i, doubt := range r.doubts {
		out[i] = doubt.Clone()
	}
	return out
}

// Get returns a copy of the doubt with the given id.
func (r *Repository) Get(id int64) (models.Doubt, bool) {
	if idx := r.indexOf(id); idx >= 0 {
		return r.doubts[idx].Clone(), true
	}
	return models.Doubt{}, false
}

// Stats summarises the full list.
func (r *Repository) Stats() Stats {
	return Summarize(r.doubts)
}

// Add posts a new unresolved doubt at the head of the list.
func (r *Repository) Add(ctx context.Context, subject, question string) (models.Doubt, error) {
	input := newDoubt{
		Subject:  strings.TrimSpace(subject),
		Question: strings.TrimSpace(question),
	}
	if err := validate.Struct(input); err != nil {
		return models.Doubt{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := r.now()
	doubt := models.Doubt{
		ID:        r.nextID(now),
		Subject:   subject,
		Question:  question,
		Answers:   []string{},
		CreatedAt: now,
	}

	r.doubts = append([]models.Doubt{doubt}, r.doubts...)
	r.persist(ctx)
	applog.Debug(ctx, "doubt added", "id", doubt.ID, "subject", input.Subject)
	return doubt.Clone(), nil
}

// nextID derives the id from the creation time in milliseconds and steps past
// the largest id in use so two doubts created in the same millisecond, or
// after a clock step-back, never share an id.
func (r *Repository) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, doubt := range r.doubts {
		if doubt.ID >= id {
			id = doubt.ID + 1
		}
	}
	return id
}

// AddAnswer appends text to the doubt's answers. Blank text is ignored.
func (r *Repository) AddAnswer(ctx context.Context, id int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("answer doubt %d: %w", id, ErrNotFound)
	}
	updated := r.doubts[idx].Clone()
	updated.Answers = append(updated.Answers, text)
	r.doubts[idx] = updated
	r.persist(ctx)
	applog.Debug(ctx, "answer added", "id", id, "answers", len(updated.Answers))
	return nil
}

// Resolve marks the doubt as resolved. Resolving twice is allowed.
func (r *Repository) Resolve(ctx context.Context, id int64) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("resolve doubt %d: %w", id, ErrNotFound)
	}
	if r.doubts[idx].IsResolved {
		return nil
	}
	r.doubts[idx].IsResolved = true
	r.persist(ctx)
	applog.Debug(ctx, "doubt resolved", "id", id)
	return nil
}

// ClearResolved drops every resolved doubt and reports how many were removed.
func (r *Repository) ClearResolved(ctx context.Context) int {
	return r.removeWhere(ctx, func(d models.Doubt) bool { return d.IsResolved })
}

// ClearUnresolved drops every unresolved doubt and reports how many were removed.
func (r *Repository) ClearUnresolved(ctx context.Context) int {
	return r.removeWhere(ctx, func(d models.Doubt) bool { return !d.IsResolved })
}

// Reset restores the sample doubts and forgets the saved list.
func (r *Repository) Reset(ctx context.Context) {
	r.doubts = models.SampleDoubts()
	store.Forget(ctx, r.store, store.KeyDoubts)
	applog.Debug(ctx, "doubts reset to samples")
}

func (r *Repository) removeWhere(ctx context.Context, drop func(models.Doubt) bool) int {
	kept := make([]models.Doubt, 0, len(r.doubts))
	for _, doubt := range r.doubts {
		if !drop(doubt) {
			kept = append(kept, doubt)
		}
	}
	removed := len(r.doubts) - len(kept)
	r.doubts = kept
	r.persist(ctx)
	applog.Debug(ctx, "doubts cleared", "removed", removed, "remaining", len(kept))
	return removed
}

func (r *Repository) indexOf(id int64) int {
	for i := range r.doubts {
		if r.doubts[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) persist(ctx context.Context) {
	store.Persist(ctx, r.store, store.KeyDoubts, r.doubts)
}
