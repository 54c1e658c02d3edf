// Package habitservice implements the habit-state reconciliation core: it
// validates mutation intents, applies defaults and clamping, and keeps the
// stored record the single source of truth for derived attributes.
package habitservice

import (
	"errors"
	"maps"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/uruz/internal/apperr"
	"github.com/starford/uruz/internal/store"
)

// Listing defaults. Clients may request any page size up to MaxPageSize.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service coordinates validation and store operations.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a new habit service.
func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// checkID rejects identifiers that are not well-formed UUIDs before any store
// access, so malformed ids are distinguishable from unknown ones.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrInvalidID
	}
	return nil
}

// fieldErrors converts ozzo validation errors into the apperr taxonomy,
// preserving every per-field violation in a stable order.
func fieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(apperr.FieldErrors, 0, len(verrs))
	for _, field := range slices.Sorted(maps.Keys(verrs)) {
		out = append(out, apperr.FieldError{Field: field, Message: verrs[field].Error()})
	}
	return out
}

// NormalizePage clamps listing parameters to their valid range so handlers
// and service agree on the effective page and limit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
