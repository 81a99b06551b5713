// Package authoring drives the recipe authoring view: submitting and
// editing the user's own recipes, and the draft kept when the author
// navigates away.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/draft"
	"github.com/matt-dz/recipehub/internal/log"
	"github.com/matt-dz/recipehub/internal/recipe"
)

var ErrNotFound = errors.New("created recipe not found")

// Service is scoped to one profile through the store and drafts it is
// built with.
type Service struct {
	store  *collection.Store
	drafts *draft.Manager
	logger *slog.Logger
}

func New(store *collection.Store, drafts *draft.Manager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = log.NullLogger()
	}
	return &Service{store: store, drafts: drafts, logger: logger}
}

// Submit validates form and stores it as a created recipe, replacing the
// recipe editingID when it exists. The draft is cleared once the recipe
// is persisted. A save failure returns the stored record together with an
// error wrapping collection.ErrSaveFailed, and keeps the draft.
func (s *Service) Submit(ctx context.Context, form recipe.Form, editingID int64) (recipe.Record, error) {
	if err := form.Validate(); err != nil {
		return recipe.Record{}, err
	}

	created, err := s.store.UpsertCreated(ctx, form.Record(editingID))
	if err != nil && !errors.Is(err, collection.ErrSaveFailed) {
		return recipe.Record{}, err
	}
	saveErr := err

	stored := created[len(created)-1]
	if editingID != 0 && created.Contains(editingID) {
		stored, _ = findByID(created, editingID)
	}

	if saveErr != nil {
		return stored, saveErr
	}
	if err := s.drafts.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "clearing draft after submit", slog.Any("error", err))
	}
	return stored, nil
}

// Leave records the author's decision when navigating away from form.
// With keep set a non-empty form is saved as the draft; otherwise the
// draft is discarded. It reports whether a draft was saved.
func (s *Service) Leave(ctx context.Context, form recipe.Form, keep bool) (bool, error) {
	if keep && !form.IsEmpty() {
		if _, err := s.drafts.Save(ctx, form); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, s.drafts.Clear(ctx)
}

// Resume returns the draft form if one is still fresh.
func (s *Service) Resume(ctx context.Context) (recipe.Form, bool, error) {
	d, ok, err := s.drafts.Load(ctx)
	if err != nil || !ok {
		return recipe.Form{}, false, err
	}
	return d.Data, true, nil
}

// Edit returns the form for an existing created recipe.
func (s *Service) Edit(ctx context.Context, id int64) (recipe.Form, error) {
	r, ok, err := s.store.Find(ctx, collection.Created, id)
	if err != nil {
		return recipe.Form{}, err
	}
	if !ok {
		return recipe.Form{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return recipe.FormFromRecord(r), nil
}

// Delete removes a created recipe.
func (s *Service) Delete(ctx context.Context, id int64) (collection.Collection, error) {
	return s.store.Remove(ctx, collection.Created, id)
}

func findByID(c collection.Collection, id int64) (recipe.Record, bool) {
	for _, r := range c {
		if r.ID == id {
			return r, true
		}
	}
	return recipe.Record{}, false
}
