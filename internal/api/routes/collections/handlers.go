// Package collections contains handlers for a profile's saved recipe
// collections.
package collections

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apiError "github.com/matt-dz/recipehub/internal/api/error"
	"github.com/matt-dz/recipehub/internal/api/requestid"
	"github.com/matt-dz/recipehub/internal/api/scope"
	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/env"
	mJson "github.com/matt-dz/recipehub/internal/json"
	"github.com/matt-dz/recipehub/internal/recipe"
)

// resolve extracts the request scope and the collection named in the URL.
// It writes the error response itself and reports false on failure.
func resolve(w http.ResponseWriter, r *http.Request) (scope.Scope, collection.Name, bool) {
	ctx := r.Context()
	s, err := scope.FromRequest(r)
	if err != nil {
		env.EnvFromCtx(ctx).Logger.ErrorContext(ctx, "failed to resolve scope", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return s, "", false
	}
	name, err := collection.ParseName(chi.URLParam(r, "name"))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.UnknownCollection, err.Error(), s.RequestID)
		return s, "", false
	}
	return s, name, true
}

func write(w http.ResponseWriter, r *http.Request, s scope.Scope, resp CollectionResponse) {
	if err := mJson.Write(w, http.StatusOK, resp); err != nil {
		s.Env.Logger.ErrorContext(r.Context(), "failed to write response", slog.Any("error", err))
	}
}

// GetCollection returns the named collection. An unreadable collection
// reads as empty.
//
//	@Summary	Get a collection.
//	@Tags		Collections
//
//	@Param		name		path	string	true	"Collection name"
//	@Param		X-Tab-ID	header	string	false	"Tab id"
//
//	@Success	200	{object}	CollectionResponse
//	@Failure	404	{object}	apiError.Error	"Unknown Collection"
//	@Router		/api/collections/{name} [GET]
func GetCollection(w http.ResponseWriter, r *http.Request) {
	s, name, ok := resolve(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	c, err := s.Collections().Load(ctx, name)
	if err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to load collection", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	write(w, r, s, newCollectionResponse(name, c, ""))
}

// ToggleRecipe adds the posted recipe to the collection, or removes it when
// it is already there. Created recipes are managed under /api/recipes.
//
//	@Summary	Add or remove a recipe.
//	@Tags		Collections
//
//	@Accept		json
//	@Param		name		path	string			true	"Collection name"
//	@Param		request		body	recipe.Record	true	"Recipe to toggle"
//	@Param		X-Tab-ID	header	string			false	"Tab id"
//
//	@Success	200	{object}	CollectionResponse
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	422	{object}	apiError.Error	"Unprocessible Entity"
//	@Router		/api/collections/{name}/toggle [POST]
func ToggleRecipe(w http.ResponseWriter, r *http.Request) {
	s, name, ok := resolve(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	if name == collection.Created {
		_ = apiError.EncodeError(w, apiError.BadRequest, "created recipes are managed under /api/recipes", s.RequestID)
		return
	}

	var body recipe.Record
	if err := scope.DecodeBody(w, r, &body); err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to decode body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe body", s.RequestID)
		return
	}

	c, err := s.Collections().Toggle(ctx, name, body)
	switch {
	case errors.Is(err, recipe.ErrInvalidRecord):
		_ = apiError.EncodeError(w, apiError.UnprocessibleEntity, err.Error(), s.RequestID)
		return
	case err != nil && scope.Warning(err) == "":
		s.Env.Logger.ErrorContext(ctx, "failed to toggle recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	write(w, r, s, newCollectionResponse(name, c, scope.Warning(err)))
}

// RemoveRecipe drops a recipe from the collection. Removing an absent
// recipe succeeds.
//
//	@Summary	Remove a recipe.
//	@Tags		Collections
//
//	@Param		name		path	string	true	"Collection name"
//	@Param		id			path	int		true	"Recipe id"
//	@Param		X-Tab-ID	header	string	false	"Tab id"
//
//	@Success	200	{object}	CollectionResponse
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Router		/api/collections/{name}/{id} [DELETE]
func RemoveRecipe(w http.ResponseWriter, r *http.Request) {
	s, name, ok := resolve(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	id, err := scope.IDParam(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), s.RequestID)
		return
	}

	c, err := s.Collections().Remove(ctx, name, id)
	if err != nil && scope.Warning(err) == "" {
		s.Env.Logger.ErrorContext(ctx, "failed to remove recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	write(w, r, s, newCollectionResponse(name, c, scope.Warning(err)))
}
