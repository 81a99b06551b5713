// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"errors"
	"log/slog"
	"net/http"

	apiError "github.com/matt-dz/recipehub/internal/api/error"
	"github.com/matt-dz/recipehub/internal/api/requestid"
	"github.com/matt-dz/recipehub/internal/api/scope"
	"github.com/matt-dz/recipehub/internal/authoring"
	"github.com/matt-dz/recipehub/internal/category"
	"github.com/matt-dz/recipehub/internal/collection"
	"github.com/matt-dz/recipehub/internal/detail"
	"github.com/matt-dz/recipehub/internal/env"
	"github.com/matt-dz/recipehub/internal/feed"
	mJson "github.com/matt-dz/recipehub/internal/json"
	"github.com/matt-dz/recipehub/internal/recipe"
	"github.com/matt-dz/recipehub/internal/spoonacular"
)

func fromRequest(w http.ResponseWriter, r *http.Request) (scope.Scope, bool) {
	ctx := r.Context()
	s, err := scope.FromRequest(r)
	if err != nil {
		env.EnvFromCtx(ctx).Logger.ErrorContext(ctx, "failed to resolve scope", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.ExtractRequestID(ctx))
		return s, false
	}
	return s, true
}

func write(w http.ResponseWriter, r *http.Request, s scope.Scope, v any) {
	if err := mJson.Write(w, http.StatusOK, v); err != nil {
		s.Env.Logger.ErrorContext(r.Context(), "failed to write response", slog.Any("error", err))
	}
}

// writeFeed answers with the feed state, or with its error message in the
// error envelope.
func writeFeed(w http.ResponseWriter, r *http.Request, s scope.Scope, state feed.State) {
	switch state.Error {
	case "":
		write(w, r, s, state)
	case feed.QuotaMessage:
		_ = apiError.EncodeError(w, apiError.QuotaExceeded, state.Error, s.RequestID)
	default:
		_ = apiError.EncodeError(w, apiError.UpstreamFailed, state.Error, s.RequestID)
	}
}

// encodeUpstreamError maps a recipe API failure to the error envelope.
func encodeUpstreamError(w http.ResponseWriter, s scope.Scope, err error, fallback string) {
	if errors.Is(err, spoonacular.ErrQuotaExceeded) {
		_ = apiError.EncodeError(w, apiError.QuotaExceeded, feed.QuotaMessage, s.RequestID)
		return
	}
	_ = apiError.EncodeError(w, apiError.UpstreamFailed, fallback, s.RequestID)
}

// RandomRecipes returns a random batch of recipes and resets the tab's
// category and search. An explicit number gets a one-off batch that leaves
// the tab's feed alone.
//
//	@Summary	Random recipes.
//	@Tags		Recipes
//
//	@Param		number		query	int		false	"Batch size"
//	@Param		X-Tab-ID	header	string	false	"Tab id"
//
//	@Success	200	{object}	feed.State
//	@Failure	429	{object}	apiError.Error	"Quota Exceeded"
//	@Failure	502	{object}	apiError.Error	"Upstream Failed"
//	@Router		/api/recipes/random [GET]
func RandomRecipes(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	if !r.URL.Query().Has("number") {
		f, release := s.Feed()
		defer release()
		writeFeed(w, r, s, f.LoadRandom(r.Context()))
		return
	}

	number, err := scope.IntQuery(r, "number", spoonacular.DefaultPageSize)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), s.RequestID)
		return
	}
	f := feed.New(s.Env.API, feed.Options{PageSize: clampNumber(number), Logger: s.Env.Logger})
	defer f.Close()
	writeFeed(w, r, s, f.LoadRandom(r.Context()))
}

// SearchRecipes searches by query within a category. Without a category
// parameter the tab's active category applies. A blank query on the All
// category returns a random batch.
//
//	@Summary	Search recipes.
//	@Tags		Recipes
//
//	@Param		q			query	string	false	"Query"
//	@Param		category	query	string	false	"Category"
//	@Param		offset		query	int		false	"Result offset"
//	@Param		X-Tab-ID	header	string	false	"Tab id"
//
//	@Success	200	{object}	feed.State
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	429	{object}	apiError.Error	"Quota Exceeded"
//	@Failure	502	{object}	apiError.Error	"Upstream Failed"
//	@Router		/api/recipes/search [GET]
func SearchRecipes(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	offset, err := scope.IntQuery(r, "offset", 0)
	if err != nil || offset < 0 {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid offset", s.RequestID)
		return
	}

	f, release := s.Feed()
	defer release()
	if !query.Has("category") {
		writeFeed(w, r, s, f.Search(r.Context(), query.Get("q"), offset))
		return
	}
	c, err := category.Parse(query.Get("category"))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), s.RequestID)
		return
	}
	writeFeed(w, r, s, f.Show(r.Context(), c, query.Get("q"), offset))
}

// GetFeed returns the tab's current grid.
//
//	@Summary	Get the tab's feed.
//	@Tags		Feed
//
//	@Param		X-Tab-ID	header	string	false	"Tab id"
//
//	@Success	200	{object}	feed.State
//	@Router		/api/feed [GET]
func GetFeed(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	f, release := s.Feed()
	defer release()
	write(w, r, s, f.State())
}

// SelectCategory switches the tab's category. All fetches a fresh random
// batch; any other category re-runs the tab's search narrowed to it.
//
//	@Summary	Select the tab's category.
//	@Tags		Feed
//
//	@Accept		json
//	@Param		request		body	SelectCategoryRequest	true	"Category"
//	@Param		X-Tab-ID	header	string					false	"Tab id"
//
//	@Success	200	{object}	feed.State
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	429	{object}	apiError.Error	"Quota Exceeded"
//	@Router		/api/feed/category [PUT]
func SelectCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req SelectCategoryRequest
	if err := scope.DecodeBody(w, r, &req); err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to decode body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid category request", s.RequestID)
		return
	}
	c, err := category.Parse(req.Category)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), s.RequestID)
		return
	}

	f, release := s.Feed()
	defer release()
	writeFeed(w, r, s, f.SelectCategory(ctx, c))
}

// SuggestRecipes returns type-ahead suggestions for a title prefix.
//
//	@Summary	Suggest recipe titles.
//	@Tags		Recipes
//
//	@Param		q	query	string	false	"Title prefix"
//
//	@Success	200	{object}	SuggestResponse
//	@Failure	502	{object}	apiError.Error	"Upstream Failed"
//	@Router		/api/recipes/suggest [GET]
func SuggestRecipes(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	suggestions, err := s.Env.API.Suggest(ctx, r.URL.Query().Get("q"))
	if err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to suggest recipes", slog.Any("error", err))
		encodeUpstreamError(w, s, err, feed.SearchFailedMessage)
		return
	}
	if suggestions == nil {
		suggestions = []spoonacular.Suggestion{}
	}
	write(w, r, s, SuggestResponse{Suggestions: suggestions})
}

// RecipesByIngredients finds recipes using the listed ingredients.
//
//	@Summary	Recipes using ingredients.
//	@Tags		Recipes
//
//	@Param		i	query	string	true	"Comma separated ingredients"
//
//	@Success	200	{object}	RecipesResponse
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	502	{object}	apiError.Error	"Upstream Failed"
//	@Router		/api/recipes/by-ingredients [GET]
func RecipesByIngredients(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	ingredients := parseIngredients(r.URL.Query().Get("i"))
	if len(ingredients) == 0 || len(ingredients) > maxIngredientList {
		_ = apiError.EncodeError(w, apiError.BadRequest, "list between 1 and 20 ingredients", s.RequestID)
		return
	}

	records, err := s.Env.API.SearchByIngredients(ctx, ingredients)
	if err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to search by ingredients", slog.Any("error", err))
		encodeUpstreamError(w, s, err, feed.SearchFailedMessage)
		return
	}
	resp := RecipesResponse{Recipes: make([]recipe.Summary, 0, len(records))}
	for _, rec := range records {
		resp.Recipes = append(resp.Recipes, recipe.Summarize(rec))
	}
	write(w, r, s, resp)
}

// SurpriseRecipe picks the id of one random recipe.
//
//	@Summary	Pick a random recipe.
//	@Tags		Recipes
//
//	@Success	200	{object}	SurpriseResponse
//	@Failure	502	{object}	apiError.Error	"Upstream Failed"
//	@Router		/api/recipes/surprise [GET]
func SurpriseRecipe(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	f, release := s.Feed()
	defer release()
	id, err := f.SurpriseMe(ctx)
	if err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to pick a recipe", slog.Any("error", err))
		encodeUpstreamError(w, s, err, feed.RandomFailedMessage)
		return
	}
	write(w, r, s, SurpriseResponse{ID: id})
}

// GetRecipe returns a recipe normalized for display, with the profile's
// favorite and liked flags.
//
//	@Summary	Get a recipe.
//	@Tags		Recipes
//
//	@Param		id			path	int		true	"Recipe id"
//	@Param		X-Tab-ID	header	string	false	"Tab id"
//
//	@Success	200	{object}	detail.Result
//	@Failure	404	{object}	apiError.Error	"Recipe Not Found"
//	@Failure	502	{object}	apiError.Error	"Upstream Failed"
//	@Router		/api/recipes/{id} [GET]
func GetRecipe(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	id, err := scope.IDParam(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, detail.NotFoundMessage, s.RequestID)
		return
	}

	result, err := s.Detail().Resolve(ctx, id)
	switch {
	case errors.Is(err, detail.ErrNotFound):
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, detail.Message(err), s.RequestID)
		return
	case errors.Is(err, spoonacular.ErrQuotaExceeded):
		_ = apiError.EncodeError(w, apiError.QuotaExceeded, detail.Message(err), s.RequestID)
		return
	case err != nil:
		_ = apiError.EncodeError(w, apiError.UpstreamFailed, detail.Message(err), s.RequestID)
		return
	}
	write(w, r, s, result)
}

// SubmitRecipe stores the posted form as a created recipe. With ?id= it
// replaces that created recipe.
//
//	@Summary	Submit a recipe.
//	@Tags		Recipes
//
//	@Accept		json
//	@Param		id		query	int			false	"Created recipe to replace"
//	@Param		request	body	recipe.Form	true	"Recipe form"
//
//	@Success	200	{object}	SubmitRecipeResponse
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	422	{object}	apiError.Error	"Unprocessible Entity"
//	@Router		/api/recipes [POST]
func SubmitRecipe(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	editingID, err := scope.IntQuery(r, "id", 0)
	if err != nil || editingID < 0 {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", s.RequestID)
		return
	}
	var form recipe.Form
	if err := scope.DecodeBody(w, r, &form); err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to decode body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe form", s.RequestID)
		return
	}

	stored, err := s.Authoring().Submit(ctx, form, int64(editingID))
	switch {
	case errors.Is(err, recipe.ErrInvalidForm), errors.Is(err, recipe.ErrInvalidRecord):
		_ = apiError.EncodeError(w, apiError.UnprocessibleEntity, err.Error(), s.RequestID)
		return
	case err != nil && scope.Warning(err) == "":
		s.Env.Logger.ErrorContext(ctx, "failed to submit recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	write(w, r, s, SubmitRecipeResponse{Recipe: recipe.Normalize(stored), Warning: scope.Warning(err)})
}

// EditRecipe returns the form prefilled from a created recipe.
//
//	@Summary	Get the edit form of a created recipe.
//	@Tags		Recipes
//
//	@Param		id	path	int	true	"Recipe id"
//
//	@Success	200	{object}	FormResponse
//	@Failure	404	{object}	apiError.Error	"Recipe Not Found"
//	@Router		/api/recipes/{id}/form [GET]
func EditRecipe(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	id, err := scope.IDParam(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, detail.NotFoundMessage, s.RequestID)
		return
	}
	form, err := s.Authoring().Edit(ctx, id)
	if errors.Is(err, authoring.ErrNotFound) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, detail.NotFoundMessage, s.RequestID)
		return
	} else if err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to load created recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	write(w, r, s, FormResponse{ID: id, Form: form})
}

// DeleteRecipe removes a created recipe.
//
//	@Summary	Delete a created recipe.
//	@Tags		Recipes
//
//	@Param		id	path	int	true	"Recipe id"
//
//	@Success	200	{object}	DeleteRecipeResponse
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Router		/api/recipes/{id} [DELETE]
func DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	id, err := scope.IDParam(r, "id")
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), s.RequestID)
		return
	}
	c, err := s.Authoring().Delete(ctx, id)
	if err != nil && scope.Warning(err) == "" {
		s.Env.Logger.ErrorContext(ctx, "failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	if c == nil {
		c = collection.Collection{}
	}
	write(w, r, s, DeleteRecipeResponse{Recipes: c, Warning: scope.Warning(err)})
}
