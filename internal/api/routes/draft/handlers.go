// Package draft contains handlers for the in-progress recipe form.
package draft

import (
	"log/slog"
	"net/http"

	apiError "github.com/matt-dz/recipehub/internal/api/error"
	"github.com/matt-dz/recipehub/internal/api/requestid"
	"github.com/matt-dz/recipehub/internal/api/scope"
	"github.com/matt-dz/recipehub/internal/env"
	mJson "github.com/matt-dz/recipehub/internal/json"
	"github.com/matt-dz/recipehub/internal/recipe"
)

type DraftResponse struct {
	// Form is null when there is no fresh draft.
	Form *recipe.Form `json:"form"`
}

type SaveDraftResponse struct {
	Saved   bool   `json:"saved"`
	Warning string `json:"warning,omitempty"`
}

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

// GetDraft returns the saved form when it is still fresh. Stale drafts are
// discarded.
//
//	@Summary	Get the saved draft.
//	@Tags		Draft
//
//	@Success	200	{object}	DraftResponse
//	@Router		/api/draft [GET]
func GetDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	form, found, err := s.Authoring().Resume(ctx)
	if err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to load draft", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	var resp DraftResponse
	if found {
		resp.Form = &form
	}
	if err := mJson.Write(w, http.StatusOK, resp); err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// SaveDraft keeps the posted form for later. An empty form clears the
// draft instead.
//
//	@Summary	Save the draft.
//	@Tags		Draft
//
//	@Accept		json
//	@Param		request	body	recipe.Form	true	"Form in progress"
//
//	@Success	200	{object}	SaveDraftResponse
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Router		/api/draft [PUT]
func SaveDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var form recipe.Form
	if err := scope.DecodeBody(w, r, &form); err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to decode body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe form", s.RequestID)
		return
	}

	saved, err := s.Authoring().Leave(ctx, form, true)
	if err != nil && scope.Warning(err) == "" {
		s.Env.Logger.ErrorContext(ctx, "failed to save draft", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	if err := mJson.Write(w, http.StatusOK, SaveDraftResponse{Saved: saved, Warning: scope.Warning(err)}); err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// DeleteDraft discards the draft.
//
//	@Summary	Discard the draft.
//	@Tags		Draft
//
//	@Success	204
//	@Router		/api/draft [DELETE]
func DeleteDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := fromRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if _, err := s.Authoring().Leave(ctx, recipe.Form{}, false); err != nil {
		s.Env.Logger.ErrorContext(ctx, "failed to clear draft", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, s.RequestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
