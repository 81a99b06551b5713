// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"

	apiError "github.com/matt-dz/recipehub/internal/api/error"
	"github.com/matt-dz/recipehub/internal/api/requestid"
	"github.com/matt-dz/recipehub/internal/api/token"
	"github.com/matt-dz/recipehub/internal/env"
	"github.com/matt-dz/recipehub/internal/log"
)

const (
	RequestIDHeader = "X-Request-ID"
	// tabQueryParam carries the tab for clients that cannot set headers,
	// such as EventSource.
	tabQueryParam = "tab"
	maxTabLength  = 64
)

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.ExtractRequestID(r.Context()); id != "" {
				return []slog.Attr{slog.String("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context and the response.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := requestid.New()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.String("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

// AddCors adds the necessary CORS headers to the response.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")
		var hostOrigin string
		if e.Config != nil {
			hostOrigin = e.Config.Server.HostOrigin
		}

		// Determine allowed origin based on the incoming Origin header
		var allowedOrigin string
		if e.IsProd() {
			allowedOrigin = hostOrigin
		} else if origin != "" {
			// In dev mode, allow all origins
			allowedOrigin = origin
		}

		if allowedOrigin == "" && hostOrigin != "" {
			allowedOrigin = hostOrigin
		}

		if allowedOrigin == "" {
			e.Logger.WarnContext(r.Context(),
				"HOST_ORIGIN not set and no valid origin found; Access-Control-Allow-Origin will be empty")
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+token.TabHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentifyProfile resolves the profile a request acts for from its
// profile cookie. A request without a valid cookie starts a new profile,
// as a browser with empty storage would. The cookie is renewed on every
// response.
func IdentifyProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		e := env.EnvFromCtx(ctx)
		requestID := requestid.ExtractRequestID(ctx)

		var profileID string
		if cookie, err := r.Cookie(token.ProfileCookieName(e)); err == nil {
			profileID, err = token.ProfileFromToken(cookie.Value, e)
			if errors.Is(err, token.ErrMissingSecret) {
				e.Logger.ErrorContext(ctx, "app secret not configured")
				_ = apiError.EncodeInternalError(w, requestID)
				return
			} else if err != nil {
				e.Logger.WarnContext(ctx, "discarding invalid profile token", slog.Any("error", err))
				profileID = ""
			}
		}
		if profileID == "" {
			profileID = token.NewProfileID()
			e.Logger.InfoContext(ctx, "starting new profile", slog.String("profile", profileID))
		}

		raw, err := token.NewProfileToken(profileID, e)
		if err != nil {
			e.Logger.ErrorContext(ctx, "failed to sign profile token", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		http.SetCookie(w, token.NewProfileCookie(raw, e))

		tab := r.Header.Get(token.TabHeader)
		if tab == "" {
			tab = r.URL.Query().Get(tabQueryParam)
		}
		if len(tab) > maxTabLength {
			_ = apiError.EncodeError(w, apiError.BadRequest, "tab id too long", requestID)
			return
		}

		ctx = log.AppendCtx(ctx, slog.String("profile", profileID))
		if tab != "" {
			ctx = log.AppendCtx(ctx, slog.String("tab", tab))
		}
		ctx = token.ProfileWithCtx(ctx, profileID)
		ctx = token.TabWithCtx(ctx, tab)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
