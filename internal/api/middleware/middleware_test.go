package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matt-dz/recipehub/internal/api/requestid"
	"github.com/matt-dz/recipehub/internal/api/token"
	"github.com/matt-dz/recipehub/internal/config"
	"github.com/matt-dz/recipehub/internal/env"
)

func testEnv(mode string) *env.Env {
	e := env.Null()
	secret := config.AppSecretValue("test-secret-that-is-at-least-32-bytes-long")
	e.Config = &config.Config{Env: mode, Server: config.Server{HostOrigin: "https://recipes.example.com"}}
	e.Config.AppSecret.Value = &secret
	e.Config.AppSecret.Version = "1"
	return e
}

type seen struct {
	profile string
	tab     string
}

func identify(e *env.Env, r *http.Request) (*httptest.ResponseRecorder, seen) {
	var got seen
	h := InjectEnv(e)(IdentifyProfile(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.profile, _ = token.ProfileFromCtx(r.Context())
		got.tab = token.TabFromCtx(r.Context())
	})))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w, got
}

func profileCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "profile" {
			return c
		}
	}
	t.Fatal("no profile cookie set")
	return nil
}

func TestIdentifyProfile(t *testing.T) {
	e := testEnv(config.EnvDev)

	// first visit starts a profile
	w, first := identify(e, httptest.NewRequest(http.MethodGet, "/api/collections/favorites", nil))
	if err := token.ParseProfileID(first.profile); err != nil {
		t.Fatalf("new profile %q: %v", first.profile, err)
	}
	cookie := profileCookie(t, w)

	// the cookie brings the same profile back, tab from the header
	r := httptest.NewRequest(http.MethodGet, "/api/collections/favorites", nil)
	r.AddCookie(cookie)
	r.Header.Set(token.TabHeader, "tab-a")
	_, second := identify(e, r)
	if second.profile != first.profile {
		t.Errorf("profile = %q, want %q", second.profile, first.profile)
	}
	if second.tab != "tab-a" {
		t.Errorf("tab = %q, want tab-a", second.tab)
	}

	// EventSource passes the tab in the query
	r = httptest.NewRequest(http.MethodGet, "/api/events?tab=tab-b", nil)
	r.AddCookie(cookie)
	if _, got := identify(e, r); got.tab != "tab-b" {
		t.Errorf("tab = %q, want tab-b", got.tab)
	}
}

func TestIdentifyProfile_InvalidCookieStartsOver(t *testing.T) {
	e := testEnv(config.EnvDev)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "profile", Value: "forged"})

	w, got := identify(e, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if err := token.ParseProfileID(got.profile); err != nil {
		t.Errorf("profile %q: %v", got.profile, err)
	}
	if profileCookie(t, w).Value == "forged" {
		t.Error("forged cookie was kept")
	}
}

func TestIdentifyProfile_MissingSecret(t *testing.T) {
	w, got := identify(env.Null(), httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if got.profile != "" {
		t.Error("handler ran without a profile")
	}
}

func TestAddCors(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{name: "dev echoes origin", mode: config.EnvDev, method: http.MethodGet, origin: "http://localhost:5173", wantOrigin: "http://localhost:5173", wantStatus: http.StatusOK},
		{name: "prod pins host origin", mode: config.EnvProd, method: http.MethodGet, origin: "https://evil.example.com", wantOrigin: "https://recipes.example.com", wantStatus: http.StatusOK},
		{name: "preflight", mode: config.EnvDev, method: http.MethodOptions, origin: "http://localhost:5173", wantOrigin: "http://localhost:5173", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := InjectEnv(testEnv(tt.mode))(AddCors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
			r := httptest.NewRequest(tt.method, "/api/ping", nil)
			r.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestAddRequestID(t *testing.T) {
	var inCtx string
	h := AddRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inCtx = requestid.ExtractRequestID(r.Context())
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if inCtx == "" || w.Header().Get(RequestIDHeader) != inCtx {
		t.Errorf("context id %q, header %q", inCtx, w.Header().Get(RequestIDHeader))
	}
}
