// Package token contains utilities for the profile cookie that stands in
// for a browser profile.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/matt-dz/recipehub/internal/env"
	"github.com/matt-dz/recipehub/internal/jwt"
)

// TabHeader names the tab a request comes from.
const TabHeader = "X-Tab-ID"

var (
	ErrMissingSecret  = errors.New("app secret not configured")
	ErrNoProfile      = errors.New("no profile in context")
	ErrInvalidProfile = errors.New("invalid profile id")
)

type profileKeyType struct{}
type tabKeyType struct{}

var (
	profileKey profileKeyType
	tabKey     tabKeyType
)

func ProfileCookieName(env *env.Env) string {
	if env.IsProd() {
		return "__Host-Http-profile"
	}
	return "profile"
}

// NewProfileID returns a random profile id.
func NewProfileID() string {
	return uuid.NewString()
}

// ParseProfileID checks that id is a profile id.
func ParseProfileID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}

func secretOf(env *env.Env) ([]byte, string, error) {
	if env.Config == nil || env.Config.AppSecret.Value == nil {
		return nil, "", ErrMissingSecret
	}
	return []byte(*env.Config.AppSecret.Value), env.Config.AppSecret.Version, nil
}

// NewProfileToken signs a token naming profileID.
func NewProfileToken(profileID string, env *env.Env) (string, error) {
	secret, version, err := secretOf(env)
	if err != nil {
		return "", err
	}
	t, err := jwt.GenerateProfileToken(profileID, secret, version, env.Now())
	if err != nil {
		return "", fmt.Errorf("generating profile token: %w", err)
	}
	return t, nil
}

// ProfileFromToken validates raw and returns the profile it names.
func ProfileFromToken(raw string, env *env.Env) (string, error) {
	secret, version, err := secretOf(env)
	if err != nil {
		return "", err
	}
	profileID, err := jwt.ValidateProfileToken(raw, version, secret)
	if err != nil {
		return "", err
	}
	if err := ParseProfileID(profileID); err != nil {
		return "", err
	}
	return profileID, nil
}

func NewProfileCookie(token string, env *env.Env) *http.Cookie {
	cookie := &http.Cookie{
		Name:     ProfileCookieName(env),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(jwt.ProfileDuration / time.Second),
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}

	if env.IsProd() {
		cookie.Secure = true
	}

	return cookie
}

func ProfileWithCtx(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileKey, profileID)
}

func ProfileFromCtx(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(profileKey).(string); ok && v != "" {
		return v, nil
	}
	return "", ErrNoProfile
}

func TabWithCtx(ctx context.Context, tab string) context.Context {
	return context.WithValue(ctx, tabKey, tab)
}

// TabFromCtx returns the originating tab, or "" when the request did not
// name one.
func TabFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(tabKey).(string)
	return v
}
