// Package jwt provides functions for generating and validating the
// profile tokens that identify a browser profile.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// ProfileDuration is how long a profile token stays valid. The
	// middleware renews it on use, so an active profile never expires.
	ProfileDuration = 365 * 24 * time.Hour
	issuer          = "recipehub"
)

var ErrMissingSubject = errors.New("token has no subject")

func GenerateProfileToken(profileID string, secret []byte, version string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   profileID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ProfileDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = version

	signedKey, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signedKey, nil
}

// ValidateProfileToken verifies rawToken and returns the profile id.
func ValidateProfileToken(rawToken, version string, secret []byte) (string, error) {
	parserFunc := func(token *jwt.Token) (any, error) {
		kidVal, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing/invalid kid value")
		}

		if kidVal != version {
			return nil, fmt.Errorf("verifying KID value, value=%q", kidVal)
		}

		return secret, nil
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(rawToken, &claims, parserFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}
