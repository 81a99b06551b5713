package jwt

import (
	"testing"
	"time"
)

var secret = []byte("this-is-a-very-long-secret-key-with-more-than-32-bytes")

func TestProfileTokenRoundTrip(t *testing.T) {
	token, err := GenerateProfileToken("0b6a4b53-4a52-4c52-9f0e-3a4d3b0b2f11", secret, "1", time.Now())
	if err != nil {
		t.Fatalf("GenerateProfileToken() error = %v", err)
	}
	got, err := ValidateProfileToken(token, "1", secret)
	if err != nil {
		t.Fatalf("ValidateProfileToken() error = %v", err)
	}
	if got != "0b6a4b53-4a52-4c52-9f0e-3a4d3b0b2f11" {
		t.Errorf("profile = %q", got)
	}
}

func TestValidateProfileToken_Rejects(t *testing.T) {
	valid, err := GenerateProfileToken("p1", secret, "1", time.Now())
	if err != nil {
		t.Fatalf("GenerateProfileToken() error = %v", err)
	}
	expired, err := GenerateProfileToken("p1", secret, "1", time.Now().Add(-2*ProfileDuration))
	if err != nil {
		t.Fatalf("GenerateProfileToken() error = %v", err)
	}
	noSubject, err := GenerateProfileToken("", secret, "1", time.Now())
	if err != nil {
		t.Fatalf("GenerateProfileToken() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		version string
		secret  []byte
	}{
		{name: "wrong version", token: valid, version: "2", secret: secret},
		{name: "wrong secret", token: valid, version: "1", secret: []byte("another-secret-that-is-at-least-32-bytes")},
		{name: "expired", token: expired, version: "1", secret: secret},
		{name: "garbage", token: "not.a.token", version: "1", secret: secret},
		{name: "no subject", token: noSubject, version: "1", secret: secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateProfileToken(tt.token, tt.version, tt.secret); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
