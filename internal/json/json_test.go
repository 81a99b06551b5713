package json

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		trailing bool
	}{
		{name: "single object", body: `{"id": 1}`},
		{name: "trailing whitespace", body: "{\"id\": 1}\n  "},
		{name: "trailing object", body: `{"id": 1}{"id": 2}`, wantErr: true, trailing: true},
		{name: "malformed", body: `{"id":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				ID int `json:"id"`
			}
			err := Decode(strings.NewReader(tt.body), &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.trailing && !errors.Is(err, ErrTrailingData) {
				t.Errorf("expected ErrTrailingData, got %v", err)
			}
			if !tt.wantErr && dst.ID != 1 {
				t.Errorf("expected id 1, got %d", dst.ID)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := Write(rec, http.StatusCreated, map[string]int{"id": 7}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"id":7}` {
		t.Errorf("body = %q", got)
	}
}
