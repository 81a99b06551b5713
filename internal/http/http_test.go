package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestExpectStatus2xx(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode int
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content", status: http.StatusNoContent},
		{name: "payment required", status: http.StatusPaymentRequired, wantCode: http.StatusPaymentRequired},
		{name: "server error", status: http.StatusInternalServerError, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.status,
				Body:       io.NopCloser(strings.NewReader("daily points limit")),
			}
			err := ExpectStatus2xx(resp)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != tt.wantCode {
				t.Errorf("status = %d, want %d", statusErr.StatusCode, tt.wantCode)
			}
			if statusErr.Body != "daily points limit" {
				t.Errorf("body = %q", statusErr.Body)
			}
		})
	}
}

func TestNew(t *testing.T) {
	client := New(Config{RetryMax: 1})
	if client.RetryMax != 1 {
		t.Errorf("RetryMax = %d, want 1", client.RetryMax)
	}
}
