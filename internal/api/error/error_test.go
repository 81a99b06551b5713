package error

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEncodeError(t *testing.T) {
	tests := []struct {
		code       ErrorCode
		wantStatus int
	}{
		{code: RecipeNotFound, wantStatus: http.StatusNotFound},
		{code: QuotaExceeded, wantStatus: http.StatusTooManyRequests},
		{code: UpstreamFailed, wantStatus: http.StatusBadGateway},
		{code: UnknownError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := EncodeError(w, tt.code, "boom", "01J"); err != nil {
				t.Fatalf("EncodeError() error = %v", err)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body Error
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if body.Code != tt.code || body.Message != "boom" || body.ErrorID != "01J" || body.Status != tt.wantStatus {
				t.Errorf("body = %+v", body)
			}
		})
	}
}
