package spoonacular

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	mHttp "github.com/matt-dz/recipehub/internal/http"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		HTTP:    mHttp.New(mHttp.Config{RetryMax: 0}),
	})
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes/complexSearch" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		q := r.URL.Query()
		if q.Get("query") != "soup" || q.Get("offset") != "12" || q.Get("number") != "12" || q.Get("type") != "dessert" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"id":11,"title":"Pea Soup","image":"https://img.example/11.jpg","readyInMinutes":30,"dishTypes":["soup","lunch"]},
			{"id":12,"title":"Miso Soup","analyzedInstructions":[{"steps":[{"number":1,"step":"Heat"}]},{"steps":[{"number":1,"step":"Serve"}]}]}
		],"offset":12,"number":12,"totalResults":40}`))
	})

	got, err := client.Search(context.Background(), SearchParams{Query: "soup", Offset: 12, Type: "dessert"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got.TotalResults != 40 || len(got.Results) != 2 {
		t.Fatalf("Search() = %+v", got)
	}
	pea := got.Results[0]
	if pea.ID != 11 || pea.ReadyInMinutes != 30 || !slices.Equal(pea.DishTypes, []string{"soup", "lunch"}) {
		t.Errorf("first result = %+v", pea)
	}
	if pea.Source != "external" {
		t.Errorf("source = %q", pea.Source)
	}
	miso := got.Results[1]
	if len(miso.Steps) != 2 || miso.Steps[1].Number != 2 || miso.Steps[1].Step != "Serve" {
		t.Errorf("steps not renumbered across sets: %+v", miso.Steps)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    error
		wantStatus int
	}{
		{name: "quota", status: http.StatusPaymentRequired, body: `{"message":"daily points limit"}`, wantErr: ErrQuotaExceeded, wantStatus: 402},
		{name: "server error", status: http.StatusBadGateway, wantErr: ErrRequestFailed, wantStatus: 502},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrRequestFailed, wantStatus: 401},
		{name: "missing envelope", status: http.StatusOK, body: `{"status":"ok"}`, wantErr: ErrMalformedResponse},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantErr: ErrMalformedResponse},
		{name: "trailing data", status: http.StatusOK, body: `{"recipes":[]} {}`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.Random(context.Background(), 12)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Random() error = %v, want %v", err, tt.wantErr)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.Op != "random" || apiErr.Status != tt.wantStatus {
				t.Errorf("Error = %+v", apiErr)
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := New(Config{BaseURL: server.URL, HTTP: mHttp.New(mHttp.Config{RetryMax: 0})})

	if _, err := client.Random(context.Background(), 1); !errors.Is(err, ErrRequestFailed) {
		t.Errorf("Random() error = %v, want ErrRequestFailed", err)
	}
}

func TestGetByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/7/information":
			_, _ = w.Write([]byte(`{"id":7,"title":"Ramen","servings":2,
				"extendedIngredients":[{"id":1,"name":"noodles","original":"200g noodles","amount":200,"unit":"g"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	got, err := client.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Ramen" || len(got.ExtendedIngredients) != 1 || got.ExtendedIngredients[0].Original != "200g noodles" {
		t.Errorf("GetByID() = %+v", got)
	}

	if _, err := client.GetByID(context.Background(), 8); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGetInstructions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"","steps":[{"number":1,"step":"Boil water"},{"number":2,"step":"Add noodles"}]}]`))
	})
	got, err := client.GetInstructions(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetInstructions() error = %v", err)
	}
	if len(got) != 2 || got[1].String() != "2: Add noodles" {
		t.Errorf("GetInstructions() = %v", got)
	}
}

func TestSearchByIngredients(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ingredients"); got != "egg,flour" {
			t.Errorf("ingredients = %q", got)
		}
		_, _ = w.Write([]byte(`[{"id":3,"title":"Crepes","image":"https://img.example/3.jpg"}]`))
	})
	got, err := client.SearchByIngredients(context.Background(), []string{"egg", "flour"})
	if err != nil {
		t.Fatalf("SearchByIngredients() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Crepes" {
		t.Errorf("SearchByIngredients() = %+v", got)
	}
}

func TestSuggest(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("number"); got != "5" {
			t.Errorf("number = %q, want 5", got)
		}
		_, _ = w.Write([]byte(`[{"id":1,"title":"chicken soup"},{"id":2,"title":"chicken curry"},
			{"id":3,"title":"a"},{"id":4,"title":"b"},{"id":5,"title":"c"},{"id":6,"title":"d"}]`))
	})

	got, err := client.Suggest(context.Background(), "ch")
	if err != nil || len(got) != 0 {
		t.Fatalf("Suggest(short) = %v, %v", got, err)
	}
	if calls != 0 {
		t.Errorf("short prefix reached the API")
	}

	got, err = client.Suggest(context.Background(), "chi")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != SuggestionCount || got[0].Title != "chicken soup" {
		t.Errorf("Suggest() = %+v", got)
	}
}
