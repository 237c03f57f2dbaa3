package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClientGetByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Fatalf("missing api key in %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("append_to_response") != "credits" {
			t.Fatalf("expected credits appended, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
            "id": 42,
            "title": "The Answer",
            "poster_path": "/answer.jpg",
            "runtime": 101,
            "credits": {"cast": [{"name": "Some Actor", "character": "Lead"}]}
        }`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", time.Second)

	details, err := client.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if details.Title != "The Answer" || details.PosterPath != "/answer.jpg" {
		t.Fatalf("unexpected details: %+v", details)
	}
	if len(details.Credits.Cast) != 1 || details.Credits.Cast[0].Name != "Some Actor" {
		t.Fatalf("unexpected credits: %+v", details.Credits)
	}
}

func TestHTTPClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "blade runner" {
			t.Fatalf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [
            {"id": 78, "title": "Blade Runner", "poster_path": "/br.jpg"},
            {"id": 335984, "title": "Blade Runner 2049", "poster_path": "/br2049.jpg"}
        ]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", time.Second)

	movies, err := client.Search(context.Background(), "blade runner")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(movies) != 2 || movies[0].ID != 78 {
		t.Fatalf("unexpected results: %+v", movies)
	}
}

func TestHTTPClientErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"notFound", http.StatusNotFound, ErrNotFound},
		{"serverError", http.StatusInternalServerError, ErrUnavailable},
		{"unauthorized", http.StatusUnauthorized, ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := NewHTTPClient(srv.URL, "test-key", time.Second)
			if _, err := client.GetByID(context.Background(), 1); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v got %v", tc.wantErr, err)
			}
		})
	}
}

func TestHTTPClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", time.Second)
	if _, err := client.Trending(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected unavailable got %v", err)
	}
}
