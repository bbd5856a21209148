package backend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func testClient(url string) *Client {
	return NewClient(config.BackendConfig{URL: url, Timeout: 2 * time.Second}, testLogger)
}

func TestAskSendsContextAndReturnsAnswer(t *testing.T) {
	var received AskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(AskResponse{Answer: "the cheapest is the first one"})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	answer, err := c.Ask(context.Background(), AskRequest{
		Query:     "cheapest phone",
		Products:  []types.Product{{ID: 1, Name: "Budget phone with large battery life", Price: "₹8,999"}},
		PageURL:   "https://www.amazon.in/s?k=phones",
		PageTitle: "Amazon.in : phones",
		SiteType:  "ecommerce",
		PageType:  types.PageSearch,
		ItemCount: 1,
	})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "the cheapest is the first one" {
		t.Errorf("answer = %q", answer)
	}

	if received.Query != "cheapest phone" || received.SiteType != "ecommerce" || received.ItemCount != 1 {
		t.Errorf("payload mismatch: %+v", received)
	}
	if len(received.Products) != 1 || received.Products[0].Name == "" {
		t.Errorf("products not forwarded: %+v", received.Products)
	}
}

func TestAskServerErrorIsBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Ask(context.Background(), AskRequest{Query: "q"})
	if !errors.Is(err, types.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}

	var be *types.BackendError
	if !errors.As(err, &be) {
		t.Fatal("expected *types.BackendError")
	}
	if be.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", be.StatusCode)
	}
}

func TestAskUnreachableHostIsBackendUnavailable(t *testing.T) {
	c := testClient("http://127.0.0.1:1/chat")
	_, err := c.Ask(context.Background(), AskRequest{Query: "q"})
	if !errors.Is(err, types.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestAskMalformedResponseIsBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Ask(context.Background(), AskRequest{Query: "q"}); !errors.Is(err, types.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
