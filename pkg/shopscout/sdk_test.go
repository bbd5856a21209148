package shopscout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/arjunmehra/shopscout/internal/backend"
	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/page"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const listingHTML = `<!DOCTYPE html>
<html><head><title>Amazon.in : speakers</title></head><body>
<div data-component-type="s-search-result">
    <h2><span>Portable bluetooth speaker with deep bass output</span></h2>
    <span class="a-price"><span class="a-offscreen">₹3,499</span></span>
    <i class="a-icon-star-small"><span class="a-icon-alt">4.2 out of 5 stars</span></i>
</div>
<div data-component-type="s-search-result">
    <h2><span>Wireless over-ear headphone with noise cancelling</span></h2>
    <span class="a-price"><span class="a-offscreen">₹7,999</span></span>
    <i class="a-icon-star-small"><span class="a-icon-alt">4.5 out of 5 stars</span></i>
</div>
</body></html>`

func testAssistant(backendURL string) *Assistant {
	cfg := config.DefaultConfig()
	cfg.Backend.URL = backendURL
	return NewWithConfig(cfg, testLogger)
}

func scrapedResult(t *testing.T, a *Assistant) *Result {
	t.Helper()
	p, err := page.NewStaticPage("https://www.amazon.in/s?k=speakers", strings.NewReader(listingHTML), testLogger)
	if err != nil {
		t.Fatalf("NewStaticPage: %v", err)
	}
	result := a.ScrapePage(p)
	if len(result.Items) != 2 {
		t.Fatalf("fixture should yield 2 products, got %d", len(result.Items))
	}
	return result
}

func TestAskConversationalQueriesSkipBackend(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(backend.AskResponse{Answer: "should not be used"})
	}))
	defer srv.Close()

	a := testAssistant(srv.URL)
	result := scrapedResult(t, a)

	answer, err := a.Ask(context.Background(), "hello", result)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(answer, "2") {
		t.Errorf("greeting should mention the product count, got %q", answer)
	}
	if calls.Load() != 0 {
		t.Errorf("greeting must not reach the backend, %d calls", calls.Load())
	}
}

func TestAskForwardsFilteredProducts(t *testing.T) {
	var received backend.AskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(backend.AskResponse{Answer: "the speaker"})
	}))
	defer srv.Close()

	a := testAssistant(srv.URL)
	result := scrapedResult(t, a)

	answer, err := a.Ask(context.Background(), "anything under 5000", result)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "the speaker" {
		t.Errorf("answer = %q", answer)
	}

	// Only the ₹3,499 speaker survives the price bound.
	if len(received.Products) != 1 {
		t.Fatalf("expected 1 filtered product, got %d", len(received.Products))
	}
	if !strings.Contains(received.Products[0].Name, "speaker") {
		t.Errorf("wrong product forwarded: %+v", received.Products[0])
	}
	// ItemCount reports the full page, not the filtered slice.
	if received.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", received.ItemCount)
	}
}

func TestAskCachesAnswers(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(backend.AskResponse{Answer: "cached answer"})
	}))
	defer srv.Close()

	a := testAssistant(srv.URL)
	result := scrapedResult(t, a)

	for i := 0; i < 3; i++ {
		answer, err := a.Ask(context.Background(), "which is best", result)
		if err != nil {
			t.Fatalf("Ask #%d: %v", i, err)
		}
		if answer != "cached answer" {
			t.Errorf("answer = %q", answer)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 backend call, got %d", calls.Load())
	}

	a.ClearCache()
	if _, err := a.Ask(context.Background(), "which is best", result); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("ClearCache should force a second backend call, got %d", calls.Load())
	}
}

func TestAskDegradesWhenBackendDown(t *testing.T) {
	a := testAssistant("http://127.0.0.1:1/chat")
	result := scrapedResult(t, a)

	answer, err := a.Ask(context.Background(), "what do prices look like", result)
	if err != nil {
		t.Fatalf("Ask should degrade, not fail: %v", err)
	}
	if !strings.Contains(answer, "2 matching products") {
		t.Errorf("expected a local summary, got %q", answer)
	}
}
