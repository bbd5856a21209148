package extract

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/arjunmehra/shopscout/internal/page"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const productHTML = `<!DOCTYPE html>
<html><head><title>x</title></head><body>
<div class="card">
    <h2>   Samsung Galaxy M14 5G
        (Stardust Silver, 128GB)   </h2>
    <span class="price">Price: ₹11,999 incl. taxes</span>
    <span class="rating">4.3 out of 5 stars</span>
    <img class="thumb" src="" data-src="https://cdn.example.com/m14.jpg" alt="">
</div>
<div class="sparse">
    <h3></h3>
    <img class="pic" src="https://cdn.example.com/alt.jpg" alt="Alt Label Product">
</div>
</body></html>`

func cardElement(t *testing.T, selector string) page.Element {
	t.Helper()
	p, err := page.NewStaticPage("https://shop.example.com/", strings.NewReader(productHTML), testLogger)
	if err != nil {
		t.Fatalf("NewStaticPage: %v", err)
	}
	els := p.Query(selector)
	if len(els) == 0 {
		t.Fatalf("no element for %q", selector)
	}
	return els[0]
}

func TestTextCollapsesWhitespace(t *testing.T) {
	e := New(testLogger)
	card := cardElement(t, ".card")

	got := e.Text(card, []string{"h2"}, MaxTitleLength)
	want := "Samsung Galaxy M14 5G (Stardust Silver, 128GB)"
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestTextSelectorFallbackOrder(t *testing.T) {
	e := New(testLogger)
	card := cardElement(t, ".card")

	// First selector matches nothing; second wins.
	got := e.Text(card, []string{".does-not-exist", "h2"}, MaxTitleLength)
	if !strings.HasPrefix(got, "Samsung") {
		t.Errorf("fallback selector not used, got %q", got)
	}
}

func TestTextAltAttributeFallback(t *testing.T) {
	e := New(testLogger)
	sparse := cardElement(t, ".sparse")

	// h3 is empty; the img selector's text is empty too but alt carries a label.
	got := e.Text(sparse, []string{"h3", "img.pic"}, MaxTitleLength)
	if got != "Alt Label Product" {
		t.Errorf("alt fallback = %q", got)
	}
}

func TestTextRejectsTooShort(t *testing.T) {
	e := New(testLogger)
	card := cardElement(t, ".card")

	// Nothing matched should return "".
	if got := e.Text(card, []string{".nope"}, MaxTitleLength); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestTextLengthWindowCountsRunes(t *testing.T) {
	// 139 runes but close to 400 bytes; a multi-byte title must not hit
	// the length cap early.
	title := strings.TrimSpace(strings.Repeat("सैमसंग ", 20))
	html := fmt.Sprintf(`<html><head><title>x</title></head><body>
	<div class="card"><h2>%s</h2></div></body></html>`, title)

	p, err := page.NewStaticPage("https://shop.example.com/", strings.NewReader(html), testLogger)
	if err != nil {
		t.Fatalf("NewStaticPage: %v", err)
	}

	e := New(testLogger)
	got := e.Text(p.Query(".card")[0], []string{"h2"}, MaxTitleLength)
	if got != title {
		t.Errorf("Text = %q (%d runes), want the full title", got, len([]rune(got)))
	}
}

func TestPriceNarrowsToCurrencyRun(t *testing.T) {
	e := New(testLogger)
	card := cardElement(t, ".card")

	got := e.Price(card, []string{".price"})
	if got != "₹11,999" {
		t.Errorf("Price = %q, want ₹11,999", got)
	}
}

func TestRatingNarrowsToDecimalRun(t *testing.T) {
	e := New(testLogger)
	card := cardElement(t, ".card")

	got := e.Rating(card, []string{".rating"})
	if got != "4.3" {
		t.Errorf("Rating = %q, want 4.3", got)
	}
}

func TestImagePrefersSrcThenDataSrc(t *testing.T) {
	e := New(testLogger)
	card := cardElement(t, ".card")

	// src is empty so data-src should be used.
	got := e.Image(card, []string{"img.thumb"})
	if got != "https://cdn.example.com/m14.jpg" {
		t.Errorf("Image = %q", got)
	}

	sparse := cardElement(t, ".sparse")
	if got := e.Image(sparse, []string{"img.pic"}); got != "https://cdn.example.com/alt.jpg" {
		t.Errorf("Image src = %q", got)
	}
}

func TestInvalidSelectorIsSilentlySkipped(t *testing.T) {
	e := New(testLogger)
	card := cardElement(t, ".card")

	// A malformed selector must not abort the list; the next one still runs.
	got := e.Text(card, []string{"h2[[[", "h2"}, MaxTitleLength)
	if !strings.HasPrefix(got, "Samsung") {
		t.Errorf("invalid selector aborted extraction, got %q", got)
	}
}

func BenchmarkTextExtraction(b *testing.B) {
	e := New(testLogger)
	p, err := page.NewStaticPage("https://shop.example.com/", strings.NewReader(productHTML), testLogger)
	if err != nil {
		b.Fatal(err)
	}
	card := p.Query(".card")[0]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Text(card, []string{".does-not-exist", "h2"}, MaxTitleLength)
	}
}
