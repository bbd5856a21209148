// Package validate filters extracted candidates down to real products and
// scores how product-like each one is. Validation answers "is this a
// product at all"; scoring ranks the survivors.
package validate

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/types"
)

// Result reports a validation outcome with the first failing rule's reason.
type Result struct {
	Valid  bool
	Reason string
}

var (
	alphaPattern = regexp.MustCompile(`[a-zA-Z]`)

	// pricePattern accepts an optional currency symbol then digits with
	// optional separators and decimals. Anchored so junk like "4 items"
	// does not pass as a price.
	pricePattern = regexp.MustCompile(`^[₹$€£¥]?\s?\d[\d,]*(?:\.\d+)?$`)

	currencyPattern = regexp.MustCompile(`[₹$€£¥]|Rs\.?|INR|USD|EUR|GBP`)

	ratingPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

	nonNumeric = regexp.MustCompile(`[^\d.]`)

	// unitPattern matches quantity or capacity runs such as "128GB",
	// "1.5 kg" or "250ml".
	unitPattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s?(gb|tb|mb|kg|g|mg|ml|l|litre|liter|cm|mm|inch|in|w|mah|pack|pcs|piece)s?\b`)
)

// brands are well-known makers worth a score boost when they lead a name.
var brands = []string{
	"apple", "samsung", "sony", "lg", "oneplus", "xiaomi", "redmi", "realme",
	"oppo", "vivo", "motorola", "nokia", "google", "dell", "hp", "lenovo",
	"asus", "acer", "msi", "boat", "jbl", "bose", "philips", "panasonic",
	"whirlpool", "bosch", "nike", "adidas", "puma", "levis", "titan",
	"fossil", "casio", "canon", "nikon",
}

// categoryKeywords are product-class words that signal a real listing.
var categoryKeywords = []string{
	"phone", "smartphone", "mobile", "laptop", "tablet", "monitor", "tv",
	"television", "headphone", "earphone", "earbud", "speaker", "watch",
	"smartwatch", "camera", "keyboard", "mouse", "charger", "cable",
	"router", "printer", "fridge", "refrigerator", "washing machine",
	"microwave", "shoe", "sneaker", "shirt", "jeans", "jacket", "bag",
	"backpack", "book", "novel", "5g", "4g", "wireless", "bluetooth",
}

// Validator applies the acceptance rules from its configuration.
type Validator struct {
	cfg    config.ValidatorConfig
	logger *slog.Logger
}

// New creates a Validator.
func New(cfg config.ValidatorConfig, logger *slog.Logger) *Validator {
	return &Validator{
		cfg:    cfg,
		logger: logger.With("component", "validator"),
	}
}

// Validate runs the acceptance rules in order and returns the first failure.
// The blacklist runs before the length window so boilerplate is reported as
// boilerplate regardless of how long it happens to be.
func (v *Validator) Validate(c types.Candidate) Result {
	name := strings.TrimSpace(c.Name)

	if name == "" {
		return Result{Reason: "Empty name"}
	}
	if Blacklisted(name) {
		return Result{Reason: "Blacklisted"}
	}
	if promoPrefix.MatchString(name) {
		return Result{Reason: "Promotional prefix"}
	}
	if n := len([]rune(name)); n < v.cfg.MinTitleLength || n > v.cfg.MaxTitleLength {
		return Result{Reason: "Name length out of range"}
	}
	if !alphaPattern.MatchString(name) {
		return Result{Reason: "No alphabetic characters"}
	}
	if countWords(name) < 3 {
		return Result{Reason: "Too few words"}
	}

	price, priceOK := ParsePrice(c.Price)
	_, ratingOK := ParseRating(c.Rating)
	if !priceOK && !ratingOK {
		return Result{Reason: "No price or rating signal"}
	}
	if priceOK && price < v.cfg.MinPrice {
		return Result{Reason: "Price below minimum"}
	}

	return Result{Valid: true}
}

// Score rates how product-like a candidate is. Higher is better; the
// orchestrator drops anything under its minimum-score threshold.
func Score(c types.Candidate) int {
	score := 0
	name := strings.ToLower(c.Name)

	if _, ok := ParsePrice(c.Price); ok {
		score += 40
	}
	if currencyPattern.MatchString(c.Price) {
		score += 10
	}
	if r, ok := ParseRating(c.Rating); ok && r >= 1 && r <= 5 {
		score += 30
	}
	if len(c.Image) > 20 {
		score += 10
	}
	if len([]rune(c.Name)) > 40 {
		score += 10
	}
	for _, b := range brands {
		if containsToken(name, b) {
			score += 25
			break
		}
	}
	for _, kw := range categoryKeywords {
		if strings.Contains(name, kw) {
			score += 20
			break
		}
	}
	if unitPattern.MatchString(c.Name) {
		score += 15
	}
	return score
}

// ParsePrice extracts a numeric price from a raw price string. Currency
// symbols and thousands separators are stripped before parsing. The second
// return is false when the string holds no usable price.
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || !pricePattern.MatchString(s) {
		return 0, false
	}
	return parseNumber(s)
}

// ParseRating extracts the first decimal number from a raw rating string,
// covering both bare values ("4.3") and phrasings like "4.3 out of 5
// stars". The second return is false when no number is present.
func ParseRating(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	run := ratingPattern.FindString(s)
	if run == "" {
		return 0, false
	}
	return parseNumber(run)
}

func parseNumber(s string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// countWords counts whitespace-separated tokens longer than one character.
func countWords(s string) int {
	n := 0
	for _, f := range strings.Fields(s) {
		if len([]rune(f)) > 1 {
			n++
		}
	}
	return n
}

// containsToken reports whether word appears in s as a standalone token,
// not as a substring of a longer word.
func containsToken(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		leftOK := start == 0 || !isWordChar(s[start-1])
		rightOK := end == len(s) || !isWordChar(s[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
