// Package intent classifies user queries with ordered keyword rules and
// answers the conversational ones locally, so only product questions reach
// the answer backend.
package intent

import (
	"fmt"
	"strings"
)

// Intent labels what a query is asking for.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentThanks        Intent = "thanks"
	IntentGoodbye       Intent = "goodbye"
	IntentHelp          Intent = "help"
	IntentIdentity      Intent = "identity"
	IntentPriceQuery    Intent = "price_query"
	IntentCompareQuery  Intent = "compare_query"
	IntentRecommend     Intent = "recommend"
	IntentProductSearch Intent = "product_search"
	IntentGeneral       Intent = "general"
)

type rule struct {
	intent   Intent
	keywords []string
}

// phrases maps whole queries to greeting/thanks/goodbye intents. These
// match only by exact equality after normalization, so a greeting prefix on
// a real product question ("hi, what is the cheapest phone under 20000")
// never swallows it.
var phrases = map[string]Intent{
	"hello":        IntentGreeting,
	"hello there":  IntentGreeting,
	"hi":           IntentGreeting,
	"hi there":     IntentGreeting,
	"hey":          IntentGreeting,
	"hey there":    IntentGreeting,
	"good morning": IntentGreeting,
	"good evening": IntentGreeting,
	"namaste":      IntentGreeting,

	"thanks":              IntentThanks,
	"thank you":           IntentThanks,
	"thx":                 IntentThanks,
	"thanks a lot":        IntentThanks,
	"thank you so much":   IntentThanks,
	"thanks for the help": IntentThanks,

	"bye":           IntentGoodbye,
	"bye bye":       IntentGoodbye,
	"goodbye":       IntentGoodbye,
	"see you":       IntentGoodbye,
	"see you later": IntentGoodbye,
}

// rules run in order; the first rule with a keyword hit wins. Product-signal
// rules come before help/identity so "help me find a phone under 20000"
// still reaches the filter path.
var rules = []rule{
	{IntentCompareQuery, []string{"compare", "difference", "vs", "versus", "better"}},
	{IntentPriceQuery, []string{"price", "cost", "cheap", "expensive", "under", "above", "budget", "afford"}},
	{IntentRecommend, []string{"recommend", "suggest", "best", "top", "should i", "worth"}},
	{IntentProductSearch, []string{"find", "show", "search", "looking for", "want", "need"}},
	{IntentHelp, []string{"help", "how do i", "how to use", "what can you"}},
	{IntentIdentity, []string{"who are you", "what are you", "your name"}},
}

// conversational intents are fully answerable without page data.
var conversational = map[Intent]bool{
	IntentGreeting: true,
	IntentThanks:   true,
	IntentGoodbye:  true,
	IntentHelp:     true,
	IntentIdentity: true,
}

// Classify labels a query. Conversational phrases match the whole query
// only; everything else goes through the keyword rules in order. Queries
// that hit nothing are general.
func Classify(query string) Intent {
	q := normalize(query)
	if q == "" {
		return IntentGeneral
	}
	if in, ok := phrases[q]; ok {
		return in
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if matchKeyword(q, kw) {
				return r.intent
			}
		}
	}
	return IntentGeneral
}

// normalize lowercases, trims and drops trailing punctuation so "Hi!"
// still matches the greeting phrase.
func normalize(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.TrimRight(q, " \t!?.,")
}

// Conversational reports whether an intent can be answered locally.
func Conversational(i Intent) bool {
	return conversational[i]
}

// LocalReply returns the canned response for a conversational intent, or
// "" when the intent needs real page data.
func LocalReply(i Intent, itemCount int) string {
	switch i {
	case IntentGreeting:
		if itemCount > 0 {
			return fmt.Sprintf("Hi there! I can see %d products on this page. Ask me anything about them.", itemCount)
		}
		return "Hi there! Open a product listing and I can help you compare and pick."
	case IntentThanks:
		return "You're welcome! Happy to help with anything else on this page."
	case IntentGoodbye:
		return "Goodbye! Come back when you need help picking a product."
	case IntentHelp:
		return "Ask me things like \"cheapest phone under 20000\", \"compare the top 3\", or \"which has the best rating\"."
	case IntentIdentity:
		return "I'm ShopScout, a shopping assistant that reads the product listing you're viewing and answers questions about it."
	default:
		return ""
	}
}

// matchKeyword requires single-word keywords to appear as standalone tokens
// so "vs" does not fire inside "oversized". Multi-word keywords use plain
// substring containment.
func matchKeyword(q, kw string) bool {
	if strings.ContainsRune(kw, ' ') {
		return strings.Contains(q, kw)
	}
	for _, tok := range strings.FieldsFunc(q, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if tok == kw {
			return true
		}
	}
	return false
}
