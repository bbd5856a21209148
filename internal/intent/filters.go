package intent

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arjunmehra/shopscout/internal/types"
	"github.com/arjunmehra/shopscout/internal/validate"
)

// maxExplicitLimit caps "top N" requests so a typo cannot ask for thousands.
const maxExplicitLimit = 20

var (
	underPattern   = regexp.MustCompile(`(?i)\b(?:under|below|less\s+than|within|upto|up\s+to|max)\s*(?:rs\.?|inr|₹|\$)?\s*([\d,]+)`)
	abovePattern   = regexp.MustCompile(`(?i)\b(?:above|over|more\s+than|at\s+least|min(?:imum)?)\s*(?:rs\.?|inr|₹|\$)?\s*([\d,]+)`)
	betweenPattern = regexp.MustCompile(`(?i)\bbetween\s*(?:rs\.?|inr|₹|\$)?\s*([\d,]+)\s*(?:and|to|-)\s*(?:rs\.?|inr|₹|\$)?\s*([\d,]+)`)
	topNPattern    = regexp.MustCompile(`(?i)\b(?:top|first|best)\s+(\d+)\b`)
)

// Filters are the constraints parsed out of a query.
type Filters struct {
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string // "price" or "rating"
	Ascending bool
	Limit     int // 0 means no explicit limit
}

// Empty reports whether no constraint was parsed.
func (f Filters) Empty() bool {
	return f.MinPrice == nil && f.MaxPrice == nil && f.SortBy == "" && f.Limit == 0
}

// ParseFilters pulls price bounds, sort preferences and an explicit result
// limit out of a free-form query. "between X and Y" wins over lone
// under/above phrasings when both would match.
func ParseFilters(query string) Filters {
	q := strings.ToLower(query)
	var f Filters

	if m := betweenPattern.FindStringSubmatch(q); m != nil {
		lo, hi := parseAmount(m[1]), parseAmount(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		f.MinPrice, f.MaxPrice = &lo, &hi
	} else {
		if m := underPattern.FindStringSubmatch(q); m != nil {
			v := parseAmount(m[1])
			f.MaxPrice = &v
		}
		if m := abovePattern.FindStringSubmatch(q); m != nil {
			v := parseAmount(m[1])
			f.MinPrice = &v
		}
	}

	switch {
	case containsAny(q, "cheapest", "cheap", "lowest price", "low price", "affordable", "budget"):
		f.SortBy, f.Ascending = "price", true
	case containsAny(q, "most expensive", "expensive", "highest price", "premium"):
		f.SortBy, f.Ascending = "price", false
	case containsAny(q, "best rated", "highest rated", "top rated", "best rating", "best"):
		f.SortBy, f.Ascending = "rating", false
	}

	if m := topNPattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			if n > maxExplicitLimit {
				n = maxExplicitLimit
			}
			f.Limit = n
		}
	}

	return f
}

// ApplyFilters returns the products satisfying the constraints, sorted and
// truncated as requested. Products without a parseable price are kept when
// no price bound is set and dropped when one is; unrated products sort
// last under rating order.
func ApplyFilters(products []types.Product, f Filters) []types.Product {
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		price, ok := validate.ParsePrice(p.Price)
		if f.MinPrice != nil && (!ok || price < *f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && (!ok || price > *f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	switch f.SortBy {
	case "price":
		sort.SliceStable(out, func(i, j int) bool {
			pi, iok := validate.ParsePrice(out[i].Price)
			pj, jok := validate.ParsePrice(out[j].Price)
			if iok != jok {
				return iok
			}
			if f.Ascending {
				return pi < pj
			}
			return pi > pj
		})
	case "rating":
		sort.SliceStable(out, func(i, j int) bool {
			ri, iok := validate.ParseRating(out[i].Rating)
			rj, jok := validate.ParseRating(out[j].Rating)
			if iok != jok {
				return iok
			}
			return ri > rj
		})
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Analysis summarizes the price and rating spread of a product list.
type Analysis struct {
	Count     int
	Priced    int
	Rated     int
	MinPrice  float64
	MaxPrice  float64
	AvgPrice  float64
	AvgRating float64
	Cheapest  string
	Priciest  string
}

// Analyze computes summary statistics over a product list. Products
// without a parseable price or rating are skipped from the respective
// aggregates.
func Analyze(products []types.Product) Analysis {
	a := Analysis{Count: len(products)}
	var priceSum, ratingSum float64

	for _, p := range products {
		if price, ok := validate.ParsePrice(p.Price); ok {
			if a.Priced == 0 || price < a.MinPrice {
				a.MinPrice = price
				a.Cheapest = p.Name
			}
			if a.Priced == 0 || price > a.MaxPrice {
				a.MaxPrice = price
				a.Priciest = p.Name
			}
			priceSum += price
			a.Priced++
		}
		if rating, ok := validate.ParseRating(p.Rating); ok && rating >= 1 && rating <= 5 {
			ratingSum += rating
			a.Rated++
		}
	}

	if a.Priced > 0 {
		a.AvgPrice = priceSum / float64(a.Priced)
	}
	if a.Rated > 0 {
		a.AvgRating = ratingSum / float64(a.Rated)
	}
	return a
}

func parseAmount(s string) float64 {
	n, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return n
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
