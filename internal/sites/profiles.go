package sites

import (
	"regexp"

	"github.com/arjunmehra/shopscout/internal/types"
)

// asinPattern matches Amazon product-detail URLs and captures the ASIN.
var asinPattern = regexp.MustCompile(`/dp/([A-Z0-9]{10})`)

// builtinProfiles returns the recognized-site configuration tables.
func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Key:      "amazon",
			Name:     "Amazon",
			Category: "ecommerce",
			Patterns: URLPatterns{
				Search:   []string{"/s?", "/s/", "k="},
				Product:  []string{"/dp/", "/gp/product"},
				Category: []string{"/b/", "/b?", "node="},
			},
			Selectors: map[types.PageType]SelectorSet{
				types.PageSearch: {
					Containers: []string{`[data-component-type="s-search-result"]`, `.s-result-item[data-asin]`},
					Title:      []string{"h2 span", ".a-text-normal"},
					Price:      []string{".a-price .a-offscreen", ".a-price-whole"},
					Rating:     []string{".a-icon-star-small .a-icon-alt", ".a-icon-alt"},
					Image:      []string{"img.s-image"},
				},
				types.PageHomepage: {
					Containers: []string{".a-carousel-card", ".gw-card-layout .a-cardui"},
					Title:      []string{".a-truncate-full", "img"},
					Price:      []string{".a-price .a-offscreen"},
					Rating:     []string{".a-icon-alt"},
					Image:      []string{"img"},
				},
			},
			ProductLinkPattern: asinPattern,
		},
		{
			Key:      "flipkart",
			Name:     "Flipkart",
			Category: "ecommerce",
			Patterns: URLPatterns{
				Search:   []string{"/search", "q="},
				Product:  []string{"/p/", "pid="},
				Category: []string{"/pr?", "/category"},
			},
			Selectors: map[types.PageType]SelectorSet{
				types.PageSearch: {
					Containers: []string{"._1AtVbE", "[data-id]"},
					Title:      []string{"._4rR01T", ".s1Q9rs", ".KzDlHZ", ".IRpwTa"},
					Price:      []string{"._30jeq3"},
					Rating:     []string{"._3LWZlK"},
					Image:      []string{"img._396cs4", "img._2r_T1I"},
				},
			},
		},
		{
			Key:      "imdb",
			Name:     "IMDB",
			Category: "movies",
			Patterns: URLPatterns{
				Search:   []string{"/find", "/search", "q="},
				Product:  []string{"/title/tt"},
				Category: []string{"/chart", "/list"},
			},
			Selectors: map[types.PageType]SelectorSet{
				types.PageSearch: {
					Containers: []string{"li.ipc-metadata-list-summary-item", ".lister-item"},
					Title:      []string{"h3.ipc-title__text", ".lister-item-header a"},
					Price:      []string{"span.cli-title-metadata-item", ".lister-item-year"},
					Rating:     []string{"span.ipc-rating-star--rating", ".ratings-imdb-rating strong"},
					Image:      []string{"img.ipc-image"},
				},
			},
		},
		{
			Key:      "goodreads",
			Name:     "Goodreads",
			Category: "books",
			Patterns: URLPatterns{
				Search:   []string{"/search", "q="},
				Product:  []string{"/book/show"},
				Category: []string{"/shelf", "/list"},
			},
			Selectors: map[types.PageType]SelectorSet{
				types.PageSearch: {
					Containers: []string{".bookalike", `tr[itemtype*="Book"]`},
					Title:      []string{"a.bookTitle", `span[itemprop="name"]`},
					Price:      []string{"a.authorName"},
					Rating:     []string{".minirating", ".staticStars"},
					Image:      []string{"img.bookCover", `img[itemprop="image"]`},
				},
			},
		},
	}
}

// genericProfile is the fallback for unrecognized hosts: common listing
// markup plus attribute-substring selectors for price and rating.
func genericProfile() *Profile {
	return &Profile{
		Key:      "generic",
		Name:     "Website",
		Category: "general",
		Patterns: URLPatterns{
			Search:   []string{"/search", "q=", "query=", "k="},
			Product:  []string{"/product/", "/item/", "/p/"},
			Category: []string{"/category", "/collection", "/c/"},
		},
		Selectors: map[types.PageType]SelectorSet{
			types.PageSearch: {
				Containers: []string{"article", ".product", ".card", ".item", "li.result"},
				Title:      []string{"h2", "h3", "a"},
				Price:      []string{`[class*="price"]`},
				Rating:     []string{`[class*="rating"]`, `[class*="stars"]`},
				Image:      []string{"img"},
			},
		},
	}
}
