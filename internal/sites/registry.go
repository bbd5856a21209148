// Package sites holds the per-site selector configuration tables. Profiles
// are built once at startup and never mutated; unknown hosts fall back to a
// generic profile of common listing markup patterns.
package sites

import (
	"regexp"
	"strings"

	"github.com/arjunmehra/shopscout/internal/types"
)

// SelectorSet groups the selector lists for one page type. Each field is an
// ordered list: the first selector that yields content wins, it is never a
// union across selectors.
type SelectorSet struct {
	Containers []string
	Title      []string
	Price      []string
	Rating     []string
	Image      []string
}

// Empty reports whether the set has no container selectors at all.
func (s SelectorSet) Empty() bool {
	return len(s.Containers) == 0
}

// URLPatterns holds substring patterns used to classify a page by its URL.
type URLPatterns struct {
	Search   []string
	Product  []string
	Category []string
}

// Profile is the full configuration for one recognized site.
type Profile struct {
	Key      string
	Name     string
	Category string
	Patterns URLPatterns

	// Selectors maps page types to selector sets. Lookups fall back to the
	// search set, then the homepage set, when a page type has no entry.
	Selectors map[types.PageType]SelectorSet

	// ProductLinkPattern, when set, enables the link-based fallback
	// extraction strategy. The first capture group is the product identifier
	// embedded in a product-detail URL.
	ProductLinkPattern *regexp.Regexp
}

// SelectorsFor returns the selector set for a page type, applying the
// search → homepage fallback chain. The second return is false when the
// profile has no usable selectors at all.
func (p *Profile) SelectorsFor(pt types.PageType) (SelectorSet, bool) {
	if set, ok := p.Selectors[pt]; ok && !set.Empty() {
		return set, true
	}
	if set, ok := p.Selectors[types.PageSearch]; ok && !set.Empty() {
		return set, true
	}
	if set, ok := p.Selectors[types.PageHomepage]; ok && !set.Empty() {
		return set, true
	}
	return SelectorSet{}, false
}

// Registry maps hostnames to site profiles.
type Registry struct {
	keys     []string
	profiles map[string]*Profile
	generic  *Profile
}

// NewRegistry creates a registry populated with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{
		profiles: make(map[string]*Profile),
		generic:  genericProfile(),
	}
	for _, p := range builtinProfiles() {
		r.Register(p)
	}
	return r
}

// Register adds a profile. Registration order is preserved so hostname
// resolution stays deterministic.
func (r *Registry) Register(p *Profile) {
	if _, exists := r.profiles[p.Key]; !exists {
		r.keys = append(r.keys, p.Key)
	}
	r.profiles[p.Key] = p
}

// Resolve returns the profile for a hostname, or the generic profile when
// no registered key is a substring of the normalized host.
func (r *Registry) Resolve(hostname string) *Profile {
	host := strings.ToLower(strings.TrimSpace(hostname))
	host = strings.TrimPrefix(host, "www.")

	for _, key := range r.keys {
		if strings.Contains(host, key) {
			return r.profiles[key]
		}
	}
	return r.generic
}

// Generic returns the fallback profile.
func (r *Registry) Generic() *Profile { return r.generic }

// Keys returns the registered site keys in resolution order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}
