package validate

import "regexp"

// blacklist holds the non-product boilerplate patterns checked against
// candidate names. The patterns are independent predicates; order carries
// no priority. Kept as data so the list can be tested and extended without
// touching the orchestration logic.
var blacklist = []*regexp.Regexp{
	// navigation chrome
	regexp.MustCompile(`(?i)^(sign|log)\s?in\b`),
	regexp.MustCompile(`(?i)^(sign|log)\s?out\b`),
	regexp.MustCompile(`(?i)^(create|your)\s+account\b`),
	regexp.MustCompile(`(?i)^(back|go|return)\s+to\b`),
	regexp.MustCompile(`(?i)^(next|previous)\s+page\b`),
	regexp.MustCompile(`(?i)^(home|menu|categories|departments)$`),
	// calls to action
	regexp.MustCompile(`(?i)^add\s+to\s+(cart|basket|wish\s?list)\b`),
	regexp.MustCompile(`(?i)^(buy|order|shop)\s+now\b`),
	regexp.MustCompile(`(?i)^continue\s+shopping\b`),
	regexp.MustCompile(`(?i)^(view|see|show|explore|discover)\s+(all|more|details)\b`),
	regexp.MustCompile(`(?i)^(learn|read)\s+more\b`),
	regexp.MustCompile(`(?i)^(subscribe|checkout|compare)\b`),
	// promo banners and bare offers
	regexp.MustCompile(`(?i)\b(deal\s+of\s+the\s+day|limited\s+time\s+offer|flash\s+sale)\b`),
	regexp.MustCompile(`(?i)^(free\s+(shipping|delivery))\b`),
	regexp.MustCompile(`(?i)^\d+%\s*off\b`),
	regexp.MustCompile(`(?i)^(save|get)\s+(up\s+to\s+)?[\d%]`),
	// bare percentage / currency strings and pure symbols
	regexp.MustCompile(`^[\d\s.,%₹$€£¥-]+$`),
	regexp.MustCompile(`^[^a-zA-Z0-9]+$`),
	// customer-service boilerplate
	regexp.MustCompile(`(?i)^(customer\s+service|help\s+center|contact\s+us|track\s+(your\s+)?order)\b`),
	regexp.MustCompile(`(?i)^(terms|privacy|cookies?)\b`),
}

// promoPrefix rejects names that open with promotional phrasing: a bare
// percentage or an "up to" offer.
var promoPrefix = regexp.MustCompile(`(?i)^\s*(\d+\s*%|up\s+to\b)`)

// Blacklisted reports whether a name matches any blacklist pattern.
func Blacklisted(name string) bool {
	for _, re := range blacklist {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
