package common

import (
	"regexp"
	"strings"
)

const (
	maxSlugLen     = 30
	minSlugLen     = 3
	maxSlugWords   = 3
	fallbackSlug   = "demo"
	rawFallbackLen = 10
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	hyphenRuns      = regexp.MustCompile(`-+`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)
)

// businessSuffixes are stripped as whole words before slugging so that
// "Acme Solar LLC" and "Acme Solar" map to the same demo URL.
var businessSuffixes = regexp.MustCompile(`\b(llc|incorporated|inc|corporation|corp|limited|ltd|co)\b`)

// CompanySlug derives the URL-safe identifier used for demo links and
// directory keys from a raw company name. It is deterministic and
// idempotent: feeding a slug back in returns the same slug. The result
// is never empty; unusable input falls back to an alphanumeric
// truncation of the raw name, and finally to a fixed placeholder.
func CompanySlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = businessSuffixes.ReplaceAllString(slug, "")

	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	slug = trimWords(slug)

	if len(slug) < minSlugLen {
		raw := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "")
		if len(raw) > rawFallbackLen {
			raw = raw[:rawFallbackLen]
		}
		slug = raw
	}
	if slug == "" {
		slug = fallbackSlug
	}
	return slug
}

// trimWords keeps long company names short enough for clean URLs. Names
// with more than three words are reduced to the first three words longer
// than two characters, then the slug is capped at maxSlugLen on a word
// boundary.
func trimWords(slug string) string {
	words := strings.Split(slug, "-")
	if len(words) > maxSlugWords {
		meaningful := make([]string, 0, len(words))
		for _, w := range words {
			if len(w) > 2 {
				meaningful = append(meaningful, w)
			}
		}
		if len(meaningful) > maxSlugWords {
			meaningful = meaningful[:maxSlugWords]
		}
		if len(meaningful) > 0 {
			words = meaningful
		}
		slug = strings.Join(words, "-")
	}

	if len(slug) > maxSlugLen {
		kept := make([]string, 0, len(words))
		length := 0
		for _, w := range words {
			if length+len(w)+1 > maxSlugLen {
				break
			}
			kept = append(kept, w)
			length += len(w) + 1
		}
		slug = strings.Join(kept, "-")
	}
	return slug
}
