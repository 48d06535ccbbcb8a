package domain

import (
	"regexp"
	"strings"
)

const maxSlugLength = 64

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// reservedSlugs are path segments owned by the service itself.
var reservedSlugs = map[string]struct{}{
	"api":         {},
	"health":      {},
	"healthz":     {},
	"readyz":      {},
	"admin":       {},
	"dashboard":   {},
	"static":      {},
	"assets":      {},
	"login":       {},
	"logout":      {},
	"favicon.ico": {},
	"robots.txt":  {},
	"qr":          {},
	"www":         {},
}

// IsReserved reports whether slug collides with a service route.
// Comparison is case-insensitive.
func IsReserved(slug string) bool {
	_, ok := reservedSlugs[strings.ToLower(slug)]
	return ok
}

// ValidateSlug returns ErrInvalidSlug for slugs that can never name a link.
func ValidateSlug(slug string) error {
	if slug == "" || len(slug) > maxSlugLength || !slugPattern.MatchString(slug) || IsReserved(slug) {
		return ErrInvalidSlug
	}
	return nil
}
