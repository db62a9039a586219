package page

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds the slug in characters
const MaxSlugLength = 120

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRunes   = regexp.MustCompile(`[^a-z0-9]+`)
	ErrInvalidSlug = shared.NewDomainError("INVALID_SLUG", "Slug must be lower-kebab-case")
)

// NormalizeSlug turns free text into lower-kebab-case, dropping accents:
// "Café Offre Été" becomes "cafe-offre-ete".
func NormalizeSlug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = nonSlugRunes.ReplaceAllString(folded, "-")
	folded = strings.Trim(folded, "-")
	if len(folded) > MaxSlugLength {
		folded = strings.TrimRight(folded[:MaxSlugLength], "-")
	}
	return folded
}

// ValidateSlug checks that a slug is already in canonical form
func ValidateSlug(slug string) error {
	if slug == "" {
		return ErrInvalidSlug.WithMessage("Slug cannot be empty")
	}
	if len(slug) > MaxSlugLength {
		return ErrInvalidSlug.WithMessage("Slug is too long")
	}
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}
