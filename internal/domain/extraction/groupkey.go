package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxGroupKeyLength bounds the key so it fits an indexed column.
const maxGroupKeyLength = 60

var (
	nonKeyChars    = regexp.MustCompile(`[^A-Z0-9]+`)
	underscoreRun  = regexp.MustCompile(`_+`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRun      = regexp.MustCompile(`-+`)
	accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GroupKey derives the durable cross-import identity of a product from
// its reduced base name and detected brand. The key is insensitive to
// whitespace, accents, casing and punctuation, but sensitive to the
// brand and the core name: repeated imports of the same supplier file
// must converge on the same key.
func GroupKey(baseName, brand string) string {
	key := stripAccents(strings.ToUpper(baseName))
	key = nonKeyChars.ReplaceAllString(key, "_")
	key = underscoreRun.ReplaceAllString(key, "_")
	key = strings.Trim(key, "_")

	if len(key) > maxGroupKeyLength {
		key = strings.Trim(key[:maxGroupKeyLength], "_")
	}

	if brand != "" {
		prefix := strings.ReplaceAll(stripAccents(strings.ToUpper(brand)), " ", "_")
		if !strings.HasPrefix(key, prefix) {
			key = prefix + "_" + key
		}
	}

	return key
}

// Slugify produces a URL-safe slug from a product base name. Collision
// handling (numeric suffixes) is the caller's concern.
func Slugify(name string) string {
	slug := stripAccents(strings.ToLower(name))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// stripAccents removes combining marks after NFD decomposition, turning
// "Éléctrique" into "Electrique".
func stripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}
