package extraction

import (
	"regexp"
	"strings"
)

// minBaseNameLength is the threshold below which a reduced name is
// considered over-stripped and the reducer falls back to the original
// designation.
const minBaseNameLength = 5

// reductionRule is one step of the base-name reduction pipeline.
// Rules run in slice order and the order is load-bearing: capacity
// tokens must be removed before power tokens so that a liter suffix is
// never mistaken for a power suffix. Reordering this list changes which
// products group together across imports.
type reductionRule struct {
	name  string
	apply func(string) string
}

var reductionRules = []reductionRule{
	{"liter_capacity", regexReplace(`(?i)\b\d+(?:[.,]\d+)?\s*L\b`)},
	{"kwh_capacity", regexReplace(`(?i)\b\d+(?:[.,]\d+)?\s*KWH\b`)},
	{"power_rating", regexReplace(`(?i)\b\d+(?:[.,]\d+)?\s*(?:KVA|KTL|KW|VA|W)\b`)},
	{"dash_k_power", regexReplace(`(?i)-\d+(?:[.,]\d+)?K\b`)},
	{"amperage", regexReplace(`(?i)\(?\b\d+\s*A\b\)?`)},
	{"reference_code", stripReferenceCodes},
	{"vendor_sku", regexReplace(`\b[A-Z]{2,}\d{2,}[A-Z0-9]*\b`)},
	{"parenthetical", regexReplace(`\([^)]*\)`)},
	{"cable_dimension", regexReplace(`(?i)\b\d+(?:[.,]\d+)?\s*(?:MM2|MM²|MM|M)\b`)},
}

var (
	separatorRun  = regexp.MustCompile(`[\s_/]+`)
	trailingCode  = regexp.MustCompile(`\s+[A-Z0-9./-]{7,}\s*$`)
	codeCandidate = regexp.MustCompile(`\b[A-Z0-9./-]{7,}\b`)
	anyDigit      = regexp.MustCompile(`\d`)
)

func regexReplace(pattern string) func(string) string {
	re := regexp.MustCompile(pattern)
	return func(s string) string {
		return re.ReplaceAllString(s, " ")
	}
}

// stripReferenceCodes removes long alphanumeric tokens that look like
// supplier reference codes. A token must contain at least one digit:
// an all-letter uppercase word of the same length is a real word, not a
// code.
func stripReferenceCodes(s string) string {
	return codeCandidate.ReplaceAllStringFunc(s, func(token string) string {
		if anyDigit.MatchString(token) {
			return " "
		}
		return token
	})
}

// ReduceBaseName strips the variable tokens (capacities, power ratings,
// amperages, reference codes, parentheticals, dimensions) from a
// designation to obtain the canonical family name shared by all variants
// of the same product.
//
// If reduction collapses the name below a usable length, the original
// designation is returned with only a trailing reference-code suffix
// removed, so short legitimate names are not stripped into garbage.
func ReduceBaseName(designation string) string {
	reduced := designation
	for _, rule := range reductionRules {
		reduced = rule.apply(reduced)
	}
	reduced = collapseSeparators(reduced)

	if len(reduced) < minBaseNameLength {
		return collapseSeparators(trailingCode.ReplaceAllString(designation, ""))
	}
	return reduced
}

// ReductionRuleNames returns the ordered names of the reduction rules.
// The order is part of the engine's observable behavior and is asserted
// in tests; a reorder is a behavior-changing release.
func ReductionRuleNames() []string {
	names := make([]string, len(reductionRules))
	for i, r := range reductionRules {
		names[i] = r.name
	}
	return names
}

func collapseSeparators(s string) string {
	s = separatorRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.Trim(s, " -"))
}
