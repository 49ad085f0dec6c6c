package extraction

import (
	"fmt"
	"regexp"
)

// BrandRule is the configurable form of a brand-detection pattern.
// Rules come from configuration so the list can be versioned and
// extended without a code change.
type BrandRule struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
}

// BrandPattern is a compiled brand-detection rule.
type BrandPattern struct {
	Name string
	re   *regexp.Regexp
}

// CompileBrandRules compiles an ordered rule list. Order is preserved:
// detection tests patterns in slice order and the first match wins.
func CompileBrandRules(rules []BrandRule) ([]BrandPattern, error) {
	patterns := make([]BrandPattern, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(`(?i)` + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid brand pattern for %q: %w", r.Name, err)
		}
		patterns = append(patterns, BrandPattern{Name: r.Name, re: re})
	}
	return patterns, nil
}

// DefaultBrandRules returns the built-in brand-detection rules, used when
// the configuration does not provide its own list.
func DefaultBrandRules() []BrandRule {
	return []BrandRule{
		{Name: "Huawei", Pattern: `\bHUAWEI\b|\bSUN2000\b|\bLUNA2000\b`},
		{Name: "Enphase", Pattern: `\bENPHASE\b|\bIQ[78]\b|\bIQ[78][A-Z+]*\b`},
		{Name: "Fronius", Pattern: `\bFRONIUS\b|\bSYMO\b|\bPRIMO\b`},
		{Name: "SMA", Pattern: `\bSMA\b|\bSUNNY\s?BOY\b|\bTRIPOWER\b`},
		{Name: "APsystems", Pattern: `\bAPSYSTEMS\b|\bDS3\b|\bQS1\b`},
		{Name: "Victron", Pattern: `\bVICTRON\b|\bMULTIPLUS\b`},
		{Name: "Pylontech", Pattern: `\bPYLONTECH\b|\bUS[235]000\b`},
		{Name: "Dualsun", Pattern: `\bDUALSUN\b|\bFLASH\b`},
		{Name: "Longi", Pattern: `\bLONGI\b|\bHI-?MO\b`},
		{Name: "JA Solar", Pattern: `\bJA\s?SOLAR\b|\bJAM\d`},
		{Name: "Thermor", Pattern: `\bTHERMOR\b|\bAEROMAX\b`},
		{Name: "Atlantic", Pattern: `\bATLANTIC\b|\bCALYPSO\b`},
	}
}

// DetectBrand finds the brand referenced by the given text. Patterns are
// tested in order and the first match wins; no match returns false.
func DetectBrand(text string, patterns []BrandPattern) (string, bool) {
	for _, p := range patterns {
		if p.re.MatchString(text) {
			return p.Name, true
		}
	}
	return "", false
}
