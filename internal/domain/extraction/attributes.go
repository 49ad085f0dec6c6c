package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Capacity units recognized by ExtractCapacity
const (
	CapacityUnitLiters = "L"
	CapacityUnitKWh    = "kWh"
)

// Phase values recognized by ExtractPhase
const (
	PhaseMono = "MONO"
	PhaseTri  = "TRI"
)

// powerPattern pairs a named regex with the index of the capture group
// holding the numeric value. Patterns are tried in slice order and the
// first match wins, so the order below encodes extraction priority.
type powerPattern struct {
	name string
	re   *regexp.Regexp
}

var powerPatterns = []powerPattern{
	{"explicit_kw", regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*KW\b`)},
	{"ktl_suffix", regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*KTL`)},
	{"dash_k_suffix", regexp.MustCompile(`(?i)-(\d+(?:[.,]\d+)?)K\b`)},
	{"sun2000_model", regexp.MustCompile(`(?i)SUN2000-(\d+(?:[.,]\d+)?)K`)},
}

var (
	litersPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*L\b`)
	kwhPattern    = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*KWH\b`)

	monoPattern     = regexp.MustCompile(`(?i)\bMONO(?:PHASE)?\b`)
	triPattern      = regexp.MustCompile(`(?i)\bTRI(?:PHASE)?\b`)
	amperagePattern = regexp.MustCompile(`(?i)\((\d+)\s*A\)`)
)

// ExtractPower extracts the power rating in kW from a designation.
// Returns false when no pattern matches.
func ExtractPower(designation string) (float64, bool) {
	for _, p := range powerPatterns {
		if m := p.re.FindStringSubmatch(designation); m != nil {
			if v, err := parseDecimalToken(m[1]); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}

// ExtractCapacity extracts a storage capacity from a designation.
// The liters pattern is tried before kWh so that a water-heater volume
// ("Ballon 200L") is never mistaken for battery energy capacity.
func ExtractCapacity(designation string) (float64, string, bool) {
	if m := litersPattern.FindStringSubmatch(designation); m != nil {
		if v, err := parseDecimalToken(m[1]); err == nil {
			return v, CapacityUnitLiters, true
		}
	}
	if m := kwhPattern.FindStringSubmatch(designation); m != nil {
		if v, err := parseDecimalToken(m[1]); err == nil {
			return v, CapacityUnitKWh, true
		}
	}
	return 0, "", false
}

// ExtractPhase detects a MONO/TRI phase token in a designation.
func ExtractPhase(designation string) (string, bool) {
	if monoPattern.MatchString(designation) {
		return PhaseMono, true
	}
	if triPattern.MatchString(designation) {
		return PhaseTri, true
	}
	return "", false
}

// ExtractAmperage extracts a parenthesized amperage rating, e.g. "(32A)".
func ExtractAmperage(designation string) (int, bool) {
	if m := amperagePattern.FindStringSubmatch(designation); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v, true
		}
	}
	return 0, false
}

// parseDecimalToken parses a numeric token that may use a comma as the
// decimal separator (French convention).
func parseDecimalToken(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
