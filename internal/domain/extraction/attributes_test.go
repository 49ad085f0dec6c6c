package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPower(t *testing.T) {
	tests := []struct {
		name        string
		designation string
		want        float64
		found       bool
	}{
		{"explicit kW", "Onduleur Fronius Symo 8.2 KW", 8.2, true},
		{"explicit kW no space", "Onduleur hybride 5KW monophasé", 5, true},
		{"comma decimal", "Onduleur 3,68 KW", 3.68, true},
		{"ktl suffix", "SUN2000-10KTL-M1", 10, true},
		{"dash k suffix", "Onduleur résidentiel SUN-6K", 6, true},
		{"no power", "Coffret de protection AC", 0, false},
		{"kwh is not kW", "Batterie 5KWH haute tension", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPower(tt.designation)
			assert.Equal(t, tt.found, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestExtractPowerPriorityOrder(t *testing.T) {
	// Both an explicit kW token and a KTL model suffix are present; the
	// explicit token wins because its pattern is tried first.
	got, ok := ExtractPower("SUN2000-10KTL 8 KW")
	require.True(t, ok)
	assert.InDelta(t, 8.0, got, 0.001)
}

func TestExtractCapacity(t *testing.T) {
	tests := []struct {
		name        string
		designation string
		wantValue   float64
		wantUnit    string
		found       bool
	}{
		{"water heater liters", "Ballon 200L", 200, CapacityUnitLiters, true},
		{"battery kwh", "Batterie 5.0KWH", 5.0, CapacityUnitKWh, true},
		{"comma decimal kwh", "Batterie LUNA2000 6,9 KWH", 6.9, CapacityUnitKWh, true},
		{"liters with space", "Chauffe-eau 150 L stéatite", 150, CapacityUnitLiters, true},
		{"no capacity", "Onduleur 5KW", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, unit, ok := ExtractCapacity(tt.designation)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantUnit, unit)
			assert.InDelta(t, tt.wantValue, value, 0.001)
		})
	}
}

func TestExtractCapacityLitersBeforeKWh(t *testing.T) {
	// A designation carrying both units is a water heater with a backup
	// battery spec sheet; volume must win to keep the disambiguation
	// deterministic.
	value, unit, ok := ExtractCapacity("Ballon thermodynamique 270L pilotable 2KWH")
	require.True(t, ok)
	assert.Equal(t, CapacityUnitLiters, unit)
	assert.InDelta(t, 270.0, value, 0.001)
}

func TestExtractPhase(t *testing.T) {
	tests := []struct {
		designation string
		want        string
		found       bool
	}{
		{"Onduleur 6KW MONO", PhaseMono, true},
		{"Onduleur 10KW TRI", PhaseTri, true},
		{"Onduleur monophasé", PhaseMono, true},
		{"Onduleur triphasé", PhaseTri, true},
		{"Panneau 425W", "", false},
	}

	for _, tt := range tests {
		got, ok := ExtractPhase(tt.designation)
		assert.Equal(t, tt.found, ok, tt.designation)
		assert.Equal(t, tt.want, got, tt.designation)
	}
}

func TestExtractAmperage(t *testing.T) {
	got, ok := ExtractAmperage("Disjoncteur différentiel (32A) type A")
	require.True(t, ok)
	assert.Equal(t, 32, got)

	_, ok = ExtractAmperage("Cable solaire 6MM2")
	assert.False(t, ok)
}

func TestDetectBrandExamples(t *testing.T) {
	patterns, err := CompileBrandRules(DefaultBrandRules())
	require.NoError(t, err)

	tests := []struct {
		text  string
		want  string
		found bool
	}{
		{"Onduleur HUAWEI SUN2000-6KTL", "Huawei", true},
		{"SUN2000-10KTL-M1 ONDULEUR", "Huawei", true},
		{"Micro onduleur IQ7 ENPHASE", "Enphase", true},
		{"Batterie PYLONTECH US5000", "Pylontech", true},
		{"Ballon AEROMAX 200L", "Thermor", true},
		{"Coffret AC générique", "", false},
	}

	for _, tt := range tests {
		got, ok := DetectBrand(tt.text, patterns)
		assert.Equal(t, tt.found, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestDetectBrandFirstMatchWins(t *testing.T) {
	patterns, err := CompileBrandRules([]BrandRule{
		{Name: "First", Pattern: `ONDULEUR`},
		{Name: "Second", Pattern: `ONDULEUR HYBRIDE`},
	})
	require.NoError(t, err)

	got, ok := DetectBrand("ONDULEUR HYBRIDE 5KW", patterns)
	require.True(t, ok)
	assert.Equal(t, "First", got)
}

func TestCompileBrandRulesInvalidPattern(t *testing.T) {
	_, err := CompileBrandRules([]BrandRule{{Name: "Bad", Pattern: `([`}})
	assert.Error(t, err)
}
