package sin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustParse builds a checksum-valid SIN with the given leading digit: all
// middle digits are zero and the check digit absorbs the remainder.
func mustParse(t *testing.T, leading int) SIN {
	t.Helper()
	check := (10 - leading) % 10
	s, err := Parse(fmt.Sprintf("%d0000000%d", leading, check))
	require.NoError(t, err)
	return s
}

// TestJurisdictions_LeadingDigitTable checks the full classification table:
// every leading digit maps to the exact ordered list, ambiguity included.
func TestJurisdictions_LeadingDigitTable(t *testing.T) {
	tests := []struct {
		leading int
		want    []Jurisdiction
	}{
		{0, []Jurisdiction{JurisdictionCRAAssigned}},
		{1, []Jurisdiction{
			JurisdictionNovaScotia,
			JurisdictionNewBrunswick,
			JurisdictionPrinceEdwardIsland,
			JurisdictionNewfoundlandLabrador,
		}},
		{2, []Jurisdiction{JurisdictionQuebec}},
		{3, []Jurisdiction{JurisdictionQuebec}},
		{4, []Jurisdiction{JurisdictionOntario, JurisdictionOverseasForces}},
		{5, []Jurisdiction{JurisdictionOntario, JurisdictionOverseasForces}},
		{6, []Jurisdiction{
			JurisdictionOntario,
			JurisdictionManitoba,
			JurisdictionSaskatchewan,
			JurisdictionAlberta,
			JurisdictionNorthwestTerritories,
			JurisdictionNunavut,
		}},
		{7, []Jurisdiction{JurisdictionBritishColumbia, JurisdictionYukon, JurisdictionBusinessNumber}},
		{8, []Jurisdiction{JurisdictionBusinessNumber}},
		{9, []Jurisdiction{JurisdictionTemporaryResident}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("leading digit %d", tt.leading), func(t *testing.T) {
			got := mustParse(t, tt.leading).Jurisdictions()
			assert.NotEmpty(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestJurisdictions_ResultIsACopy guards the immutability of the underlying
// table: mutating a returned slice must not leak into later calls.
func TestJurisdictions_ResultIsACopy(t *testing.T) {
	s := mustParse(t, 7)

	first := s.Jurisdictions()
	first[0] = JurisdictionQuebec

	second := s.Jurisdictions()
	assert.Equal(t, JurisdictionBritishColumbia, second[0])
}

func TestJurisdiction_IsProvince(t *testing.T) {
	geographic := []Jurisdiction{
		JurisdictionAlberta,
		JurisdictionBritishColumbia,
		JurisdictionManitoba,
		JurisdictionNewBrunswick,
		JurisdictionNewfoundlandLabrador,
		JurisdictionNorthwestTerritories,
		JurisdictionNovaScotia,
		JurisdictionNunavut,
		JurisdictionOntario,
		JurisdictionPrinceEdwardIsland,
		JurisdictionQuebec,
		JurisdictionSaskatchewan,
		JurisdictionYukon,
	}
	for _, j := range geographic {
		assert.True(t, j.IsProvince(), "%s should be geographic", j)
	}

	special := []Jurisdiction{
		JurisdictionCRAAssigned,
		JurisdictionTemporaryResident,
		JurisdictionBusinessNumber,
		JurisdictionOverseasForces,
	}
	for _, j := range special {
		assert.False(t, j.IsProvince(), "%s should not be geographic", j)
	}
}

func TestJurisdiction_IsPerson(t *testing.T) {
	assert.False(t, JurisdictionBusinessNumber.IsPerson())

	for _, j := range []Jurisdiction{
		JurisdictionCRAAssigned,
		JurisdictionTemporaryResident,
		JurisdictionOverseasForces,
		JurisdictionOntario,
		JurisdictionQuebec,
	} {
		assert.True(t, j.IsPerson(), "%s is assigned to natural people", j)
	}
}
