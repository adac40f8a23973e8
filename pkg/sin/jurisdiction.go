package sin

// Jurisdiction is a category a SIN's leading digit may indicate: one of the
// issuing provinces and territories, or a special assignment class.
//
// The set is closed today but may grow if Service Canada carves up the
// remaining number space differently, so switch statements elsewhere should
// keep a default arm.
type Jurisdiction string

const (
	// JurisdictionCRAAssigned covers CRA-assigned Individual Tax Numbers,
	// Temporary Tax Numbers and Adoption Tax Numbers.
	JurisdictionCRAAssigned Jurisdiction = "cra_assigned"
	// JurisdictionTemporaryResident covers SINs issued to temporary
	// residents (the 900 series).
	JurisdictionTemporaryResident Jurisdiction = "temporary_resident"
	// JurisdictionBusinessNumber covers business numbers, which share the
	// SIN digit namespace but are assigned to non-human entities.
	JurisdictionBusinessNumber Jurisdiction = "business_number"
	// JurisdictionOverseasForces covers military forces abroad.
	JurisdictionOverseasForces Jurisdiction = "overseas_forces"

	JurisdictionAlberta              Jurisdiction = "alberta"
	JurisdictionBritishColumbia      Jurisdiction = "british_columbia"
	JurisdictionManitoba             Jurisdiction = "manitoba"
	JurisdictionNewBrunswick         Jurisdiction = "new_brunswick"
	JurisdictionNewfoundlandLabrador Jurisdiction = "newfoundland_and_labrador"
	JurisdictionNorthwestTerritories Jurisdiction = "northwest_territories"
	JurisdictionNovaScotia           Jurisdiction = "nova_scotia"
	JurisdictionNunavut              Jurisdiction = "nunavut"
	JurisdictionOntario              Jurisdiction = "ontario"
	JurisdictionPrinceEdwardIsland   Jurisdiction = "prince_edward_island"
	JurisdictionQuebec               Jurisdiction = "quebec"
	JurisdictionSaskatchewan         Jurisdiction = "saskatchewan"
	JurisdictionYukon                Jurisdiction = "yukon"
)

// provinces is the single source of truth for the geographic facet.
var provinces = map[Jurisdiction]bool{
	JurisdictionAlberta:              true,
	JurisdictionBritishColumbia:      true,
	JurisdictionManitoba:             true,
	JurisdictionNewBrunswick:         true,
	JurisdictionNewfoundlandLabrador: true,
	JurisdictionNorthwestTerritories: true,
	JurisdictionNovaScotia:           true,
	JurisdictionNunavut:              true,
	JurisdictionOntario:              true,
	JurisdictionPrinceEdwardIsland:   true,
	JurisdictionQuebec:               true,
	JurisdictionSaskatchewan:         true,
	JurisdictionYukon:                true,
}

// IsProvince reports whether the jurisdiction is a geographic province or
// territory rather than a special assignment class.
func (j Jurisdiction) IsProvince() bool {
	return provinces[j]
}

// IsPerson reports whether the jurisdiction is assigned to natural people.
// Only business numbers are assigned to non-human entities.
func (j Jurisdiction) IsPerson() bool {
	return j != JurisdictionBusinessNumber
}

// String returns the string representation of the jurisdiction.
func (j Jurisdiction) String() string {
	return string(j)
}

// leadingDigitJurisdictions maps a SIN's first digit to every jurisdiction it
// could have been issued under. Several jurisdictions share leading digits,
// so most entries are genuinely ambiguous; the mapping follows the published
// geography table and deliberately does not try to narrow further.
var leadingDigitJurisdictions = [10][]Jurisdiction{
	0: {JurisdictionCRAAssigned},
	1: {
		JurisdictionNovaScotia,
		JurisdictionNewBrunswick,
		JurisdictionPrinceEdwardIsland,
		JurisdictionNewfoundlandLabrador,
	},
	2: {JurisdictionQuebec},
	3: {JurisdictionQuebec},
	4: {JurisdictionOntario, JurisdictionOverseasForces},
	5: {JurisdictionOntario, JurisdictionOverseasForces},
	6: {
		JurisdictionOntario,
		JurisdictionManitoba,
		JurisdictionSaskatchewan,
		JurisdictionAlberta,
		JurisdictionNorthwestTerritories,
		JurisdictionNunavut,
	},
	7: {JurisdictionBritishColumbia, JurisdictionYukon, JurisdictionBusinessNumber},
	8: {JurisdictionBusinessNumber},
	9: {JurisdictionTemporaryResident},
}

// Jurisdictions returns every jurisdiction the SIN could belong to, derived
// from its first digit. The result is always non-empty, its order is fixed,
// and callers must treat it as a set of possibilities, not a single answer.
// The returned slice is a copy and safe to mutate.
func (s SIN) Jurisdictions() []Jurisdiction {
	tags := leadingDigitJurisdictions[s.digits[0]]
	out := make([]Jurisdiction, len(tags))
	copy(out, tags)
	return out
}
