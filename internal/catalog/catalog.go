// Package catalog enumerates the rotation codes the decision model's
// variables range over and classifies each into the semantic groups
// the hard and soft constraints key off. It is populated once at
// process start and is read-only thereafter — the only process-wide
// state the engine carries.
package catalog

import "github.com/tolga/resident-scheduler/internal/model"

// Role restricts which coverage role a code may be assigned to.
type Role int

const (
	RoleBoth Role = iota
	RoleSeniorOnly
	RoleInternOnly
)

// Rotation codes. Floor teams A-D plus the senior-only supplemental
// team G; ICU day and its "-E" variant; night rotations; clinic
// channels; core (cumulative) electives; the two holiday/terminal
// special codes; and one generic elective slot for otherwise-unbound
// elective credit.
const (
	CodeA    = "A"
	CodeB    = "B"
	CodeC    = "C"
	CodeD    = "D"
	CodeG    = "G"
	CodeICU  = "ICU"
	CodeICUE = "ICU-E"

	CodeNF    = "NF"
	CodeICUN  = "ICU_N"
	CodeSWING = "SWING"

	CodeClinic     = "CLINIC"
	CodeClinicStar = "CLINIC*"
	CodeTYClinic   = "TY_CLINIC"

	CodeCardio     = "CARDIO"
	CodeID         = "ID"
	CodeNeuro      = "NEURO"
	CodeGeriatrics = "GERIATRICS"
	CodeED         = "ED"

	CodeICUH    = "ICU_H"
	CodeGenSurg = "GEN_SURG"
	CodeElective = "ELECTIVE" // terminal anesthesia/TY elective block

	CodeElectiveGen = "ELECTIVE_GEN" // generic elective, no per-category ceiling

	CodeVacation = "VACATION"
)

// Rotation is one catalogue entry: the code, the categories it credits,
// and the eligibility rules constraints key off.
type Rotation struct {
	Code         string
	Categories   []model.Category
	IsNight      bool
	Role         Role
	// AllowedPGY is nil when every PGY may take this code (subject to
	// Role and AllowedTrack). When non-nil, only the listed PGYs may.
	AllowedPGY   []model.PGY
	// AllowedTrack restricts the code to one track; TrackNone means no
	// track restriction.
	AllowedTrack model.Track
	// DisallowedPGY excludes specific PGYs even when AllowedPGY is nil
	// (e.g. CLINIC/CLINIC* exclude TY, who use TY_CLINIC instead).
	DisallowedPGY []model.PGY
	// HolidayOnly permits the code only in config.HolidayWeeks.
	HolidayOnly bool
	// FloorTeam marks the code as one of the A-D-G floor-block group
	// (used by the decision model's holiday-week code set).
	FloorTeam bool
	// ICUDay marks the code as ICU day coverage (ICU, ICU-E).
	ICUDay bool
}

// Catalogue is the full, ordered set of rotation codes the solver
// may assign.
type Catalogue struct {
	rotations []Rotation
	byCode    map[string]Rotation
}

// New builds the fixed rotation catalogue of every known code and its
// coverage/category classification.
func New() *Catalogue {
	list := []Rotation{
		{Code: CodeA, Categories: []model.Category{model.CategoryFloors}, Role: RoleBoth, FloorTeam: true},
		{Code: CodeB, Categories: []model.Category{model.CategoryFloors}, Role: RoleBoth, FloorTeam: true},
		{Code: CodeC, Categories: []model.Category{model.CategoryFloors}, Role: RoleBoth, FloorTeam: true},
		{Code: CodeD, Categories: []model.Category{model.CategoryFloors}, Role: RoleBoth, FloorTeam: true},
		{Code: CodeG, Categories: []model.Category{model.CategoryFloors}, Role: RoleSeniorOnly, FloorTeam: true},

		{Code: CodeICU, Categories: []model.Category{model.CategoryICU}, Role: RoleBoth, ICUDay: true},
		{Code: CodeICUE, Categories: []model.Category{model.CategoryICU}, Role: RoleBoth, ICUDay: true},

		{Code: CodeNF, Categories: []model.Category{model.CategoryNF}, Role: RoleBoth, IsNight: true},
		{Code: CodeICUN, Categories: []model.Category{model.CategoryICUNight}, Role: RoleBoth, IsNight: true},
		{Code: CodeSWING, Categories: []model.Category{model.CategorySwing}, Role: RoleBoth, IsNight: true},

		{Code: CodeClinic, Categories: []model.Category{model.CategoryClinic}, Role: RoleBoth, DisallowedPGY: []model.PGY{model.TY}},
		{Code: CodeClinicStar, Categories: []model.Category{model.CategoryClinic}, Role: RoleBoth, DisallowedPGY: []model.PGY{model.TY}},
		{Code: CodeTYClinic, Categories: []model.Category{model.CategoryTYClinic}, Role: RoleBoth, AllowedPGY: []model.PGY{model.TY}},

		{Code: CodeCardio, Categories: []model.Category{model.CategoryCardio}, Role: RoleBoth},
		{Code: CodeID, Categories: []model.Category{model.CategoryID}, Role: RoleBoth},
		{Code: CodeNeuro, Categories: []model.Category{model.CategoryNeuro}, Role: RoleBoth},
		{Code: CodeGeriatrics, Categories: []model.Category{model.CategoryGeriatrics}, Role: RoleSeniorOnly},
		{Code: CodeED, Categories: []model.Category{model.CategoryED}, Role: RoleBoth},

		{Code: CodeICUH, Categories: nil, Role: RoleBoth, HolidayOnly: true},
		{Code: CodeGenSurg, Categories: []model.Category{model.CategoryGenSurg}, Role: RoleBoth, AllowedPGY: []model.PGY{model.TY}, AllowedTrack: model.TrackAnesthesia},
		{Code: CodeElective, Categories: []model.Category{model.CategoryElective}, Role: RoleBoth, AllowedPGY: []model.PGY{model.TY}},
		{Code: CodeElectiveGen, Categories: []model.Category{model.CategoryElective}, Role: RoleBoth},

		{Code: CodeVacation, Categories: []model.Category{model.CategoryVacation}, Role: RoleBoth},
	}

	c := &Catalogue{rotations: list, byCode: make(map[string]Rotation, len(list))}
	for _, r := range list {
		c.byCode[r.Code] = r
	}
	return c
}

// Lookup returns the catalogue entry for code.
func (c *Catalogue) Lookup(code string) (Rotation, bool) {
	r, ok := c.byCode[code]
	return r, ok
}

// Codes returns every rotation code in catalogue order.
func (c *Catalogue) Codes() []string {
	codes := make([]string, len(c.rotations))
	for i, r := range c.rotations {
		codes[i] = r.Code
	}
	return codes
}

// FloorTeams returns the four staffed floor teams (not G).
func (c *Catalogue) FloorTeams() []string {
	return []string{CodeA, CodeB, CodeC, CodeD}
}

// NightCodes returns the codes that count toward a resident's night cap.
func (c *Catalogue) NightCodes() []string {
	return []string{CodeNF, CodeICUN, CodeSWING}
}

// ICUCodes returns the codes counted as "ICU" for the ICU-block
// constraint (day ∪ night).
func (c *Catalogue) ICUCodes() []string {
	return []string{CodeICU, CodeICUE, CodeICUN}
}

// FloorSupergroup returns the floor+night supergroup used by H11.
func (c *Catalogue) FloorSupergroup() []string {
	return []string{CodeA, CodeB, CodeC, CodeD, CodeG, CodeNF, CodeSWING}
}

// ClinicCodes returns the two codes that both credit the CLINIC
// category (non-TY clinic channel).
func (c *Catalogue) ClinicCodes() []string {
	return []string{CodeClinic, CodeClinicStar}
}

// EligibleForRole reports whether a resident with the given PGY may
// occupy a code restricted to RoleSeniorOnly/RoleInternOnly.
func (r Rotation) EligibleForRole(res model.Resident) bool {
	switch r.Role {
	case RoleSeniorOnly:
		return res.IsSenior()
	case RoleInternOnly:
		return res.IsIntern()
	default:
		return true
	}
}

// EligibleForPGYTrack reports whether res may take this code given its
// PGY/track allow-lists, independent of role and week.
func (r Rotation) EligibleForPGYTrack(res model.Resident) bool {
	if r.AllowedPGY != nil {
		found := false
		for _, p := range r.AllowedPGY {
			if p == res.PGY {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if r.AllowedTrack != model.TrackNone && res.Track != r.AllowedTrack {
		return false
	}
	for _, p := range r.DisallowedPGY {
		if p == res.PGY {
			return false
		}
	}
	return true
}
