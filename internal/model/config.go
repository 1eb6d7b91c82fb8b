package model

// SolverConfig holds the tunables the Decision Model and Search Driver
// read. schedcontext.Build uses the config exactly as its ConfigSource
// returns it; the Postgres store starts from DefaultSolverConfig and
// layers a stored per-year override on top.
type SolverConfig struct {
	MaxNightsPerYear      int // default 8
	MaxConsecutiveNights  int // hard cap, default 2
	SoftConsecutiveNights int // soft fallback ceiling, default 4
	PriorNightCarryCap    int // cumulative prior+this-year cap, default 16

	EDCapPerWeek      int   // default 3
	NoCardioBeforeWk  int   // Ramirez rule, PGY1 only; default 7
	JulyWeeks         []int // default {1,2,3,4}

	VacationWeeksPerResident int // default 4
	VacationRunLength        int // default 2
	MinInterblockGapWeeks     int // default 12

	ClinicMinPerWeek int // default 11
	ClinicMaxPerWeek int // default 12

	HolidayWeeks []int // default {26,27}

	SeniorABCDStagnationLimit int // default 2 (H12)
	InternABCDStagnationLimit int // default 4 (H12)

	// Operator relaxation flags: each turns off a named hard check.
	// Never on by default.
	RelaxVacationBlocks      bool // skips the H1/H2 vacation checks; no soft term scores vacation shape or placement
	RelaxGeriatricsCoverage  bool // demotes senior GERIATRICS/NEURO coverage to soft

	// Search driver knobs.
	TimeLimitSeconds int  // default 300; 0 = unbounded
	NumWorkers       int  // default 4
	RandomSeed       *int64
}

// DefaultSolverConfig returns the programme-wide default tunables.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		MaxNightsPerYear:      8,
		MaxConsecutiveNights:  2,
		SoftConsecutiveNights: 4,
		PriorNightCarryCap:    16,

		EDCapPerWeek:     3,
		NoCardioBeforeWk: 7,
		JulyWeeks:        []int{1, 2, 3, 4},

		VacationWeeksPerResident: 4,
		VacationRunLength:        2,
		MinInterblockGapWeeks:    12,

		ClinicMinPerWeek: 11,
		ClinicMaxPerWeek: 12,

		HolidayWeeks: []int{26, 27},

		SeniorABCDStagnationLimit: 2,
		InternABCDStagnationLimit: 4,

		TimeLimitSeconds: 300,
		NumWorkers:       4,
	}
}

// IsHolidayWeek reports whether w is one of the configured holiday
// weeks (default 26, 27).
func (c SolverConfig) IsHolidayWeek(w int) bool {
	for _, hw := range c.HolidayWeeks {
		if hw == w {
			return true
		}
	}
	return false
}

// IsJulyWeek reports whether w is one of the configured July weeks.
func (c SolverConfig) IsJulyWeek(w int) bool {
	for _, jw := range c.JulyWeeks {
		if jw == w {
			return true
		}
	}
	return false
}
