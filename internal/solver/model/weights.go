package model

import "github.com/shopspring/decimal"

// Weight tiers for the soft objective, expressed as decimal.Decimal so
// the half-tier elective-burst weights keep exact precision through
// the objective sum instead of drifting as floats.
var (
	WeightGraduation         = decimal.NewFromInt(20_000_000)
	WeightStrictRequirement  = decimal.NewFromInt(10_000_000)
	WeightTeamGStagger       = decimal.NewFromInt(1_000_000)
	WeightSeniorCoverage     = decimal.NewFromInt(1_000_000)
	WeightSurplusFloor       = decimal.NewFromInt(1_000_000)
	WeightElectiveSoft       = decimal.NewFromInt(1_000_000)
	WeightGlobalStagger      = decimal.NewFromInt(5_000_000)
	WeightElectiveBurst3     = decimal.NewFromFloat(500_000)
	WeightElectiveBurst4     = decimal.NewFromFloat(2_000_000)
	WeightClinicBurst        = decimal.NewFromInt(500_000)
	WeightTeamGOff           = decimal.NewFromInt(300_000)
	WeightPGY3LateCore       = decimal.NewFromInt(500)
	WeightTransition         = decimal.NewFromInt(1)

	// PGY3 holiday-work penalty base; discounted by 2e5 per completed
	// core-category week: 10^7 − 2x10^5 * prior_core.
	WeightPGY3HolidayBase    = decimal.NewFromInt(10_000_000)
	WeightPGY3HolidayDiscount = decimal.NewFromInt(200_000)

	// vacationPriorityBase and vacationPriorityMult give
	// VacationPriorityBonus the magnitude of the negative (bonus)
	// coefficient for honouring a priority-p vacation request:
	// weight = 6 - priority, entering the objective as -3*weight.
	vacationPriorityBase = decimal.NewFromInt(6)
	vacationPriorityMult = decimal.NewFromInt(3)
)

// VacationPriorityBonus returns the (positive) bonus magnitude the
// objective subtracts when a priority-p vacation request is honoured.
func VacationPriorityBonus(priority int) decimal.Decimal {
	weight := vacationPriorityBase.Sub(decimal.NewFromInt(int64(priority)))
	if weight.IsNegative() {
		weight = decimal.Zero
	}
	return vacationPriorityMult.Mul(weight)
}

// PGY3HolidayPenalty applies the prior-core discount to the base
// holiday-work penalty, floored at zero.
func PGY3HolidayPenalty(priorCoreWeeks int) decimal.Decimal {
	penalty := WeightPGY3HolidayBase.Sub(
		WeightPGY3HolidayDiscount.Mul(decimal.NewFromInt(int64(priorCoreWeeks))))
	if penalty.IsNegative() {
		return decimal.Zero
	}
	return penalty
}

// HardViolationWeight is the penalty applied per hard-constraint
// violation inside the penalty-based local search (internal/solver/search).
// It sits far above every soft tier so the optimizer always eliminates
// a hard violation before it will trade off against any soft term.
var HardViolationWeight = decimal.NewFromInt(1_000_000_000)
