/*
nue_test.go - Bare-rental regime tests

ORGANIZATION:
  1. Forfait (flat-rate allowance)
  2. Deficit repartition branches (the D / N / I rules)
  3. End-to-end réel years through the default catalog
  4. Invariants (floor, non-negative carry, idempotence)
  5. Multi-year carry chaining
*/
package nue_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/fiscal-engine/fiscal"
	"github.com/warp/fiscal-engine/nue"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func newSim(regimen fiscal.Regimen, fields map[string]float64) fiscal.Simulation {
	sim := fiscal.NewSimulation(regimen)
	for name, value := range fields {
		sim.SetFloat(name, value)
	}
	return sim
}

// =============================================================================
// FORFAIT
// =============================================================================

func TestComputeYear_Forfait_ThirtyPercentAllowance(t *testing.T) {
	// GIVEN: Bare rental, forfait, rent 12000
	// WHEN: Computing any fiscal year
	// THEN: Net is 12000 * 0.7 = 8400, no deficit, nothing carried

	sim := newSim(fiscal.RegimenForfait, map[string]float64{fiscal.FieldAnnualRent: 12000})
	result, err := nue.New().ComputeYear(sim, decimal.Zero, 1)
	require.NoError(t, err)

	assert.True(t, result.NetTaxable.Equal(d(8400)), "got %s", result.NetTaxable)
	assert.False(t, result.IsNegative)
	assert.True(t, result.CarryForward.IsZero())
}

func TestComputeYear_Forfait_IgnoresExpensesAndCarryIn(t *testing.T) {
	sim := newSim(fiscal.RegimenForfait, map[string]float64{
		fiscal.FieldAnnualRent:  10000,
		fiscal.FieldPropertyTax: 99999,
	})
	result, err := nue.New().ComputeYear(sim, d(5000), 2)
	require.NoError(t, err)

	assert.True(t, result.NetTaxable.Equal(d(7000)))
	assert.True(t, result.CarryForward.IsZero())
}

// =============================================================================
// DEFICIT REPARTITION BRANCHES
// =============================================================================
// D = rent - loan interest, cap magnitude 10,700. Comparisons against the
// pre-cap amount N use the positive magnitude; that is the historical
// behavior and these tests pin it down.

func TestRepartitionDeficit_RentAboveInterest_AboveThreshold(t *testing.T) {
	// Branch 1: D > 0, N >= cap -> N reported as-is, nothing carried
	result := nue.RepartitionDeficit(d(15000), d(20000), d(2000))

	assert.True(t, result.NetTaxable.Equal(d(15000)))
	assert.False(t, result.IsNegative)
	assert.True(t, result.CarryForward.IsZero())
}

func TestRepartitionDeficit_RentAboveInterest_BelowThreshold(t *testing.T) {
	// Branch 2: D > 0, N < cap -> floor reported, remainder carried
	result := nue.RepartitionDeficit(d(-15000), d(5000), d(2000))

	assert.True(t, result.NetTaxable.Equal(d(-10700)))
	assert.True(t, result.IsNegative)
	assert.True(t, result.CarryForward.Equal(d(4300)), "|-15000 + 10700| = 4300")
}

func TestRepartitionDeficit_InterestAboveRent_AboveThreshold(t *testing.T) {
	// Branch 3: D < 0, N >= cap -> N reported, interest carried
	result := nue.RepartitionDeficit(d(12000), d(5000), d(8000))

	assert.True(t, result.NetTaxable.Equal(d(12000)))
	assert.True(t, result.IsNegative, "historical behavior flags this branch negative")
	assert.True(t, result.CarryForward.Equal(d(8000)))
}

func TestRepartitionDeficit_InterestAboveRent_DeepDeficit(t *testing.T) {
	// Branch 4: D < 0, N < cap, N + I < cap -> floor reported
	result := nue.RepartitionDeficit(d(-20000), d(5000), d(8000))

	assert.True(t, result.NetTaxable.Equal(d(-10700)))
	assert.True(t, result.IsNegative)
	assert.True(t, result.CarryForward.Equal(d(9300)), "|-20000 + 10700| = 9300")
}

func TestRepartitionDeficit_InterestAboveRent_InterestCarrySuffices(t *testing.T) {
	// Branch 5: D < 0, N < cap, N + I >= cap -> N + I reported, I carried
	result := nue.RepartitionDeficit(d(4000), d(5000), d(8000))

	assert.True(t, result.NetTaxable.Equal(d(12000)), "4000 + 8000")
	assert.True(t, result.IsNegative)
	assert.True(t, result.CarryForward.Equal(d(8000)))
}

func TestRepartitionDeficit_ThresholdTies(t *testing.T) {
	// N exactly at the cap magnitude takes the >= arm.
	result := nue.RepartitionDeficit(d(10700), d(20000), d(2000))
	assert.True(t, result.NetTaxable.Equal(d(10700)))
	assert.True(t, result.CarryForward.IsZero())

	// D exactly zero takes the interest-exclusion arm.
	result = nue.RepartitionDeficit(d(6000), d(5000), d(5000))
	assert.True(t, result.IsNegative)
	assert.True(t, result.NetTaxable.Equal(d(11000)), "6000 + 5000, branch 5")
	assert.True(t, result.CarryForward.Equal(d(5000)))
}

// =============================================================================
// END-TO-END RÉEL YEARS
// =============================================================================

func TestComputeYear_Reel_FirstYearDeficit(t *testing.T) {
	// GIVEN: Rent 5000, year-1 deductible expenses totaling 20000
	//        (works 14000, tax 2000, management 1000, interest 2000,
	//        loan insurance 1000), no carry-in
	// WHEN: Computing fiscal year 1
	// THEN: N = -15000, D = 3000 > 0 -> floor -10700, carry 4300

	sim := newSim(fiscal.RegimenReel, map[string]float64{
		fiscal.FieldAnnualRent:     5000,
		fiscal.FieldWorksAmount:    14000,
		fiscal.FieldPropertyTax:    2000,
		fiscal.FieldManagementCost: 1000,
		fiscal.FieldLoanInterest:   2000,
		fiscal.FieldLoanInsurance:  1000,
	})
	result, err := nue.New().ComputeYear(sim, decimal.Zero, 1)
	require.NoError(t, err)

	assert.True(t, result.NetTaxable.Equal(d(-10700)), "got %s", result.NetTaxable)
	assert.True(t, result.IsNegative)
	assert.True(t, result.CarryForward.Equal(d(4300)), "got %s", result.CarryForward)
}

func TestComputeYear_Reel_WorksNotDeductibleAfterYearOne(t *testing.T) {
	sim := newSim(fiscal.RegimenReel, map[string]float64{
		fiscal.FieldAnnualRent:  30000,
		fiscal.FieldWorksAmount: 14000,
		fiscal.FieldPropertyTax: 2000,
	})
	computer := nue.New()

	year1, err := computer.ComputeYear(sim, decimal.Zero, 1)
	require.NoError(t, err)
	year2, err := computer.ComputeYear(sim, decimal.Zero, 2)
	require.NoError(t, err)

	assert.True(t, year1.NetTaxable.Equal(d(14000)), "30000 - 16000")
	assert.True(t, year2.NetTaxable.Equal(d(28000)), "30000 - 2000, works dropped")
}

func TestComputeYear_UnknownRegimen_FailsFast(t *testing.T) {
	sim := newSim("micro-foncier", map[string]float64{fiscal.FieldAnnualRent: 12000})
	_, err := nue.New().ComputeYear(sim, decimal.Zero, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, fiscal.ErrInvalidRegimen)
	var regErr *fiscal.InvalidRegimenError
	assert.ErrorAs(t, err, &regErr)
	assert.Equal(t, fiscal.Regimen("micro-foncier"), regErr.Regimen)
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestRepartitionDeficit_FloorAndCarryInvariants(t *testing.T) {
	// Sweep a grid of pre-cap amounts, rents, and interest costs:
	// the reported amount never drops below -10700 and the carry is
	// never negative, whatever branch fires.

	floor := d(-10700)
	for _, n := range []float64{-60000, -20000, -15000, -10700, -5000, 0, 4000, 10700, 25000} {
		for _, rent := range []float64{0, 3000, 5000, 12000} {
			for _, interest := range []float64{0, 2000, 5000, 9000} {
				result := nue.RepartitionDeficit(d(n), d(rent), d(interest))

				assert.True(t, result.NetTaxable.GreaterThanOrEqual(floor),
					"net %s below floor for N=%v R=%v I=%v", result.NetTaxable, n, rent, interest)
				assert.False(t, result.CarryForward.IsNegative(),
					"negative carry for N=%v R=%v I=%v", n, rent, interest)
			}
		}
	}
}

func TestComputeYear_Idempotent(t *testing.T) {
	sim := newSim(fiscal.RegimenReel, map[string]float64{
		fiscal.FieldAnnualRent:   5000,
		fiscal.FieldWorksAmount:  14000,
		fiscal.FieldLoanInterest: 2000,
	})
	computer := nue.New()

	first, err := computer.ComputeYear(sim, d(1000), 1)
	require.NoError(t, err)
	second, err := computer.ComputeYear(sim, d(1000), 1)
	require.NoError(t, err)

	assert.True(t, first.NetTaxable.Equal(second.NetTaxable))
	assert.Equal(t, first.IsNegative, second.IsNegative)
	assert.True(t, first.CarryForward.Equal(second.CarryForward))
}

// =============================================================================
// MULTI-YEAR CHAINING
// =============================================================================

func TestProject_CarryForwardReducesNextYear(t *testing.T) {
	// Year 1 produces the 4300 carry from the first-year-deficit case;
	// year 2 loses the works deduction but absorbs that carry.

	sim := newSim(fiscal.RegimenReel, map[string]float64{
		fiscal.FieldAnnualRent:     5000,
		fiscal.FieldWorksAmount:    14000,
		fiscal.FieldPropertyTax:    2000,
		fiscal.FieldManagementCost: 1000,
		fiscal.FieldLoanInterest:   2000,
		fiscal.FieldLoanInsurance:  1000,
	})

	results, err := fiscal.Project(nue.New(), sim, 2, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].CarryForward.Equal(d(4300)))

	// Year 2: expenses 6000, N = 5000 - 6000 - 4300 = -5300.
	// D = 3000 > 0 and N below the threshold: floor reported again.
	assert.True(t, results[1].NetTaxable.Equal(d(-10700)))
	assert.True(t, results[1].IsNegative)
	assert.True(t, results[1].CarryForward.Equal(d(5400)), "|-5300 + 10700|")
}
