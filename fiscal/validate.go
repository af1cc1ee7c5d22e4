package fiscal

// Boundary validation. The pure compute path assumes well-formed numeric
// inputs; hosts call these at their edge (HTTP handlers, factory) so
// out-of-domain values fail with an explicit error instead of flowing
// through the arithmetic.

// nonNegativeFields are the inputs that never make sense below zero.
var nonNegativeFields = []string{
	FieldAnnualRent,
	FieldPurchasePrice,
	FieldWorksAmount,
	FieldLandlordCharges,
	FieldManagementCost,
	FieldGLIInsurance,
	FieldPNOInsurance,
	FieldPropertyTax,
	FieldLoanInterest,
	FieldLoanInsurance,
}

// ValidateSimulation rejects unknown regimens and negative amounts.
func ValidateSimulation(sim Simulation) error {
	if sim.Regimen != RegimenForfait && sim.Regimen != RegimenReel {
		return &InvalidRegimenError{Regimen: sim.Regimen}
	}
	for _, field := range nonNegativeFields {
		if sim.Field(field).IsNegative() {
			return &InvalidInputError{Field: field, Reason: "must not be negative"}
		}
	}
	return nil
}

// ValidateFiscalYear rejects year indexes before the first year of
// ownership.
func ValidateFiscalYear(fiscalYear int) error {
	if fiscalYear < 1 {
		return &InvalidInputError{Field: "fiscalYear", Reason: "must be >= 1"}
	}
	return nil
}

// ValidateFamily rejects unknown regime families.
func ValidateFamily(family Family) error {
	if family != FamilyNue && family != FamilyLmnp {
		return &InvalidFamilyError{Family: family}
	}
	return nil
}
