package nue

import "github.com/warp/fiscal-engine/fiscal"

// DefaultCatalog returns the stock deductible-expense catalog for bare
// rental. Initial works are deductible in the first year of ownership
// only; the recurring charges apply every year.
func DefaultCatalog() fiscal.ExpenseCatalog {
	recurring := []string{
		fiscal.FieldLandlordCharges,
		fiscal.FieldManagementCost,
		fiscal.FieldGLIInsurance,
		fiscal.FieldPNOInsurance,
		fiscal.FieldPropertyTax,
		fiscal.FieldLoanInterest,
		fiscal.FieldLoanInsurance,
	}
	return fiscal.ExpenseCatalog{
		FiscalYear1: append([]string{fiscal.FieldWorksAmount}, recurring...),
		FiscalYear2: recurring,
	}
}
