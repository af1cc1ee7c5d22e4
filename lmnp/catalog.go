package lmnp

import "github.com/warp/fiscal-engine/fiscal"

// DefaultCatalog returns the stock deductible-expense catalog for
// furnished rental. Initial works are amortized, never expensed, so
// unlike bare rental they appear in neither year bucket.
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
		FiscalYear1: recurring,
		FiscalYear2: recurring,
	}
}
