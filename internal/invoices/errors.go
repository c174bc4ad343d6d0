package invoices

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MissingPaymentTermError reports an invoice party without a configured
// payment term.
type MissingPaymentTermError struct {
	Party string
}

func (e *MissingPaymentTermError) Error() string {
	return fmt.Sprintf("party %q has no payment term", e.Party)
}

// InvoiceTotalMismatchError reports an invoice whose computed total does
// not match the total recorded from its receivable line.
type InvoiceTotalMismatchError struct {
	Number   string
	Expected decimal.Decimal
	Computed decimal.Decimal
}

func (e *InvoiceTotalMismatchError) Error() string {
	return fmt.Sprintf("invoice %s: computed total %s does not match receivable total %s",
		e.Number, e.Computed.StringFixed(2), e.Expected.StringFixed(2))
}
