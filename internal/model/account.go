package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a ledger account in the host chart of accounts.
type Account struct {
	Code string
	Name string
	// PartyRequired marks control accounts that must carry a party on
	// every move line (hosts that track this flag set it; others leave
	// it false and the subledger prefix table decides instead).
	PartyRequired bool
}

// Party is a customer/vendor resolved from a subledger account code.
type Party struct {
	Code        string
	Name        string
	PaymentTerm string
	// Payment instruments, both optional. Receivable is the buyer-side
	// instrument used when an invoice total is positive, Payable the
	// seller-side one used for credit notes.
	ReceivableInstrument string
	PayableInstrument    string
}

// Journal identifies a host journal (e.g. the general journal).
type Journal struct {
	Code string
	Name string
	Type string
}

// Period is an open fiscal period containing a move date.
type Period struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Contains reports whether date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}

// Tax is a host tax resolved from a template code.
type Tax struct {
	Template string
	Name     string
	Rate     decimal.Decimal // percentage, e.g. 21 for standard Spanish VAT
}

// IsZero reports whether the tax is the zero-rate tax.
func (t Tax) IsZero() bool {
	return t.Rate.IsZero()
}

// Company is the accounting company an import runs against. Code prefixes
// derived party keys.
type Company struct {
	Code     string
	Name     string
	Currency string
}
