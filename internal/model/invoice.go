package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceState is the lifecycle state of a customer invoice.
type InvoiceState string

const (
	InvoiceDraft  InvoiceState = "draft"
	InvoicePosted InvoiceState = "posted"
)

// InvoiceTypeOut marks outgoing (customer) invoices, the only kind this
// import produces.
const InvoiceTypeOut = "out"

// Invoice is a customer billing document aggregated from file lines
// sharing a series + invoice number.
type Invoice struct {
	Number   string // series + invoice id from the file
	Series   string
	Company  Company
	Currency string
	Origin   uuid.UUID
	Date     time.Time
	Type     string
	Journal  Journal
	Party    Party
	Lines    []InvoiceLine

	// SII-style classification keys, stamped from the tax rate that
	// applied to the group.
	BookKey       string
	OperationKey  string
	SubjectionKey string

	// ExpectedTotal is taken from the receivable (prefix 43) line and
	// checked against ComputedTotal after the host recomputes taxes.
	ExpectedTotal decimal.Decimal
	ComputedTotal decimal.Decimal

	PaymentInstrument string
	State             InvoiceState
}

// InvoiceLine is one billed row. Quantity is always one in this format;
// the amount is carried entirely by the signed unit price.
type InvoiceLine struct {
	Account     Account
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Description string
	Taxes       []Tax // empty or single-element
}

// Amount returns quantity times unit price.
func (l InvoiceLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// UntaxedAmount sums line amounts before tax.
func (inv *Invoice) UntaxedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range inv.Lines {
		total = total.Add(l.Amount())
	}
	return total
}

// TaxAmount sums per-line tax, each rounded to two places.
func (inv *Invoice) TaxAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range inv.Lines {
		for _, tax := range l.Taxes {
			total = total.Add(l.Amount().Mul(tax.Rate).Div(decimal.NewFromInt(100)).Round(2))
		}
	}
	return total
}

// RecomputeTotal refreshes ComputedTotal from lines and taxes. Hosts with
// their own tax engine overwrite this result in UpdateTaxes.
func (inv *Invoice) RecomputeTotal() {
	inv.ComputedTotal = inv.UntaxedAmount().Add(inv.TaxAmount())
}
