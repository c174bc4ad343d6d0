// Package invoices folds decoded Contaplus lines into outgoing customer
// invoices keyed by series + invoice number.
package invoices

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/contabridge-dev/contabridge/internal/contaplus"
	"github.com/contabridge-dev/contabridge/internal/host"
	"github.com/contabridge-dev/contabridge/internal/model"
	"github.com/contabridge-dev/contabridge/internal/rules"
)

// SII-style classification keys stamped at group finalization.
const (
	bookKeyIssued      = "E"
	operationInvoice   = "F1"
	operationRectified = "R1"
	subjectionSubject  = "S1"
	subjectionExempt   = "E1"
)

// Engine aggregates lines into invoices.
type Engine struct {
	rules *rules.Rules
	host  host.Services
	log   zerolog.Logger
}

// NewEngine creates an invoice aggregation engine.
func NewEngine(r *rules.Rules, svc host.Services, log zerolog.Logger) *Engine {
	return &Engine{rules: r, host: svc, log: log}
}

// Options carries the per-import context.
type Options struct {
	Company model.Company
	Journal model.Journal
	Origin  uuid.UUID
}

// builder is the per-group fold state: the invoice under construction
// plus the running tax context. The context starts at the zero rate and a
// VAT line switches it to the standard rate for the rest of the group.
type builder struct {
	inv          *model.Invoice
	taxCtx       model.Tax
	usedStandard bool
	creditNote   bool
}

// Aggregate folds lines into one invoice per series + invoice number,
// finalizing every group at end-of-input. Groups that produced no lines
// are discarded. Nothing is persisted here.
func (e *Engine) Aggregate(lines []contaplus.Line, opts Options) ([]*model.Invoice, error) {
	zeroTax, err := e.host.Taxes.Find(e.rules.ZeroTaxTemplate, opts.Company)
	if err != nil {
		return nil, err
	}
	standardTax, err := e.host.Taxes.Find(e.rules.StandardTaxTemplate, opts.Company)
	if err != nil {
		return nil, err
	}

	builders := make(map[string]*builder)
	var order []string

	for i, line := range lines {
		key := line.Series() + line.InvoiceNumber()
		b, ok := builders[key]
		if !ok {
			b = &builder{
				inv: &model.Invoice{
					Number:   key,
					Series:   line.Series(),
					Company:  opts.Company,
					Currency: opts.Company.Currency,
					Origin:   opts.Origin,
					Date:     line.Date(),
					Type:     model.InvoiceTypeOut,
					Journal:  opts.Journal,
					State:    model.InvoiceDraft,
				},
				taxCtx:     zeroTax,
				creditNote: e.rules.IsCreditNoteSeries(line.Series()),
			}
			builders[key] = b
			order = append(order, key)
		}
		if err := e.foldLine(b, line, standardTax, zeroTax, opts); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	var result []*model.Invoice
	for _, key := range order {
		b := builders[key]
		if len(b.inv.Lines) == 0 {
			e.log.Debug().Str("invoice", key).Msg("discarding group without lines")
			continue
		}
		finalize(b)
		result = append(result, b.inv)
	}

	e.log.Debug().Int("invoices", len(result)).Int("lines", len(lines)).Msg("aggregated invoices")
	return result, nil
}

func (e *Engine) foldLine(b *builder, line contaplus.Line, standardTax, zeroTax model.Tax, opts Options) error {
	code := line.Account()

	switch {
	case e.rules.IsVAT(code):
		// VAT control lines only move the tax context.
		b.taxCtx = standardTax
		b.usedStandard = true
		return nil

	case e.rules.IsReceivable(code):
		return e.foldReceivable(b, line, opts)

	case e.rules.IsRevenue(code):
		return e.foldRevenue(b, line, zeroTax, opts)

	default:
		e.log.Debug().Str("account", code).Str("invoice", b.inv.Number).Msg("line outside invoice routing, skipped")
		return nil
	}
}

// foldReceivable resolves the invoice party from the prefix-43 line and
// records the invoice's expected total.
func (e *Engine) foldReceivable(b *builder, line contaplus.Line, opts Options) error {
	code := e.rules.NormalizeAccount(line.Account())
	party, err := e.host.Parties.Find(opts.Company.Code+"-"+code, opts.Company)
	if err != nil {
		return err
	}
	if party.PaymentTerm == "" {
		return &MissingPaymentTermError{Party: party.Code}
	}
	b.inv.Party = party

	total := line.Debit().Add(line.Credit())
	if b.creditNote {
		total = total.Neg()
	}
	b.inv.ExpectedTotal = b.inv.ExpectedTotal.Add(total)
	return nil
}

// foldRevenue creates one invoice line from a revenue (or auxiliary)
// line. The amount comes from the credit column as a signed unit price.
func (e *Engine) foldRevenue(b *builder, line contaplus.Line, zeroTax model.Tax, opts Options) error {
	code := e.rules.NormalizeAccount(line.Account())
	_, effective := e.rules.DeriveParty(code, opts.Company.Code)
	account, err := e.host.Accounts.Find(effective, opts.Company)
	if err != nil {
		return err
	}

	desc := line.Description()
	price := line.Credit()
	if desc == e.rules.AdjustmentDescription {
		price = price.Neg()
	}
	if b.creditNote {
		price = price.Neg()
	}

	var taxes []model.Tax
	if desc == e.rules.ZeroTaxDescription {
		taxes = []model.Tax{zeroTax}
	}

	b.inv.Lines = append(b.inv.Lines, model.InvoiceLine{
		Account:     account,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   price,
		Description: desc,
		Taxes:       taxes,
	})
	return nil
}

// finalize defaults missing line taxes to the group's tax context, stamps
// the classification keys, and picks the payment instrument from the sign
// of the untaxed amount.
func finalize(b *builder) {
	inv := b.inv
	for i := range inv.Lines {
		if len(inv.Lines[i].Taxes) == 0 {
			inv.Lines[i].Taxes = []model.Tax{b.taxCtx}
		}
	}

	inv.BookKey = bookKeyIssued
	if b.creditNote {
		inv.OperationKey = operationRectified
	} else {
		inv.OperationKey = operationInvoice
	}
	if b.usedStandard {
		inv.SubjectionKey = subjectionSubject
	} else {
		inv.SubjectionKey = subjectionExempt
	}

	untaxed := inv.UntaxedAmount()
	switch {
	case untaxed.IsPositive():
		inv.PaymentInstrument = inv.Party.ReceivableInstrument
	case untaxed.IsNegative():
		inv.PaymentInstrument = inv.Party.PayableInstrument
	}
}

// ValidateTotals checks every invoice's computed total against the total
// recorded from its receivable line. Run it after the host has
// recomputed taxes; the first mismatch fails the whole batch.
func ValidateTotals(invoices []*model.Invoice) error {
	for _, inv := range invoices {
		if !inv.ComputedTotal.Equal(inv.ExpectedTotal) {
			return &InvoiceTotalMismatchError{
				Number:   inv.Number,
				Expected: inv.ExpectedTotal,
				Computed: inv.ComputedTotal,
			}
		}
	}
	return nil
}
