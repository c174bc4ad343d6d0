package invoices_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabridge-dev/contabridge/internal/contaplus/contaplustest"
	"github.com/contabridge-dev/contabridge/internal/host"
	"github.com/contabridge-dev/contabridge/internal/host/memory"
	"github.com/contabridge-dev/contabridge/internal/invoices"
	"github.com/contabridge-dev/contabridge/internal/model"
	"github.com/contabridge-dev/contabridge/internal/rules"
)

var company = model.Company{Code: "EMP1", Name: "Empresa Uno", Currency: "EUR"}

func testHost() *memory.Host {
	return memory.NewHost(
		[]model.Account{
			{Code: "43000000", Name: "Clientes", PartyRequired: true},
			{Code: "44000000", Name: "Deudores varios"},
			{Code: "47700000", Name: "IVA repercutido"},
			{Code: "70000001", Name: "Ventas"},
		},
		[]model.Party{
			{
				Code: "EMP1-43000123", Name: "Cliente 123", PaymentTerm: "30d",
				ReceivableInstrument: "direct_debit", PayableInstrument: "transfer",
			},
			{Code: "EMP1-43000456", Name: "Cliente sin plazo"},
		},
	)
}

func newEngine(h *memory.Host) (*invoices.Engine, invoices.Options) {
	opts := invoices.Options{
		Company: company,
		Journal: model.Journal{Code: "VTA", Type: "revenue"},
		Origin:  uuid.New(),
	}
	return invoices.NewEngine(rules.Default(), h.Services(), zerolog.Nop()), opts
}

func TestAggregate_StandardRateInvoice(t *testing.T) {
	h := testHost()
	engine, opts := newEngine(h)
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "25", SubCta: "43000123", Concepto: "FACTURA 25", EuroDebe: "121.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "25", SubCta: "47700000", Concepto: "FACTURA 25", EuroHaber: "21.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "25", SubCta: "70000001", Concepto: "FACTURA 25", EuroHaber: "100.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	require.Len(t, result, 1)

	inv := result[0]
	assert.Equal(t, "F25", inv.Number)
	assert.Equal(t, "F", inv.Series)
	assert.Equal(t, model.InvoiceTypeOut, inv.Type)
	assert.Equal(t, "Cliente 123", inv.Party.Name)
	assert.Equal(t, "121.00", inv.ExpectedTotal.StringFixed(2))

	require.Len(t, inv.Lines, 1, "the 43 and 477 lines produce no invoice lines")
	line := inv.Lines[0]
	assert.Equal(t, "1", line.Quantity.String())
	assert.Equal(t, "100.00", line.UnitPrice.StringFixed(2))
	require.Len(t, line.Taxes, 1)
	assert.Equal(t, "iva_21", line.Taxes[0].Template)

	assert.Equal(t, "E", inv.BookKey)
	assert.Equal(t, "F1", inv.OperationKey)
	assert.Equal(t, "S1", inv.SubjectionKey)
	assert.Equal(t, "direct_debit", inv.PaymentInstrument)

	inv.RecomputeTotal()
	assert.NoError(t, invoices.ValidateTotals(result))
}

func TestAggregate_ZeroRateInvoice(t *testing.T) {
	engine, opts := newEngine(testHost())
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "26", SubCta: "43000123", Concepto: "FACTURA 26", EuroDebe: "100.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "26", SubCta: "70000001", Concepto: "FACTURA 26", EuroHaber: "100.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	require.Len(t, result, 1)

	inv := result[0]
	require.Len(t, inv.Lines, 1)
	require.Len(t, inv.Lines[0].Taxes, 1)
	assert.Equal(t, "iva_0", inv.Lines[0].Taxes[0].Template)
	assert.Equal(t, "E1", inv.SubjectionKey)

	inv.RecomputeTotal()
	assert.NoError(t, invoices.ValidateTotals(result))
}

func TestAggregate_CreditNoteSeriesFlipsSigns(t *testing.T) {
	engine, opts := newEngine(testHost())
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "A", Factura: "7", SubCta: "43000123", Concepto: "ABONO", EuroHaber: "121.00"},
		contaplustest.LineSpec{Serie: "A", Factura: "7", SubCta: "47700000", Concepto: "ABONO", EuroDebe: "21.00"},
		contaplustest.LineSpec{Serie: "A", Factura: "7", SubCta: "70000001", Concepto: "ABONO", EuroHaber: "100.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	require.Len(t, result, 1)

	inv := result[0]
	assert.Equal(t, "A7", inv.Number)
	assert.Equal(t, "-121.00", inv.ExpectedTotal.StringFixed(2))
	assert.Equal(t, "-100.00", inv.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "R1", inv.OperationKey)
	assert.Equal(t, "transfer", inv.PaymentInstrument, "negative total picks the payable instrument")

	inv.RecomputeTotal()
	assert.NoError(t, invoices.ValidateTotals(result))
}

func TestAggregate_AdjustmentDescriptionFlipsPrice(t *testing.T) {
	engine, opts := newEngine(testHost())
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "27", SubCta: "70000001", Concepto: "DESCUADRE CAJA", EuroHaber: "10.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "-10.00", result[0].Lines[0].UnitPrice.StringFixed(2))
}

func TestAggregate_ZeroTaxDescriptionKeepsZeroRate(t *testing.T) {
	engine, opts := newEngine(testHost())
	// The group context switches to the standard rate, but the SUPLIDOS
	// line already carries the zero rate and keeps it.
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "28", SubCta: "47700000", Concepto: "FACTURA 28", EuroHaber: "21.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "28", SubCta: "70000001", Concepto: "SUPLIDOS", EuroHaber: "30.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "28", SubCta: "70000001", Concepto: "FACTURA 28", EuroHaber: "100.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	require.Len(t, result, 1)

	inv := result[0]
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "iva_0", inv.Lines[0].Taxes[0].Template)
	assert.Equal(t, "iva_21", inv.Lines[1].Taxes[0].Template)
}

func TestAggregate_MissingPaymentTerm(t *testing.T) {
	engine, opts := newEngine(testHost())
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "29", SubCta: "43000456", Concepto: "FACTURA 29", EuroDebe: "50.00"},
	)

	_, err := engine.Aggregate(lines, opts)
	var merr *invoices.MissingPaymentTermError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "EMP1-43000456", merr.Party)
}

func TestAggregate_DiscardsGroupsWithoutLines(t *testing.T) {
	engine, opts := newEngine(testHost())
	lines := contaplustest.MustLines(t,
		// Only a receivable and a VAT line: no invoice lines, group dropped.
		contaplustest.LineSpec{Serie: "F", Factura: "30", SubCta: "43000123", Concepto: "FACTURA 30", EuroDebe: "121.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "30", SubCta: "47700000", Concepto: "FACTURA 30", EuroHaber: "21.00"},
		// A full group after it survives.
		contaplustest.LineSpec{Serie: "F", Factura: "31", SubCta: "43000123", Concepto: "FACTURA 31", EuroDebe: "100.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "31", SubCta: "70000001", Concepto: "FACTURA 31", EuroHaber: "100.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "F31", result[0].Number)
}

func TestAggregate_GroupsBySeriesAndNumber(t *testing.T) {
	engine, opts := newEngine(testHost())
	// Same factura in two series yields two invoices.
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "5", SubCta: "70000001", Concepto: "FACTURA 5", EuroHaber: "10.00"},
		contaplustest.LineSpec{Serie: "B", Factura: "5", SubCta: "70000001", Concepto: "FACTURA 5", EuroHaber: "20.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "5", SubCta: "70000001", Concepto: "FACTURA 5", EuroHaber: "30.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "F5", result[0].Number)
	assert.Len(t, result[0].Lines, 2)
	assert.Equal(t, "B5", result[1].Number)
	assert.Len(t, result[1].Lines, 1)
}

func TestValidateTotals_Mismatch(t *testing.T) {
	engine, opts := newEngine(testHost())
	// Receivable says 130.00 but the only revenue line is 100.00 at the
	// zero rate.
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "32", SubCta: "43000123", Concepto: "FACTURA 32", EuroDebe: "130.00"},
		contaplustest.LineSpec{Serie: "F", Factura: "32", SubCta: "70000001", Concepto: "FACTURA 32", EuroHaber: "100.00"},
	)

	result, err := engine.Aggregate(lines, opts)
	require.NoError(t, err)
	result[0].RecomputeTotal()

	err = invoices.ValidateTotals(result)
	var terr *invoices.InvoiceTotalMismatchError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "F32", terr.Number)
	assert.Equal(t, "130.00", terr.Expected.StringFixed(2))
	assert.Equal(t, "100.00", terr.Computed.StringFixed(2))
}

func TestAggregate_UnknownPartyAborts(t *testing.T) {
	engine, opts := newEngine(testHost())
	lines := contaplustest.MustLines(t,
		contaplustest.LineSpec{Serie: "F", Factura: "33", SubCta: "43000999", Concepto: "FACTURA 33", EuroDebe: "10.00"},
	)

	_, err := engine.Aggregate(lines, opts)
	var perr *host.PartyNotFoundError
	assert.ErrorAs(t, err, &perr)
}
