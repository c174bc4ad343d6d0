package contaplus

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contabridge-dev/contabridge/internal/record"
)

// Line is one decoded Contaplus entry record with typed accessors for the
// fields aggregation cares about.
type Line struct {
	rec record.Record
}

// Record exposes the underlying decoded record.
func (l Line) Record() record.Record { return l.rec }

// Asien returns the trimmed move id.
func (l Line) Asien() string { return strings.TrimSpace(l.rec.Str(FieldAsien)) }

// Date returns the entry date.
func (l Line) Date() time.Time { return l.rec.Date(FieldFecha) }

// Account returns the trimmed account code.
func (l Line) Account() string { return strings.TrimSpace(l.rec.Str(FieldSubCta)) }

// Counterpart returns the trimmed counter-account code.
func (l Line) Counterpart() string { return strings.TrimSpace(l.rec.Str(FieldContra)) }

// Description returns the trimmed concepto.
func (l Line) Description() string { return strings.TrimSpace(l.rec.Str(FieldConcepto)) }

// InvoiceNumber returns the trimmed factura field.
func (l Line) InvoiceNumber() string { return strings.TrimSpace(l.rec.Str(FieldFactura)) }

// Series returns the trimmed serie field.
func (l Line) Series() string { return strings.TrimSpace(l.rec.Str(FieldSerie)) }

// Document returns the trimmed documento field.
func (l Line) Document() string { return strings.TrimSpace(l.rec.Str(FieldDocumento)) }

// Debit returns the euro debit amount.
func (l Line) Debit() decimal.Decimal { return l.rec.Dec(FieldEuroDebe) }

// Credit returns the euro credit amount.
func (l Line) Credit() decimal.Decimal { return l.rec.Dec(FieldEuroHaber) }

// ReadAll decodes every non-blank line of data against EntryLayout. The
// first invalid line aborts the whole read; there is no partial recovery.
func ReadAll(data []byte) ([]Line, error) {
	var lines []Line
	for i, raw := range strings.Split(string(data), "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		rec, err := EntryLayout.Extract(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, Line{rec: rec})
	}
	return lines, nil
}

// Read decodes data and keeps only lines with a non-empty account code.
// Lines without one are administrative and not postable.
func Read(data []byte) ([]Line, error) {
	all, err := ReadAll(data)
	if err != nil {
		return nil, err
	}
	var lines []Line
	for _, l := range all {
		if l.Account() != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}
