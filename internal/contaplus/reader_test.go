package contaplus_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabridge-dev/contabridge/internal/contaplus"
	"github.com/contabridge-dev/contabridge/internal/contaplus/contaplustest"
	"github.com/contabridge-dev/contabridge/internal/record"
)

func TestEntryLayout_Extent(t *testing.T) {
	assert.Equal(t, 297, contaplus.EntryLayout.Extent())
}

func TestReadAll_SampleFile(t *testing.T) {
	data, err := os.ReadFile("../../testdata/contaplus_sample.dat")
	require.NoError(t, err)

	lines, err := contaplus.ReadAll(data)
	require.NoError(t, err)
	assert.Len(t, lines, 6)

	first := lines[0]
	assert.Equal(t, "1", first.Asien())
	assert.Equal(t, "43000123", first.Account())
	assert.Equal(t, "FACTURA 25", first.Description())
	assert.Equal(t, "25", first.InvoiceNumber())
	assert.Equal(t, "F", first.Series())
	assert.Equal(t, "121.00", first.Debit().StringFixed(2))
	assert.True(t, first.Credit().IsZero())
	assert.Equal(t, 2024, first.Date().Year())
	assert.Equal(t, 10, first.Date().Day())
}

func TestRead_FiltersLinesWithoutAccount(t *testing.T) {
	data, err := os.ReadFile("../../testdata/contaplus_sample.dat")
	require.NoError(t, err)

	lines, err := contaplus.Read(data)
	require.NoError(t, err)
	assert.Len(t, lines, 5, "the administrative line has no account and is dropped")
	for _, l := range lines {
		assert.NotEmpty(t, l.Account())
	}
}

func TestReadAll_ShortLineAborts(t *testing.T) {
	data := contaplustest.File(
		contaplustest.LineSpec{Asien: "1", SubCta: "57200001", EuroDebe: "100.00"},
	)
	data = append(data, []byte("too short\n")...)

	_, err := contaplus.ReadAll(data)
	var derr *record.DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadAll_SkipsBlankLines(t *testing.T) {
	data := contaplustest.File(
		contaplustest.LineSpec{Asien: "1", SubCta: "57200001", EuroDebe: "100.00"},
	)
	data = append(data, []byte("\n\n")...)

	lines, err := contaplus.ReadAll(data)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestReadAll_CRLF(t *testing.T) {
	raw := contaplustest.Format(contaplustest.LineSpec{Asien: "1", SubCta: "57200001"})
	lines, err := contaplus.ReadAll([]byte(raw + "\r\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "57200001", lines[0].Account())
}

// Every Char field of a valid line round-trips its trimmed string form.
func TestExtract_RoundTripsTrimmedFields(t *testing.T) {
	spec := contaplustest.LineSpec{
		Asien:     "42",
		SubCta:    "43000123",
		Contra:    "70000001",
		Concepto:  "VENTA MOSTRADOR",
		Factura:   "1042",
		Serie:     "A",
		Documento: "DOC-9",
	}
	raw := contaplustest.Format(spec)
	rec, err := contaplus.EntryLayout.Extract(raw)
	require.NoError(t, err)

	want := map[string]string{
		contaplus.FieldAsien:     spec.Asien,
		contaplus.FieldSubCta:    spec.SubCta,
		contaplus.FieldContra:    spec.Contra,
		contaplus.FieldConcepto:  spec.Concepto,
		contaplus.FieldFactura:   spec.Factura,
		contaplus.FieldSerie:     spec.Serie,
		contaplus.FieldDocumento: spec.Documento,
	}
	for name, value := range want {
		assert.Equal(t, value, strings.TrimSpace(rec.Str(name)), name)
	}
}
