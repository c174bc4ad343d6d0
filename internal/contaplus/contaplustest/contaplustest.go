// Package contaplustest builds well-formed Contaplus entry lines for
// tests in other packages.
package contaplustest

import (
	"strings"
	"testing"

	"github.com/contabridge-dev/contabridge/internal/contaplus"
)

// LineSpec holds the fields a test cares about; everything else is left
// blank. Amounts are plain strings and may use either encoding the format
// allows ("100.00" or a bare subunit run like "0000000010000").
type LineSpec struct {
	Asien     string
	Fecha     string // YYYYMMDD, defaults to 20240115
	SubCta    string
	Contra    string
	Concepto  string
	Factura   string
	Serie     string
	Documento string
	EuroDebe  string
	EuroHaber string
}

// Format renders the spec as one 297-character line.
func Format(spec LineSpec) string {
	buf := []byte(strings.Repeat(" ", contaplus.EntryLayout.Extent()))

	fecha := spec.Fecha
	if fecha == "" {
		fecha = "20240115"
	}

	place := func(start, length int, value string) {
		if len(value) > length {
			value = value[:length]
		}
		copy(buf[start-1:start-1+length], value)
	}
	place(1, 6, spec.Asien)
	place(7, 8, fecha)
	place(15, 12, spec.SubCta)
	place(27, 12, spec.Contra)
	place(55, 25, spec.Concepto)
	place(96, 8, spec.Factura)
	place(130, 10, spec.Documento)
	place(212, 1, spec.Serie)
	place(239, 16, spec.EuroDebe)
	place(255, 16, spec.EuroHaber)

	return string(buf)
}

// File joins specs into raw file content.
func File(specs ...LineSpec) []byte {
	lines := make([]string, len(specs))
	for i, s := range specs {
		lines[i] = Format(s)
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// MustLines decodes specs through the production reader, failing the test
// on any decode error.
func MustLines(t *testing.T, specs ...LineSpec) []contaplus.Line {
	t.Helper()
	lines, err := contaplus.Read(File(specs...))
	if err != nil {
		t.Fatalf("building fixture lines: %v", err)
	}
	return lines
}
