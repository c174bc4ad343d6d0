// Package record decodes fixed-width text records against a declarative
// field layout.
package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects the decoder applied to a field's byte range.
type Kind int

const (
	Char Kind = iota
	Date
	Integer
	Decimal
)

const dateFormat = "20060102"

// Field is one entry of a layout: a 1-based byte offset, a length, a name
// and a decoder kind.
type Field struct {
	Start  int
	Length int
	Name   string
	Kind   Kind
}

// Layout is an ordered set of fields describing one record format.
// Overlapping ranges are not rejected; layouts are trusted by convention.
type Layout struct {
	fields []Field
	extent int
}

// NewLayout builds a Layout from fields. The extent is the highest byte
// position any field reaches.
func NewLayout(fields ...Field) Layout {
	extent := 0
	for _, f := range fields {
		if end := f.Start + f.Length - 1; end > extent {
			extent = end
		}
	}
	return Layout{fields: fields, extent: extent}
}

// Extent returns the minimum line length the layout requires.
func (l Layout) Extent() int {
	return l.extent
}

// Fields returns the layout's fields in declaration order.
func (l Layout) Fields() []Field {
	return l.fields
}

// Valid reports whether line is long enough for every field to be sliced.
func (l Layout) Valid(line string) bool {
	return len(line) >= l.extent
}

// DecodeError reports a line that could not be decoded against a layout.
type DecodeError struct {
	Field  string // empty when the whole line is invalid
	Value  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid record: %s", e.Reason)
	}
	return fmt.Sprintf("field %s: %s: %q", e.Field, e.Reason, e.Value)
}

// Record is the immutable field-value mapping decoded from one line.
type Record struct {
	values map[string]any
}

// Extract decodes line against the layout. It returns a DecodeError if the
// line is too short or any field fails its decoder.
func (l Layout) Extract(line string) (Record, error) {
	if !l.Valid(line) {
		return Record{}, &DecodeError{
			Reason: fmt.Sprintf("line is %d bytes, layout needs %d", len(line), l.extent),
		}
	}

	values := make(map[string]any, len(l.fields))
	for _, f := range l.fields {
		raw := line[f.Start-1 : f.Start-1+f.Length]
		v, err := decodeField(f, raw)
		if err != nil {
			return Record{}, err
		}
		values[f.Name] = v
	}
	return Record{values: values}, nil
}

func decodeField(f Field, raw string) (any, error) {
	switch f.Kind {
	case Char:
		// Raw slice; trimming is the caller's concern.
		return raw, nil
	case Date:
		s := strings.TrimSpace(raw)
		t, err := time.Parse(dateFormat, s)
		if err != nil {
			return nil, &DecodeError{Field: f.Name, Value: raw, Reason: "not a YYYYMMDD date"}
		}
		return t, nil
	case Integer:
		s := strings.TrimSpace(raw)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, &DecodeError{Field: f.Name, Value: raw, Reason: "not an integer"}
		}
		return n, nil
	case Decimal:
		d, err := parseAmount(raw)
		if err != nil {
			return nil, &DecodeError{Field: f.Name, Value: raw, Reason: "not a decimal"}
		}
		return d, nil
	}
	return nil, &DecodeError{Field: f.Name, Value: raw, Reason: "unknown field kind"}
}

// parseAmount handles the two encodings Contaplus amount fields use: an
// explicit decimal point ("100.00"), or a bare digit run holding subunits
// ("0000000010000" is 100.00). A trailing sign is moved to the front so
// decimal parsing preserves it.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	if last := s[len(s)-1]; last == '-' || last == '+' {
		s = string(last) + s[:len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !strings.Contains(s, ".") {
		d = d.Shift(-2)
	}
	return d, nil
}

// Str returns a Char field's raw value.
func (r Record) Str(name string) string {
	v, _ := r.values[name].(string)
	return v
}

// Date returns a Date field's value.
func (r Record) Date(name string) time.Time {
	v, _ := r.values[name].(time.Time)
	return v
}

// Int returns an Integer field's value.
func (r Record) Int(name string) int {
	v, _ := r.values[name].(int)
	return v
}

// Dec returns a Decimal field's value.
func (r Record) Dec(name string) decimal.Decimal {
	v, ok := r.values[name].(decimal.Decimal)
	if !ok {
		return decimal.Zero
	}
	return v
}
