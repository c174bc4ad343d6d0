package importlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() Entry {
	return Entry{
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Filename:  "export_enero.dat",
		Mode:      "moves",
		Moves:     12,
		Status:    "imported",
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	e := sampleEntry()
	row := MarshalEntry(e)
	require.Len(t, row, numFields)

	back, err := UnmarshalEntry(row)
	require.NoError(t, err)
	assert.Equal(t, e, back)
}

func TestUnmarshal_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a", "b"})
	assert.Error(t, err)
}

func TestUnmarshal_BadTimestamp(t *testing.T) {
	row := MarshalEntry(sampleEntry())
	row[colTimestamp] = "yesterday"
	_, err := UnmarshalEntry(row)
	assert.ErrorContains(t, err, "parsing timestamp")
}

func TestAppendRead(t *testing.T) {
	root := t.TempDir()

	first := sampleEntry()
	require.NoError(t, Append(root, []Entry{first}))

	second := sampleEntry()
	second.Filename = "ventas.dat"
	second.Mode = "invoices"
	second.Moves = 0
	second.Invoices = 4
	second.Status = "validated"
	require.NoError(t, Append(root, []Entry{second}))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "export_enero.dat", entries[0].Filename)
	assert.Equal(t, "invoices", entries[1].Mode)
	assert.Equal(t, 4, entries[1].Invoices)
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}
