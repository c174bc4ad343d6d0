package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAccount_Correction(t *testing.T) {
	r := Default()
	assert.Equal(t, "40099999", r.NormalizeAccount("4000"))
	assert.Equal(t, "40099999", r.NormalizeAccount("  4000  "))
}

func TestNormalizeAccount_Passthrough(t *testing.T) {
	r := Default()
	assert.Equal(t, "43000123", r.NormalizeAccount("43000123"))
	assert.Equal(t, "57200001", r.NormalizeAccount("57200001"))
}

func TestDeriveParty_Subledger(t *testing.T) {
	r := Default()
	key, account := r.DeriveParty("43000123", "EMP1")
	assert.Equal(t, "EMP1-43000123", key)
	assert.Equal(t, "43000000", account)

	key, account = r.DeriveParty("40099999", "EMP1")
	assert.Equal(t, "EMP1-40099999", key)
	assert.Equal(t, "40000000", account)
}

func TestDeriveParty_GeneralLedger(t *testing.T) {
	r := Default()
	key, account := r.DeriveParty("57200001", "EMP1")
	assert.Empty(t, key)
	assert.Equal(t, "57200001", account)
}

func TestPrefixRouting(t *testing.T) {
	r := Default()
	assert.True(t, r.IsReceivable("43000123"))
	assert.False(t, r.IsReceivable("44000001"))
	assert.True(t, r.IsRevenue("70000001"))
	assert.True(t, r.IsRevenue("44000001"))
	assert.False(t, r.IsRevenue("47700000"))
	assert.True(t, r.IsVAT("47700000"))
	assert.False(t, r.IsVAT("43000123"))
}

func TestIsCreditNoteSeries(t *testing.T) {
	r := Default()
	assert.True(t, r.IsCreditNoteSeries("A"))
	assert.False(t, r.IsCreditNoteSeries("F"))
}

func TestLoadSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")

	orig := Default()
	orig.AccountCorrections["5700"] = "57000001"
	require.NoError(t, Save(path, orig))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig, loaded)
}

func TestLoad_Partial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "account_corrections:\n  \"4000\": \"40099999\"\nsubledger_prefixes: [\"40\", \"43\"]\ncontrol_account_length: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "40099999", r.NormalizeAccount("4000"))
	key, _ := r.DeriveParty("43000123", "EMP1")
	assert.Equal(t, "EMP1-43000123", key)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
