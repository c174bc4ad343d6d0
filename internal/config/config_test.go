package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("EMP1", "Empresa Uno SL")
	cfg.Import.RulesFile = "rules.yaml"

	path := filepath.Join(t.TempDir(), "contabridge.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Company.Code, got.Company.Code)
	assert.Equal(t, cfg.Company.Name, got.Company.Name)
	assert.Equal(t, cfg.Company.Currency, got.Company.Currency)
	assert.Equal(t, cfg.Import.JournalType, got.Import.JournalType)
	assert.Equal(t, cfg.Import.MovePrefix, got.Import.MovePrefix)
	assert.Equal(t, "rules.yaml", got.Import.RulesFile)
	assert.Equal(t, cfg.Books.Accounts, got.Books.Accounts)
	assert.Equal(t, cfg.Books.Parties, got.Books.Parties)
}

func TestDefaults(t *testing.T) {
	cfg := Default("EMP1", "Empresa Uno SL")

	assert.Equal(t, "EMP1", cfg.Company.Code)
	assert.Equal(t, "Empresa Uno SL", cfg.Company.Name)
	assert.Equal(t, "EUR", cfg.Company.Currency)
	assert.Equal(t, "general", cfg.Import.JournalType)
	assert.Equal(t, "CON", cfg.Import.MovePrefix)
	assert.Empty(t, cfg.Import.RulesFile)
	assert.Equal(t, "books/accounts.csv", cfg.Books.Accounts)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("EMP1", "Empresa Uno SL")
	path := filepath.Join(t.TempDir(), "contabridge.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "code: EMP1")
	assert.Contains(t, contents, "journal_type: general")
	assert.Contains(t, contents, "move_prefix: CON")
	assert.Contains(t, contents, "currency: EUR")
}
