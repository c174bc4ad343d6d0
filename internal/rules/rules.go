// Package rules holds the per-installation normalization data the import
// engines run on: account corrections, subledger prefixes, descriptor
// sets and tax template codes. All of it is plain configuration so the
// engines stay pure.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is the normalization configuration for one installation.
type Rules struct {
	// AccountCorrections maps known-bad legacy codes to corrected ones.
	// Corrections are additive; unmapped codes pass through.
	AccountCorrections map[string]string `yaml:"account_corrections"`

	// SubledgerPrefixes are the account-code prefixes that denote a
	// specific customer/vendor rather than a general-ledger account.
	SubledgerPrefixes []string `yaml:"subledger_prefixes"`

	// ControlAccountLength is the width codes are zero-filled to when a
	// subledger code collapses to its control account.
	ControlAccountLength int `yaml:"control_account_length"`

	// CashDescriptions are descriptors of cash-register/manual lines
	// whose whole amount is routed to the debit side.
	CashDescriptions []string `yaml:"cash_descriptions"`

	// CashClosingDescription marks till-closing entries balanced against
	// the running totals of the whole import.
	CashClosingDescription string `yaml:"cash_closing_description"`

	// AdjustmentDescription flips the sign of an invoice line's price.
	AdjustmentDescription string `yaml:"adjustment_description"`

	// ZeroTaxDescription forces the zero-rate tax onto an invoice line.
	ZeroTaxDescription string `yaml:"zero_tax_description"`

	// CreditNoteSeries flip the sign of invoice totals and line prices.
	CreditNoteSeries []string `yaml:"credit_note_series"`

	ReceivablePrefix string   `yaml:"receivable_prefix"`
	RevenuePrefixes  []string `yaml:"revenue_prefixes"`
	VATPrefix        string   `yaml:"vat_prefix"`

	ZeroTaxTemplate     string `yaml:"zero_tax_template"`
	StandardTaxTemplate string `yaml:"standard_tax_template"`
}

// Default returns the rules observed in the reference installation.
func Default() *Rules {
	return &Rules{
		AccountCorrections: map[string]string{
			"4000": "40099999",
		},
		SubledgerPrefixes:      []string{"40", "41", "43", "44"},
		ControlAccountLength:   8,
		CashDescriptions:       []string{"PAGO ITV", "VENTAS CONTADO", "TRASPASO CAJA"},
		CashClosingDescription: "CIERRE CAJA",
		AdjustmentDescription:  "DESCUADRE CAJA",
		ZeroTaxDescription:     "SUPLIDOS",
		CreditNoteSeries:       []string{"A"},
		ReceivablePrefix:       "43",
		RevenuePrefixes:        []string{"7", "44"},
		VATPrefix:              "477",
		ZeroTaxTemplate:        "iva_0",
		StandardTaxTemplate:    "iva_21",
	}
}

// Load reads a rules YAML file from disk.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return &r, nil
}

// Save writes rules to a YAML file.
func Save(path string, r *Rules) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// NormalizeAccount applies the correction table to a raw account code.
func (r *Rules) NormalizeAccount(code string) string {
	code = strings.TrimSpace(code)
	if corrected, ok := r.AccountCorrections[code]; ok {
		return corrected
	}
	return code
}

// DeriveParty splits a normalized account code into an optional party key
// and the effective account to look up. Subledger codes yield the key
// "<companyCode>-<code>" and collapse to their zero-filled control
// account; anything else passes through with no party.
func (r *Rules) DeriveParty(code, companyCode string) (partyKey, account string) {
	for _, prefix := range r.SubledgerPrefixes {
		if len(code) >= len(prefix) && strings.HasPrefix(code, prefix) {
			return companyCode + "-" + code, r.ControlAccount(prefix)
		}
	}
	return "", code
}

// ControlAccount returns the zero-filled control account for a prefix.
func (r *Rules) ControlAccount(prefix string) string {
	if len(prefix) >= r.ControlAccountLength {
		return prefix
	}
	return prefix + strings.Repeat("0", r.ControlAccountLength-len(prefix))
}

// IsCashDescription reports whether desc is a cash-register descriptor.
func (r *Rules) IsCashDescription(desc string) bool {
	for _, d := range r.CashDescriptions {
		if desc == d {
			return true
		}
	}
	return false
}

// IsCreditNoteSeries reports whether the series denotes a credit note.
func (r *Rules) IsCreditNoteSeries(series string) bool {
	for _, s := range r.CreditNoteSeries {
		if series == s {
			return true
		}
	}
	return false
}

// IsReceivable reports whether code is a receivable (control) line.
func (r *Rules) IsReceivable(code string) bool {
	return strings.HasPrefix(code, r.ReceivablePrefix)
}

// IsRevenue reports whether code creates an invoice line.
func (r *Rules) IsRevenue(code string) bool {
	for _, prefix := range r.RevenuePrefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

// IsVAT reports whether code is a VAT control line.
func (r *Rules) IsVAT(code string) bool {
	return strings.HasPrefix(code, r.VATPrefix)
}
