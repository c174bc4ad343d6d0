// Package host defines the repository interfaces the import engines use
// to reach the bookkeeping system. One interface per entity kind; the
// engines never see a generic model registry.
package host

import (
	"time"

	"github.com/contabridge-dev/contabridge/internal/model"
)

// Accounts resolves account codes against a company-scoped chart of
// accounts.
type Accounts interface {
	// Find returns the single account with the given code, or an
	// AccountNotFoundError / MultipleAccountsError.
	Find(code string, company model.Company) (model.Account, error)
}

// Parties resolves derived party keys.
type Parties interface {
	// Find returns the single party whose code matches the key
	// substring, or a PartyNotFoundError / MultiplePartiesError.
	Find(key string, company model.Company) (model.Party, error)
}

// Periods resolves the open fiscal period containing a date.
type Periods interface {
	Find(company model.Company, date time.Time) (model.Period, error)
}

// Journals resolves journals by type.
type Journals interface {
	Find(journalType string, company model.Company) (model.Journal, error)
}

// Taxes resolves taxes from template codes.
type Taxes interface {
	Find(template string, company model.Company) (model.Tax, error)
}

// Moves persists ledger moves. The host wraps SaveAll/PostAll in its own
// all-or-nothing transaction.
type Moves interface {
	Exists(number string) (bool, error)
	SaveAll(moves []*model.Move) error
	PostAll(moves []*model.Move) error
}

// Invoices persists customer invoices. UpdateTaxes runs the host tax
// engine over saved invoices and fills in their computed totals.
type Invoices interface {
	SaveAll(invoices []*model.Invoice) error
	UpdateTaxes(invoices []*model.Invoice) error
	PostAll(invoices []*model.Invoice) error
}

// Imports creates import-record markers.
type Imports interface {
	Create(filename string, raw []byte) (model.ImportRecord, error)
}

// Services bundles every host dependency an import needs.
type Services struct {
	Accounts Accounts
	Parties  Parties
	Periods  Periods
	Journals Journals
	Taxes    Taxes
	Moves    Moves
	Invoices Invoices
	Imports  Imports
}
