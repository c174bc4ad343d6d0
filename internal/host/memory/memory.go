// Package memory is an in-memory host implementation backed by CSV
// account and party books. It serves the CLI dry-run mode and the engine
// tests; real deployments plug the bookkeeping system in behind the same
// interfaces.
package memory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contabridge-dev/contabridge/internal/host"
	"github.com/contabridge-dev/contabridge/internal/model"
)

// Host holds the in-memory books and stores. Wire it into the engines
// with Services().
type Host struct {
	accounts []model.Account
	parties  []model.Party
	journals map[string]model.Journal
	taxes    map[string]model.Tax

	existing map[string]bool // pre-existing move numbers
	moves    map[string]*model.Move
	invoices map[string]*model.Invoice
	imports  []model.ImportRecord
}

// NewHost creates a Host over an account and party book. A general
// journal and the zero/standard Spanish VAT taxes are seeded; tests add
// more with AddJournal/AddTax.
func NewHost(accounts []model.Account, parties []model.Party) *Host {
	h := &Host{
		accounts: accounts,
		parties:  parties,
		journals: make(map[string]model.Journal),
		taxes:    make(map[string]model.Tax),
		existing: make(map[string]bool),
		moves:    make(map[string]*model.Move),
		invoices: make(map[string]*model.Invoice),
	}
	h.AddJournal(model.Journal{Code: "GEN", Name: "General", Type: "general"})
	h.AddTax(model.Tax{Template: "iva_0", Name: "IVA 0%", Rate: decimal.Zero})
	h.AddTax(model.Tax{Template: "iva_21", Name: "IVA 21%", Rate: decimal.NewFromInt(21)})
	return h
}

// Services returns the Host behind the host.Services interfaces.
func (h *Host) Services() host.Services {
	return host.Services{
		Accounts: accountsView{h},
		Parties:  partiesView{h},
		Periods:  periodsView{h},
		Journals: journalsView{h},
		Taxes:    taxesView{h},
		Moves:    movesView{h},
		Invoices: invoicesView{h},
		Imports:  importsView{h},
	}
}

// AddJournal registers a journal by type.
func (h *Host) AddJournal(j model.Journal) {
	h.journals[j.Type] = j
}

// AddTax registers a tax by template code.
func (h *Host) AddTax(t model.Tax) {
	h.taxes[t.Template] = t
}

// SeedMoveNumbers marks move numbers as already persisted.
func (h *Host) SeedMoveNumbers(numbers ...string) {
	for _, n := range numbers {
		h.existing[n] = true
	}
}

// FindAccount returns the single account with the given code.
func (h *Host) FindAccount(code string) (model.Account, error) {
	var matches []model.Account
	for _, a := range h.accounts {
		if a.Code == code {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return model.Account{}, &host.AccountNotFoundError{Code: code}
	case 1:
		return matches[0], nil
	default:
		return model.Account{}, &host.MultipleAccountsError{Code: code}
	}
}

// FindParty returns the single party whose code contains the key.
func (h *Host) FindParty(key string) (model.Party, error) {
	var matches []model.Party
	for _, p := range h.parties {
		if strings.Contains(p.Code, key) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return model.Party{}, &host.PartyNotFoundError{Key: key}
	case 1:
		return matches[0], nil
	default:
		return model.Party{}, &host.MultiplePartiesError{Key: key}
	}
}

// Move returns a saved move by number.
func (h *Host) Move(number string) (*model.Move, bool) {
	m, ok := h.moves[number]
	return m, ok
}

// Invoice returns a saved invoice by number.
func (h *Host) Invoice(number string) (*model.Invoice, bool) {
	inv, ok := h.invoices[number]
	return inv, ok
}

// SavedMoves returns the number of saved moves.
func (h *Host) SavedMoves() int { return len(h.moves) }

// SavedInvoices returns the number of saved invoices.
func (h *Host) SavedInvoices() int { return len(h.invoices) }

// ImportRecords returns all created import records.
func (h *Host) ImportRecords() []model.ImportRecord { return h.imports }

type accountsView struct{ h *Host }

func (v accountsView) Find(code string, _ model.Company) (model.Account, error) {
	return v.h.FindAccount(code)
}

type partiesView struct{ h *Host }

func (v partiesView) Find(key string, _ model.Company) (model.Party, error) {
	return v.h.FindParty(key)
}

type periodsView struct{ h *Host }

// Find returns the calendar-month period containing date. The memory host
// keeps every period open.
func (v periodsView) Find(_ model.Company, date time.Time) (model.Period, error) {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	return model.Period{
		Name:  start.Format("2006-01"),
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}, nil
}

type journalsView struct{ h *Host }

func (v journalsView) Find(journalType string, _ model.Company) (model.Journal, error) {
	j, ok := v.h.journals[journalType]
	if !ok {
		return model.Journal{}, &host.JournalNotFoundError{Type: journalType}
	}
	return j, nil
}

type taxesView struct{ h *Host }

func (v taxesView) Find(template string, _ model.Company) (model.Tax, error) {
	t, ok := v.h.taxes[template]
	if !ok {
		return model.Tax{}, &host.TaxNotFoundError{Template: template}
	}
	return t, nil
}

type movesView struct{ h *Host }

func (v movesView) Exists(number string) (bool, error) {
	if v.h.existing[number] {
		return true, nil
	}
	_, ok := v.h.moves[number]
	return ok, nil
}

func (v movesView) SaveAll(moves []*model.Move) error {
	for _, m := range moves {
		v.h.moves[m.Number] = m
	}
	return nil
}

func (v movesView) PostAll(moves []*model.Move) error {
	for _, m := range moves {
		m.State = model.MovePosted
	}
	return nil
}

type invoicesView struct{ h *Host }

func (v invoicesView) SaveAll(invoices []*model.Invoice) error {
	for _, inv := range invoices {
		v.h.invoices[inv.Number] = inv
	}
	return nil
}

// UpdateTaxes recomputes every invoice total from its lines and taxes.
func (v invoicesView) UpdateTaxes(invoices []*model.Invoice) error {
	for _, inv := range invoices {
		inv.RecomputeTotal()
	}
	return nil
}

func (v invoicesView) PostAll(invoices []*model.Invoice) error {
	for _, inv := range invoices {
		inv.State = model.InvoicePosted
	}
	return nil
}

type importsView struct{ h *Host }

func (v importsView) Create(filename string, raw []byte) (model.ImportRecord, error) {
	rec := model.ImportRecord{
		ID:        uuid.New(),
		Filename:  filename,
		Raw:       raw,
		CreatedAt: time.Now().UTC(),
	}
	v.h.imports = append(v.h.imports, rec)
	return rec, nil
}
