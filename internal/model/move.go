package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoveState is the lifecycle state of a ledger move.
type MoveState string

const (
	MoveDraft  MoveState = "draft"
	MovePosted MoveState = "posted"
)

// Move is a double-entry ledger transaction aggregated from file lines.
type Move struct {
	Number  string // import prefix + original asien
	Date    time.Time
	Period  Period
	Journal Journal
	Origin  uuid.UUID // import record that produced this move
	Lines   []MoveLine
	State   MoveState
}

// MoveLine is one debit or credit row of a move. A move exclusively owns
// its lines.
type MoveLine struct {
	Account     Account
	Party       *Party // nil for general-ledger lines
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// TotalDebit sums the debit side of all lines.
func (m *Move) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (m *Move) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// Balanced reports whether debits equal credits across all lines.
func (m *Move) Balanced() bool {
	return m.TotalDebit().Equal(m.TotalCredit())
}
