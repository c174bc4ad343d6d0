package host

import "fmt"

// AccountNotFoundError reports an account code with no match in the
// company's chart of accounts.
type AccountNotFoundError struct {
	Code string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %q not found", e.Code)
}

// MultipleAccountsError reports an account code matching more than one
// account.
type MultipleAccountsError struct {
	Code string
}

func (e *MultipleAccountsError) Error() string {
	return fmt.Sprintf("account %q matches more than one account", e.Code)
}

// PartyNotFoundError reports a party key with no match.
type PartyNotFoundError struct {
	Key string
}

func (e *PartyNotFoundError) Error() string {
	return fmt.Sprintf("party %q not found", e.Key)
}

// MultiplePartiesError reports a party key matching more than one party.
type MultiplePartiesError struct {
	Key string
}

func (e *MultiplePartiesError) Error() string {
	return fmt.Sprintf("party %q matches more than one party", e.Key)
}

// PeriodNotFoundError reports a date with no open fiscal period.
type PeriodNotFoundError struct {
	Date string
}

func (e *PeriodNotFoundError) Error() string {
	return fmt.Sprintf("no open period for %s", e.Date)
}

// JournalNotFoundError reports a journal type with no journal.
type JournalNotFoundError struct {
	Type string
}

func (e *JournalNotFoundError) Error() string {
	return fmt.Sprintf("no journal of type %q", e.Type)
}

// TaxNotFoundError reports a tax template with no tax.
type TaxNotFoundError struct {
	Template string
}

func (e *TaxNotFoundError) Error() string {
	return fmt.Sprintf("no tax for template %q", e.Template)
}
