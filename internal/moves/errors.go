package moves

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DuplicateMoveNumberError reports a derived move number that already
// exists in the persisted store.
type DuplicateMoveNumberError struct {
	Number string
}

func (e *DuplicateMoveNumberError) Error() string {
	return fmt.Sprintf("move %s already exists", e.Number)
}

// UnbalancedMoveError reports a move whose debits do not equal its
// credits. It blocks persistence of the whole batch.
type UnbalancedMoveError struct {
	Number string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

func (e *UnbalancedMoveError) Error() string {
	return fmt.Sprintf("move %s is unbalanced: debit %s != credit %s",
		e.Number, e.Debit.StringFixed(2), e.Credit.StringFixed(2))
}
