// Package moves folds decoded Contaplus lines into balanced ledger moves.
package moves

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/contabridge-dev/contabridge/internal/contaplus"
	"github.com/contabridge-dev/contabridge/internal/host"
	"github.com/contabridge-dev/contabridge/internal/model"
	"github.com/contabridge-dev/contabridge/internal/rules"
)

// Engine aggregates lines into moves. It is pure given its rules; all
// host state is reached through the injected services.
type Engine struct {
	rules *rules.Rules
	host  host.Services
	log   zerolog.Logger
}

// NewEngine creates a move aggregation engine.
func NewEngine(r *rules.Rules, svc host.Services, log zerolog.Logger) *Engine {
	return &Engine{rules: r, host: svc, log: log}
}

// Options carries the per-import context.
type Options struct {
	Company model.Company
	Journal model.Journal
	Prefix  string // prepended to asien to form the move number
	Origin  uuid.UUID
}

// foldState is the explicit running state of the aggregation fold: the
// builders keyed by move number, their first-seen order, and the
// import-wide debit/credit totals the cash-closing heuristic consults.
type foldState struct {
	builders      map[string]*model.Move
	order         []string
	runningDebit  decimal.Decimal
	runningCredit decimal.Decimal
}

// Aggregate folds lines in file order into one move per derived number,
// then checks the balance invariant over the whole batch. Nothing is
// persisted here; any error leaves the host untouched.
func (e *Engine) Aggregate(lines []contaplus.Line, opts Options) ([]*model.Move, error) {
	state := &foldState{
		builders:      make(map[string]*model.Move),
		runningDebit:  decimal.Zero,
		runningCredit: decimal.Zero,
	}

	for i, line := range lines {
		if err := e.foldLine(state, line, opts); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	result := make([]*model.Move, 0, len(state.order))
	for _, number := range state.order {
		move := state.builders[number]
		if !move.Balanced() {
			return nil, &UnbalancedMoveError{
				Number: number,
				Debit:  move.TotalDebit(),
				Credit: move.TotalCredit(),
			}
		}
		result = append(result, move)
	}

	e.log.Debug().Int("moves", len(result)).Int("lines", len(lines)).Msg("aggregated moves")
	return result, nil
}

func (e *Engine) foldLine(state *foldState, line contaplus.Line, opts Options) error {
	number := opts.Prefix + line.Asien()

	move, ok := state.builders[number]
	if !ok {
		exists, err := e.host.Moves.Exists(number)
		if err != nil {
			return fmt.Errorf("checking move %s: %w", number, err)
		}
		if exists {
			return &DuplicateMoveNumberError{Number: number}
		}
		period, err := e.host.Periods.Find(opts.Company, line.Date())
		if err != nil {
			return err
		}
		move = &model.Move{
			Number:  number,
			Date:    line.Date(),
			Period:  period,
			Journal: opts.Journal,
			Origin:  opts.Origin,
			State:   model.MoveDraft,
		}
		state.builders[number] = move
		state.order = append(state.order, number)
	}

	account, party, err := e.resolveAccount(line.Account(), opts.Company)
	if err != nil {
		return err
	}

	debit, credit := e.classify(line, state)
	state.runningDebit = state.runningDebit.Add(debit)
	state.runningCredit = state.runningCredit.Add(credit)

	move.Lines = append(move.Lines, model.MoveLine{
		Account:     account,
		Party:       party,
		Debit:       debit,
		Credit:      credit,
		Description: line.Description(),
	})
	return nil
}

// resolveAccount normalizes a raw code, derives the party key and the
// effective control account, and resolves both against the host.
// Accounts flagged party-required get a party even when the prefix table
// did not derive one.
func (e *Engine) resolveAccount(raw string, company model.Company) (model.Account, *model.Party, error) {
	code := e.rules.NormalizeAccount(raw)
	partyKey, effective := e.rules.DeriveParty(code, company.Code)

	account, err := e.host.Accounts.Find(effective, company)
	if err != nil {
		return model.Account{}, nil, err
	}
	if partyKey == "" && account.PartyRequired {
		partyKey = company.Code + "-" + code
	}
	if partyKey == "" {
		return account, nil, nil
	}

	party, err := e.host.Parties.Find(partyKey, company)
	if err != nil {
		return model.Account{}, nil, err
	}
	return account, &party, nil
}

// classify maps a line's amounts onto the debit/credit sides:
//   - blank or cash-register descriptions post the combined amount as
//     debit, whatever column it arrived in;
//   - the cash-closing description routes the combined amount to
//     whichever side brings the running import totals closer to balance;
//   - everything else maps columns directly.
func (e *Engine) classify(line contaplus.Line, state *foldState) (debit, credit decimal.Decimal) {
	desc := line.Description()
	combined := line.Debit().Add(line.Credit())

	switch {
	case desc == "" || e.rules.IsCashDescription(desc):
		return combined, decimal.Zero
	case desc == e.rules.CashClosingDescription:
		if state.runningCredit.GreaterThan(state.runningDebit) {
			return combined, decimal.Zero
		}
		return decimal.Zero, combined
	default:
		return line.Debit(), line.Credit()
	}
}
