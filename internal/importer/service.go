package importer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/contabridge-dev/contabridge/internal/contaplus"
	"github.com/contabridge-dev/contabridge/internal/host"
	"github.com/contabridge-dev/contabridge/internal/invoices"
	"github.com/contabridge-dev/contabridge/internal/model"
	"github.com/contabridge-dev/contabridge/internal/moves"
	"github.com/contabridge-dev/contabridge/internal/rules"
)

// Service runs file imports against a host. The host is expected to wrap
// each Run in one all-or-nothing transaction; the service itself never
// persists anything before the whole batch has validated.
type Service struct {
	host     host.Services
	rules    *rules.Rules
	registry *Registry
	log      zerolog.Logger
}

// NewService creates an import Service.
func NewService(svc host.Services, r *rules.Rules, registry *Registry, log zerolog.Logger) *Service {
	return &Service{host: svc, rules: r, registry: registry, log: log}
}

// Options configures one import run.
type Options struct {
	Filename    string
	Data        []byte
	Format      string // parser name, default "contaplus"
	Company     model.Company
	JournalType string // journal resolved by type, default "general"
	MovePrefix  string
	AsInvoices  bool // aggregate invoices instead of ledger moves
	DryRun      bool // validate everything, persist nothing
}

// Result reports what an import created.
type Result struct {
	ImportID       uuid.UUID
	MoveNumbers    []string
	InvoiceNumbers []string
	DryRun         bool
}

// Run executes one import: parse, aggregate, validate, then persist and
// post unless dry-running. Any error aborts with nothing persisted.
func (s *Service) Run(opts Options) (Result, error) {
	format := opts.Format
	if format == "" {
		format = "contaplus"
	}
	parser := s.registry.Get(format)
	if parser == nil {
		return Result{}, fmt.Errorf("unknown import format %q", format)
	}

	journalType := opts.JournalType
	if journalType == "" {
		journalType = "general"
	}
	journal, err := s.host.Journals.Find(journalType, opts.Company)
	if err != nil {
		return Result{}, err
	}

	lines, err := parser.Parse(opts.Data)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s: %w", opts.Filename, err)
	}
	s.log.Info().
		Str("file", opts.Filename).
		Str("format", format).
		Int("lines", len(lines)).
		Bool("dry_run", opts.DryRun).
		Msg("decoded import file")

	result := Result{DryRun: opts.DryRun}
	var origin uuid.UUID
	if !opts.DryRun {
		rec, err := s.host.Imports.Create(opts.Filename, opts.Data)
		if err != nil {
			return Result{}, fmt.Errorf("creating import record: %w", err)
		}
		origin = rec.ID
		result.ImportID = rec.ID
	}

	if opts.AsInvoices {
		result.InvoiceNumbers, err = s.runInvoices(lines, journal, origin, opts)
	} else {
		result.MoveNumbers, err = s.runMoves(lines, journal, origin, opts)
	}
	if err != nil {
		return Result{}, err
	}

	s.log.Info().
		Str("file", opts.Filename).
		Int("moves", len(result.MoveNumbers)).
		Int("invoices", len(result.InvoiceNumbers)).
		Bool("dry_run", opts.DryRun).
		Msg("import finished")
	return result, nil
}

func (s *Service) runMoves(lines []contaplus.Line, journal model.Journal, origin uuid.UUID, opts Options) ([]string, error) {
	engine := moves.NewEngine(s.rules, s.host, s.log)
	batch, err := engine.Aggregate(lines, moves.Options{
		Company: opts.Company,
		Journal: journal,
		Prefix:  opts.MovePrefix,
		Origin:  origin,
	})
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if err := s.host.Moves.SaveAll(batch); err != nil {
			return nil, fmt.Errorf("saving moves: %w", err)
		}
		if err := s.host.Moves.PostAll(batch); err != nil {
			return nil, fmt.Errorf("posting moves: %w", err)
		}
	}

	numbers := make([]string, len(batch))
	for i, m := range batch {
		numbers[i] = m.Number
	}
	return numbers, nil
}

func (s *Service) runInvoices(lines []contaplus.Line, journal model.Journal, origin uuid.UUID, opts Options) ([]string, error) {
	engine := invoices.NewEngine(s.rules, s.host, s.log)
	batch, err := engine.Aggregate(lines, invoices.Options{
		Company: opts.Company,
		Journal: journal,
		Origin:  origin,
	})
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		for _, inv := range batch {
			inv.RecomputeTotal()
		}
	} else {
		if err := s.host.Invoices.SaveAll(batch); err != nil {
			return nil, fmt.Errorf("saving invoices: %w", err)
		}
		if err := s.host.Invoices.UpdateTaxes(batch); err != nil {
			return nil, fmt.Errorf("updating invoice taxes: %w", err)
		}
	}

	// Totals are checked only after the host recomputed taxes; a
	// mismatch aborts before posting and rolls the host back.
	if err := invoices.ValidateTotals(batch); err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if err := s.host.Invoices.PostAll(batch); err != nil {
			return nil, fmt.Errorf("posting invoices: %w", err)
		}
	}

	numbers := make([]string, len(batch))
	for i, inv := range batch {
		numbers[i] = inv.Number
	}
	return numbers, nil
}
