package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/contabridge-dev/contabridge/internal/config"
	"github.com/contabridge-dev/contabridge/internal/host/memory"
	"github.com/contabridge-dev/contabridge/internal/importer"
	"github.com/contabridge-dev/contabridge/internal/importlog"
	"github.com/contabridge-dev/contabridge/internal/logger"
	"github.com/contabridge-dev/contabridge/internal/model"
	"github.com/contabridge-dev/contabridge/internal/rules"
)

type importFlags struct {
	configPath string
	format     string
	invoices   bool
	journal    string
	prefix     string
}

func (f *importFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "contabridge.yaml", "path to the configuration file")
	cmd.Flags().StringVar(&f.format, "format", "", "input format (default from the file registry)")
	cmd.Flags().BoolVar(&f.invoices, "invoices", false, "aggregate customer invoices instead of ledger moves")
	cmd.Flags().StringVar(&f.journal, "journal-type", "", "override the configured journal type")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "override the configured move number prefix")
}

func newImportCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an export file into the bookkeeping host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], flags, false)
		},
	}
	flags.register(cmd)

	return cmd
}

func newValidateCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check an export file without persisting anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], flags, true)
		},
	}
	flags.register(cmd)

	return cmd
}

func runImport(file string, flags *importFlags, dryRun bool) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	root := filepath.Dir(flags.configPath)

	log := logger.New(cfg.Log.Env, cfg.Log.Level)

	r := rules.Default()
	if cfg.Import.RulesFile != "" {
		r, err = rules.Load(filepath.Join(root, cfg.Import.RulesFile))
		if err != nil {
			return fmt.Errorf("loading rules: %w", err)
		}
	}

	accounts, err := memory.LoadAccounts(filepath.Join(root, cfg.Books.Accounts))
	if err != nil {
		return fmt.Errorf("loading account book: %w", err)
	}
	parties, err := memory.LoadParties(filepath.Join(root, cfg.Books.Parties))
	if err != nil {
		return fmt.Errorf("loading party book: %w", err)
	}
	h := memory.NewHost(accounts, parties)

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	journalType := cfg.Import.JournalType
	if flags.journal != "" {
		journalType = flags.journal
	}
	prefix := cfg.Import.MovePrefix
	if flags.prefix != "" {
		prefix = flags.prefix
	}

	svc := importer.NewService(h.Services(), r, importer.DefaultRegistry(), log)
	result, err := svc.Run(importer.Options{
		Filename: filepath.Base(file),
		Data:     data,
		Format:   flags.format,
		Company: model.Company{
			Code:     cfg.Company.Code,
			Name:     cfg.Company.Name,
			Currency: cfg.Company.Currency,
		},
		JournalType: journalType,
		MovePrefix:  prefix,
		AsInvoices:  flags.invoices,
		DryRun:      dryRun,
	})
	if err != nil {
		return err
	}

	mode := "moves"
	if flags.invoices {
		mode = "invoices"
	}
	status := "imported"
	if dryRun {
		status = "validated"
	}
	entry := importlog.Entry{
		Timestamp: time.Now().UTC(),
		Filename:  filepath.Base(file),
		Mode:      mode,
		Moves:     len(result.MoveNumbers),
		Invoices:  len(result.InvoiceNumbers),
		Status:    status,
	}
	if err := importlog.Append(root, []importlog.Entry{entry}); err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	if dryRun {
		fmt.Printf("Validated %s: %d moves, %d invoices\n",
			filepath.Base(file), len(result.MoveNumbers), len(result.InvoiceNumbers))
		return nil
	}
	fmt.Printf("Imported %s: %d moves, %d invoices (import %s)\n",
		filepath.Base(file), len(result.MoveNumbers), len(result.InvoiceNumbers), result.ImportID)
	return nil
}
