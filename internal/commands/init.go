package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contabridge-dev/contabridge/internal/config"
	"github.com/contabridge-dev/contabridge/internal/rules"
)

func newInitCommand() *cobra.Command {
	var code string
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a contabridge workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, code, name)
		},
	}

	cmd.Flags().StringVar(&code, "company-code", "", "company code (required)")
	_ = cmd.MarkFlagRequired("company-code")
	cmd.Flags().StringVar(&name, "company-name", "", "company name")

	return cmd
}

func runInit(dir, code, name string) error {
	for _, d := range []string{"books", "logs", "import"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(code, name)
	cfg.Import.RulesFile = "rules.yaml"
	if err := config.Save(filepath.Join(dir, "contabridge.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := rules.Save(filepath.Join(dir, "rules.yaml"), rules.Default()); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	accountsHeader := "code,name,party_required\n"
	if err := os.WriteFile(filepath.Join(dir, "books", "accounts.csv"), []byte(accountsHeader), 0o644); err != nil {
		return fmt.Errorf("writing account book: %w", err)
	}
	partiesHeader := "code,name,payment_term,receivable_instrument,payable_instrument\n"
	if err := os.WriteFile(filepath.Join(dir, "books", "parties.csv"), []byte(partiesHeader), 0o644); err != nil {
		return fmt.Errorf("writing party book: %w", err)
	}

	fmt.Printf("Initialized contabridge workspace at %s\n", dir)
	return nil
}
