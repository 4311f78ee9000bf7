// Bank commands: list, create, show, delete, export, import.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keepsake/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List default and user banks",
	RunE:  runBankList,
}

var (
	bankCreateName     string
	bankCreateDesc     string
	bankCreateCopyFrom string
)

var bankCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new bank",
	Long: `Create adds a new user bank, empty or deep-copied from an existing
bank (default or user). The copy is independently editable.

Example:
  keepsake bank create --name "Family"
  keepsake bank create --name "Family" --copy-from legacy`,
	RunE: runBankCreate,
}

var bankShowCmd = &cobra.Command{
	Use:   "show <bank-id>",
	Short: "Show a bank's sessions and questions",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankShow,
}

var bankDeleteCmd = &cobra.Command{
	Use:   "delete <bank-id>",
	Short: "Delete a user bank",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankDelete,
}

var bankExportOut string

var bankExportCmd = &cobra.Command{
	Use:   "export <bank-id>",
	Short: "Export a bank as flat CSV rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankExport,
}

var bankImportFile string

var bankImportCmd = &cobra.Command{
	Use:   "import <bank-id>",
	Short: "Replace a bank's content from flat CSV rows",
	Long: `Import parses flat CSV rows (as produced by export), merges them into
sessions, and saves the result as the bank's new content.`,
	Args: cobra.ExactArgs(1),
	RunE: runBankImport,
}

func init() {
	bankCreateCmd.Flags().StringVar(&bankCreateName, "name", "", "bank name (required)")
	bankCreateCmd.Flags().StringVar(&bankCreateDesc, "description", "", "bank description")
	bankCreateCmd.Flags().StringVar(&bankCreateCopyFrom, "copy-from", "", "bank id to deep-copy sessions from")
	_ = bankCreateCmd.MarkFlagRequired("name")

	bankExportCmd.Flags().StringVar(&bankExportOut, "out", "", "write CSV to file instead of stdout")

	bankImportCmd.Flags().StringVar(&bankImportFile, "file", "", "CSV file to import (required)")
	_ = bankImportCmd.MarkFlagRequired("file")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankCreateCmd)
	bankCmd.AddCommand(bankShowCmd)
	bankCmd.AddCommand(bankDeleteCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankImportCmd)
}

func runBankList(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	defaults := s.banks.ListDefaultBanks()
	user, err := s.banks.ListUserBanks(s.user)
	if err != nil {
		return fmt.Errorf("list user banks: %w", err)
	}

	if flagJSON {
		return printJSON(append(defaults, user...))
	}
	for _, sum := range defaults {
		fmt.Println(summaryLine(sum))
	}
	for _, sum := range user {
		fmt.Println(summaryLine(sum))
	}
	return nil
}

func runBankCreate(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	b, err := s.banks.CreateBank(s.user, bankCreateName, bankCreateDesc, bankCreateCopyFrom)
	if err != nil {
		return fmt.Errorf("create bank: %w", err)
	}

	if flagJSON {
		return printJSON(b.Summarize())
	}
	fmt.Printf("Created bank %s (%d sessions, %d questions)\n", b.ID, b.SessionCount(), b.TopicCount())
	return nil
}

func runBankShow(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	b, err := s.banks.LoadBank(s.user, args[0])
	if err != nil {
		return fmt.Errorf("load bank: %w", err)
	}

	if flagJSON {
		return printJSON(b)
	}
	fmt.Printf("%s: %s\n", b.ID, b.Name)
	if b.Description != "" {
		fmt.Println(b.Description)
	}
	for _, sess := range b.Sessions {
		fmt.Printf("\n[%d] %s (target %d words)\n", sess.ID, sess.Title, sess.WordTarget)
		if sess.Guidance != "" {
			fmt.Println("   ", sess.Guidance)
		}
		for i, q := range sess.Questions {
			fmt.Printf("  %d. %s\n", i+1, q)
		}
	}
	return nil
}

func runBankDelete(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	if err := s.banks.DeleteBank(s.user, args[0]); err != nil {
		return fmt.Errorf("delete bank: %w", err)
	}
	fmt.Println("Deleted bank", args[0])
	return nil
}

func runBankExport(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	rows, err := s.banks.ExportFlatRows(s.user, args[0])
	if err != nil {
		return fmt.Errorf("export bank: %w", err)
	}
	data, err := bank.WriteFlatCSV(rows)
	if err != nil {
		return fmt.Errorf("render csv: %w", err)
	}

	if bankExportOut != "" {
		if err := os.WriteFile(bankExportOut, data, 0o644); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("Exported %d rows to %s\n", len(rows), bankExportOut)
		return nil
	}
	fmt.Print(string(data))
	return nil
}

func runBankImport(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(bankImportFile)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	rows, err := bank.ParseFlatCSV(data)
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}

	b, err := s.banks.ImportFlatRows(s.user, args[0], rows)
	if err != nil {
		return fmt.Errorf("import bank: %w", err)
	}
	fmt.Printf("Imported %d sessions (%d questions) into %s\n", b.SessionCount(), b.TopicCount(), b.ID)
	return nil
}
