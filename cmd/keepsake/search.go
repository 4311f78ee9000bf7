// Search command: full-text lookup across sessions and vignettes.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keepsake/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search session questions and vignettes",
	Long: `Search rebuilds the disposable index from the account's documents and
runs a case-insensitive substring query over session titles, guidance,
and questions, and over vignette titles and content.

Example:
  keepsake search "first job"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	idx, err := openIndex(s)
	if err != nil {
		return err
	}
	defer idx.Close()

	query := strings.Join(args, " ")
	hits, err := idx.Search(query)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if flagJSON {
		return printJSON(hits)
	}
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, h := range hits {
		switch h.Kind {
		case index.HitSession:
			fmt.Printf("session  %s/%d  %-30s %s\n", h.BankID, h.SessionID, h.Title, h.Snippet)
		case index.HitVignette:
			fmt.Printf("vignette %s  %-30s %s\n", h.VignetteID, h.Title, h.Snippet)
		}
	}
	return nil
}
