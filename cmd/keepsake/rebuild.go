// Rebuild command: reconcile derived state with the documents.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keepsake/internal/docstore"
	"github.com/mesh-intelligence/keepsake/internal/index"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the catalog and search index from the documents",
	Long: `Rebuild rescans the account's bank documents and regenerates the
catalog, then recreates the search index. The documents themselves are
never touched; rebuild repairs any derived state that has drifted.`,
	RunE: runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}

	if err := s.catalog.Rebuild(s.user); err != nil {
		return fmt.Errorf("rebuild catalog: %w", err)
	}

	idx, err := openIndex(s)
	if err != nil {
		return err
	}
	defer idx.Close()

	fmt.Println("Catalog and search index rebuilt for", s.user)
	return nil
}

// openIndex recreates the search index from the account's banks and
// vignettes. The index file is disposable; every open starts fresh.
func openIndex(s *stores) (*index.Index, error) {
	banks, err := allBanks(s)
	if err != nil {
		return nil, err
	}
	vignettes, err := s.vignettes.List(s.user, types.VignettesAll)
	if err != nil {
		return nil, fmt.Errorf("load vignettes: %w", err)
	}

	layout := docstore.Layout{DataDir: s.dataDir}
	idx, err := index.Open(layout.IndexPath())
	if err != nil {
		return nil, err
	}
	if err := idx.Rebuild(banks, vignettes); err != nil {
		idx.Close()
		return nil, fmt.Errorf("rebuild index: %w", err)
	}
	return idx, nil
}

// allBanks loads every default and user bank for the account.
func allBanks(s *stores) ([]types.Bank, error) {
	var banks []types.Bank

	summaries := s.banks.ListDefaultBanks()
	userSummaries, err := s.banks.ListUserBanks(s.user)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	summaries = append(summaries, userSummaries...)

	for _, sum := range summaries {
		b, err := s.banks.LoadBank(s.user, sum.BankID)
		if err != nil {
			return nil, fmt.Errorf("load bank %s: %w", sum.BankID, err)
		}
		banks = append(banks, b)
	}
	return banks, nil
}
