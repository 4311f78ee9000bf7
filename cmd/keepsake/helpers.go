// Shared helpers for keepsake CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/keepsake/internal/bank"
	"github.com/mesh-intelligence/keepsake/internal/catalog"
	"github.com/mesh-intelligence/keepsake/internal/imagestore"
	"github.com/mesh-intelligence/keepsake/internal/progress"
	"github.com/mesh-intelligence/keepsake/internal/vignette"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// stores bundles every component over one data directory for the
// resolved user. Each command opens its own bundle; all state lives in
// the documents, so there is nothing to close.
type stores struct {
	user      string
	dataDir   string
	config    types.Config
	catalog   *catalog.Store
	banks     *bank.Repository
	progress  *progress.Tracker
	vignettes *vignette.Store
	images    *imagestore.Store
}

// openStores resolves the data directory and user and wires up the
// component stores.
func openStores() (*stores, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{DataDir: dataDir, User: resolveUser()}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cat := catalog.New(dataDir)
	return &stores{
		user:      cfg.User,
		dataDir:   dataDir,
		config:    cfg,
		catalog:   cat,
		banks:     bank.New(dataDir, cat),
		progress:  progress.New(dataDir),
		vignettes: vignette.New(dataDir),
		images:    imagestore.New(dataDir),
	}, nil
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// summaryLine renders one catalog entry for table output.
func summaryLine(s types.BankSummary) string {
	kind := "user"
	if s.Default {
		kind = "default"
	}
	return fmt.Sprintf("%-18s %-8s %-24s %3d sessions %4d questions", s.BankID, kind, s.Name, s.SessionCount, s.TopicCount)
}
