package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration and data directories",
	Long: `Init prepares keepsake for first use: it creates the configuration
directory with a default config.yaml and the data directory that will
hold your documents.

Example:
  keepsake init
  keepsake init --data-dir ~/journals/keepsake`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	// PersistentPreRunE already ensured the config dir and default
	// config.yaml; only the data dir remains.
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	fmt.Println("Config directory:", configDir)
	fmt.Println("Data directory:  ", dataDir)
	return nil
}
