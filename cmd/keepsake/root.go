// Root command for the keepsake CLI.
// See docs/ARCHITECTURE.md § CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/keepsake/internal/paths"
	"github.com/mesh-intelligence/keepsake/pkg/keepsake"
	"github.com/mesh-intelligence/keepsake/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagUser      string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir string
	configUser    string
)

var rootCmd = &cobra.Command{
	Use:     "keepsake",
	Short:   "Keepsake is a local-first life-story journal",
	Version: keepsake.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configUser = cfg.GetString(cfgKeyUser)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.keepsake-db)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "account to operate on (default: config user)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(vignetteCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(rebuildCmd)
}

// resolveConfigDir follows the precedence chain:
// --config-dir flag > KEEPSAKE_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir follows the precedence chain:
// --data-dir flag > config.yaml data_dir > KEEPSAKE_DATA_DIR env > CWD default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveUser follows the precedence chain:
// --user flag > config.yaml user > "default".
func resolveUser() string {
	if flagUser != "" {
		return flagUser
	}
	if configUser != "" {
		return configUser
	}
	return types.DefaultUser
}
