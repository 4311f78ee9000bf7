// Keepsake CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/keepsake/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes: user mistakes (bad ids, rejected
// uploads, read-only banks) exit 1, everything else exits 2.
func exitCode(err error) int {
	var ve *types.ValidationError
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrBankReadOnly) || errors.As(err, &ve) {
		return exitUserError
	}
	return exitSysError
}
