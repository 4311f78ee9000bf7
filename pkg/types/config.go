package types

import "errors"

// Config holds the parameters shared by every store: where documents live
// and which user's documents to operate on.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
	User    string `json:"user" yaml:"user"`
}

// DefaultUser is the account used when no user is configured. The system
// is single-account by design; the user key exists so documents stay
// partitioned if that ever changes.
const DefaultUser = "default"

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data_dir must not be empty")
	ErrUserEmpty    = errors.New("user must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.User == "" {
		return ErrUserEmpty
	}
	return nil
}
