// Package keepsake exposes module-level metadata.
package keepsake

// Version is the semantic version of the keepsake module. Bumped on
// release.
const Version = "0.3.0"
