// Package types defines the entity types, configuration, and standard
// error types for the Keepsake storage system.
// See docs/ARCHITECTURE.md § Data Model.
package types
