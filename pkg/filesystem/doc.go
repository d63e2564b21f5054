// Package filesystem provides filesystem implementations for scaffold.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and a dry-run wrapper, plus the
// higher-level create/exists helpers the application engine consumes.
package filesystem
