// Package output persists rendered device configurations.
//
// FileWriter writes each configuration to {dir}/{device-id}{ext} by first
// writing a temporary file in the same directory and renaming it over the
// target, so a reader never sees a half-written file. DryRun computes the
// same paths without touching the filesystem.
package output
