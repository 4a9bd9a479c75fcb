// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It runs
// the vcstate subcommands against parameter snapshot files and the preset
// database.
package cli
