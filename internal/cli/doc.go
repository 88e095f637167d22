// Package cli parses command-line arguments into an application config and
// owns the process exit-code contract.
package cli
