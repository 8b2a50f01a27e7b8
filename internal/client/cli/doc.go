// Package cli implements the interactive shopcore client: a small REPL over
// the auth orchestrator and the paginated product list.
package cli
