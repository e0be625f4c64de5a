// Package session provides a durable ledger of generation runs.
//
// When the CLI runs in agent mode, every invocation opens a session and
// records the artifacts it produces (PDFs, .tex files, chart images).
// The ledger is a SQLite database; the session subcommands read it back.
package session
