// Package cli implements the principia command tree.
//
// Commands are thin wrappers: they parse flags, call into the catalog,
// texkit, pdfgen and chartgen packages, and format results as text or
// JSON. Exit codes follow a fixed discipline: 0 success, 1 validation or
// generation failure, 2 command error (bad flags, missing files).
package cli
