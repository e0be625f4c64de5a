// Package catalog provides lookup, search and comparison over the static
// physics-formula definitions shipped with the binary.
//
// Formulas are JSON payloads embedded at build time and keyed by file
// basename (e.g. "unified_action"). An external directory can extend or
// override the embedded set; unreadable files in that directory are skipped
// and logged, never fatal.
package catalog
