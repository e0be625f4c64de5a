// Package schema validates external JSON content files (formula and
// document payloads) against embedded CUE schemas before they reach the
// generators. Validation failures are reported as structured errors with
// stable codes, not ad hoc strings.
package schema
