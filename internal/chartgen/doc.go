// Package chartgen renders the named physics visualizations as PNG images.
//
// Each visualization is registered with a parameter specification
// (type, default, bounds). Generate validates supplied parameters against
// the spec before rendering; the charts themselves are deterministic
// functions of their parameters, so the same inputs always produce the
// same image.
package chartgen
