package texkit

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// symbolByCommand maps LaTeX command names (without the leading backslash)
// to Unicode replacements. Lookup is by whole command token, so \in never
// clobbers \int.
var symbolByCommand = map[string]string{
	// Greek letters, lowercase and uppercase.
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "varepsilon": "ε", "zeta": "ζ", "eta": "η",
	"theta": "θ", "vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "pi": "π",
	"varpi": "ϖ", "rho": "ρ", "varrho": "ϱ", "sigma": "σ",
	"varsigma": "ς", "tau": "τ", "upsilon": "υ", "phi": "φ",
	"varphi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ",
	"Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Operators and relations.
	"times": "×", "div": "÷", "pm": "±", "mp": "∓",
	"cdot": "·", "leq": "≤", "geq": "≥", "neq": "≠",
	"approx": "≈", "equiv": "≡", "cong": "≅", "sim": "∼",
	"propto": "∝", "infty": "∞", "partial": "∂", "nabla": "∇",
	"forall": "∀", "exists": "∃", "nexists": "∄", "in": "∈",
	"notin": "∉", "subset": "⊂", "supset": "⊃", "cup": "∪",
	"cap": "∩", "emptyset": "∅", "therefore": "∴", "because": "∵",
	"hbar": "ℏ", "ell": "ℓ", "Re": "ℜ", "Im": "ℑ",
	"aleph": "ℵ", "wp": "℘", "otimes": "⊗", "oplus": "⊕",
	"circ": "∘", "bullet": "•", "star": "⋆", "dagger": "†",
	"ddagger": "‡", "vee": "∨", "wedge": "∧", "langle": "⟨",
	"rangle": "⟩", "int": "∫", "oint": "∮", "sum": "∑",
	"prod": "∏", "coprod": "∐", "surd": "√",
	"top": "⊤", "bot": "⊥", "angle": "∠", "triangle": "△",
	"prime": "′", "perp": "⊥",

	// Arrows.
	"rightarrow": "→", "leftarrow": "←", "leftrightarrow": "↔",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "Leftrightarrow": "⇔",
	"uparrow": "↑", "downarrow": "↓", "updownarrow": "↕",
	"mapsto": "↦", "to": "→",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵',
	'6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻',
	'=': '⁼', '(': '⁽', ')': '⁾', 'i': 'ⁱ', 'n': 'ⁿ',
	'a': 'ᵃ', 'b': 'ᵇ', 'c': 'ᶜ', 'd': 'ᵈ', 'e': 'ᵉ', 'f': 'ᶠ',
	'g': 'ᵍ', 'h': 'ʰ', 'j': 'ʲ', 'k': 'ᵏ', 'l': 'ˡ', 'm': 'ᵐ',
	'o': 'ᵒ', 'p': 'ᵖ', 'r': 'ʳ', 's': 'ˢ', 't': 'ᵗ', 'u': 'ᵘ',
	'v': 'ᵛ', 'w': 'ʷ', 'x': 'ˣ', 'y': 'ʸ', 'z': 'ᶻ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅',
	'6': '₆', '7': '₇', '8': '₈', '9': '₉', '+': '₊', '-': '₋',
	'=': '₌', '(': '₍', ')': '₎', 'a': 'ₐ', 'e': 'ₑ', 'i': 'ᵢ',
	'j': 'ⱼ', 'o': 'ₒ', 'r': 'ᵣ', 'u': 'ᵤ', 'v': 'ᵥ', 'x': 'ₓ',
}

var (
	envRE       = regexp.MustCompile(`\\(?:begin|end)\{[^}]*\}`)
	commandRE   = regexp.MustCompile(`\\[a-zA-Z]+`)
	supBracedRE = regexp.MustCompile(`\^\{([^{}]*)\}`)
	supBareRE   = regexp.MustCompile(`\^([a-zA-Z0-9])`)
	subBracedRE = regexp.MustCompile(`_\{([^{}]*)\}`)
	subBareRE   = regexp.MustCompile(`_([a-zA-Z0-9])`)
	fracRE      = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtRE      = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
)

// UnicodeEquation converts a LaTeX math expression to a Unicode
// approximation suitable for plain-text rendering. The conversion is
// best-effort: recognized commands are substituted, structural markup is
// flattened, and anything left over is stripped.
func UnicodeEquation(latex string) string {
	s := latex

	// Flatten structural markup first: environments, alignment markers,
	// and forced line breaks.
	s = envRE.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&=", "=")
	s = strings.ReplaceAll(s, "&", "")
	s = strings.ReplaceAll(s, `\\`, ", ")
	s = strings.ReplaceAll(s, `\|`, "‖")

	// Fractions and roots consume their arguments, so they go before the
	// generic command substitution. The loop handles nesting from the
	// inside out.
	for fracRE.MatchString(s) {
		s = fracRE.ReplaceAllString(s, "($1)⁄($2)")
	}
	s = sqrtRE.ReplaceAllString(s, "√($1)")

	// Whole-token command substitution. Unknown commands survive this
	// pass and are stripped at the end.
	s = commandRE.ReplaceAllStringFunc(s, func(cmd string) string {
		if u, ok := symbolByCommand[cmd[1:]]; ok {
			return u
		}
		return cmd
	})

	// Super- and subscripts, braced forms first.
	s = supBracedRE.ReplaceAllStringFunc(s, func(m string) string {
		return mapScript(m[2:len(m)-1], superscripts)
	})
	s = supBareRE.ReplaceAllStringFunc(s, func(m string) string {
		if r, ok := superscripts[rune(m[1])]; ok {
			return string(r)
		}
		return m
	})
	s = subBracedRE.ReplaceAllStringFunc(s, func(m string) string {
		return mapScript(m[2:len(m)-1], subscripts)
	})
	s = subBareRE.ReplaceAllStringFunc(s, func(m string) string {
		if r, ok := subscripts[rune(m[1])]; ok {
			return string(r)
		}
		return m
	})

	// Drop whatever LaTeX remains.
	s = commandRE.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")

	return norm.NFC.String(s)
}

// mapScript maps each rune through the given script table, keeping runes
// that have no mapping.
func mapScript(content string, table map[rune]rune) string {
	var b strings.Builder
	for _, r := range content {
		if m, ok := table[r]; ok {
			b.WriteRune(m)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
