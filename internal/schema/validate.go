package schema

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

// Validation error codes.
const (
	ErrCodeRead   = "E001" // file unreadable
	ErrCodeParse  = "E002" // not valid JSON
	ErrCodeSchema = "E003" // schema violation
)

// Kind selects which schema definition a payload is checked against.
type Kind string

const (
	KindFormula  Kind = "formula"
	KindDocument Kind = "document"
)

// ValidationError is a single validation failure.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
)

func compiledSchema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		schemaValue = ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	})
	return schemaValue
}

func definitionPath(kind Kind) (string, error) {
	switch kind {
	case KindFormula:
		return "#Formula", nil
	case KindDocument:
		return "#Document", nil
	default:
		return "", fmt.Errorf("unknown schema kind %q", kind)
	}
}

// ValidateFile checks a JSON content file against the schema for kind.
// Returns the list of validation errors; an empty list means the payload
// is valid. The error return is reserved for programmer mistakes (bad
// kind), not content problems.
func ValidateFile(kind Kind, path string) ([]ValidationError, error) {
	if _, err := definitionPath(kind); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{
			Field:   "file",
			Message: fmt.Sprintf("cannot read %s: %v", path, err),
			Code:    ErrCodeRead,
		}}, nil
	}
	return Validate(kind, path, data)
}

// Validate checks raw JSON bytes against the schema for kind. The filename
// is used only for error positions.
func Validate(kind Kind, filename string, data []byte) ([]ValidationError, error) {
	defPath, err := definitionPath(kind)
	if err != nil {
		return nil, err
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return []ValidationError{{
			Field:   "json",
			Message: err.Error(),
			Code:    ErrCodeParse,
		}}, nil
	}

	schema := compiledSchema()
	def := schema.LookupPath(cue.ParsePath(defPath))
	if !def.Exists() {
		return nil, fmt.Errorf("schema definition %s not found", defPath)
	}

	value := schema.Context().BuildExpr(expr)
	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var out []ValidationError
		for _, e := range cueerrors.Errors(err) {
			ve := ValidationError{
				Field:   strings.Join(e.Path(), "."),
				Message: e.Error(),
				Code:    ErrCodeSchema,
			}
			if pos := e.Position(); pos.IsValid() {
				ve.Line = pos.Line()
			}
			out = append(out, ve)
		}
		return out, nil
	}
	return nil, nil
}
