package submission

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

var (
	// ErrValidation is the sentinel error for schema violations.
	ErrValidation = errors.New("validation failed")
	// ErrMalformed is returned when the body is not valid JSON.
	ErrMalformed = errors.New("malformed json")
)

// ModelName is the name reported in validation error summaries.
const ModelName = "Submission"

const rootLoc = "__root__"

// Submission is the two-field payload accepted on POST /code.
type Submission struct {
	Data string `json:"data"`
	Name string `json:"name"`
}

// LogValue keeps submitted code out of logs unless the raw body is logged explicitly.
func (s Submission) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name),
		slog.Int("data_len", len(s.Data)),
	)
}

// Violation describes one failed constraint.
type Violation struct {
	Loc  string `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationError collects every violation found in a single body.
type ValidationError struct {
	Model      string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	noun := "errors"
	if len(e.Violations) == 1 {
		noun = "error"
	}
	fmt.Fprintf(&b, "%d validation %s for %s", len(e.Violations), noun, e.Model)
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "\n%s\n  %s (type=%s)", v.Loc, v.Msg, v.Type)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var (
	violationMissing = Violation{Msg: "field required", Type: "value_error.missing"}
	violationNone    = Violation{Msg: "none is not an allowed value", Type: "type_error.none.not_allowed"}
	violationStr     = Violation{Msg: "str type expected", Type: "type_error.str"}
	violationExtra   = Violation{Msg: "extra fields not permitted", Type: "value_error.extra"}
	violationDict    = Violation{Msg: "value is not a valid dict", Type: "type_error.dict"}
)

func at(loc string, v Violation) Violation {
	v.Loc = loc
	return v
}

// declared lists the permitted keys in reporting order.
var declared = []string{"data", "name"}

func isDeclared(key string) bool {
	for _, d := range declared {
		if d == key {
			return true
		}
	}
	return false
}

// Parse validates body as a Submission. It succeeds only for a JSON object
// holding exactly the string fields data and name. Any other shape yields a
// *ValidationError listing every violation; invalid JSON yields ErrMalformed.
func Parse(body []byte) (Submission, error) {
	if !json.Valid(body) {
		return Submission{}, fmt.Errorf("%w: body is not a valid JSON document", ErrMalformed)
	}
	if !utf8.Valid(body) {
		return Submission{}, fmt.Errorf("%w: body is not valid UTF-8", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Submission{}, &ValidationError{Model: ModelName, Violations: []Violation{at(rootLoc, violationDict)}}
	}

	fields := make(map[string]json.RawMessage)
	var extras []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if _, seen := fields[key]; !seen && !isDeclared(key) {
			extras = append(extras, key)
		}
		// Later duplicates replace earlier ones.
		fields[key] = bytes.TrimSpace(raw)
	}

	var (
		values     = make(map[string]string, len(declared))
		violations []Violation
	)
	for _, name := range declared {
		raw, ok := fields[name]
		switch {
		case !ok:
			violations = append(violations, at(name, violationMissing))
		case bytes.Equal(raw, []byte("null")):
			violations = append(violations, at(name, violationNone))
		case len(raw) == 0 || raw[0] != '"':
			violations = append(violations, at(name, violationStr))
		default:
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return Submission{}, fmt.Errorf("%w: field %s: %v", ErrMalformed, name, err)
			}
			values[name] = s
		}
	}
	for _, key := range extras {
		violations = append(violations, at(key, violationExtra))
	}

	if len(violations) > 0 {
		return Submission{}, &ValidationError{Model: ModelName, Violations: violations}
	}
	return Submission{Data: values["data"], Name: values["name"]}, nil
}
