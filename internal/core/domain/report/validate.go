package report

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

// Severity grades an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding about one chart of a report.
type Issue struct {
	Chart    int
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("chart %d: %s: %s", i.Chart+1, i.Severity, i.Message)
}

const tagSameLen = "samelen"

var (
	setupOnce sync.Once
	validate  *validator.Validate
	trans     ut.Translator
)

func setup() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterStructValidation(traceStructLevel, Trace{})

	uni := ut.New(en.New())
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)
	_ = validate.RegisterTranslation("oneof", trans,
		func(ut ut.Translator) error {
			return ut.Add("oneof", "{0} must be one of [{1}]", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("oneof", fe.Field(), fe.Param())
			return t
		},
	)
	_ = validate.RegisterTranslation(tagSameLen, trans,
		func(ut ut.Translator) error {
			return ut.Add(tagSameLen, "{0} must have as many values as {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tagSameLen, fe.Field(), fe.Param())
			return t
		},
	)
}

// traceStructLevel checks that both value columns line up.
func traceStructLevel(sl validator.StructLevel) {
	t := sl.Current().Interface().(Trace)
	if t.Type == "pie" {
		if len(t.Labels) != len(t.Values) {
			sl.ReportError(t.Values, "values", "Values", tagSameLen, "labels")
		}
		return
	}
	if len(t.X) != len(t.Y) {
		sl.ReportError(t.Y, "y", "Y", tagSameLen, "x")
	}
}

// Validate checks every chart of a report. Structural problems are errors;
// a trace whose kind does not suit its data is a warning.
func Validate(charts []Chart) []Issue {
	setupOnce.Do(setup)

	var issues []Issue
	for i, c := range charts {
		if err := validate.Struct(c); err != nil {
			verrs, ok := err.(validator.ValidationErrors)
			if !ok {
				issues = append(issues, Issue{Chart: i, Severity: SeverityError, Message: err.Error()})
				continue
			}
			for _, fe := range verrs {
				issues = append(issues, Issue{
					Chart:    i,
					Severity: SeverityError,
					Message:  fmt.Sprintf("%s: %s", fieldPath(fe), fe.Translate(trans)),
				})
			}
			continue
		}

		for j, t := range c.Data {
			x, y := t.Series()
			valid := ValidKinds(x, y)
			if !containsKind(valid, t.Kind()) {
				issues = append(issues, Issue{
					Chart:    i,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("data[%d]: %s chart does not suit this data (suitable: %s)", j, t.Kind(), joinKinds(valid)),
				})
			}
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// fieldPath drops the root type name from the namespace: Chart.data[0].type -> data[0].type.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func joinKinds(kinds []Kind) string {
	if len(kinds) == 0 {
		return "none"
	}
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = string(k)
	}
	return strings.Join(s, ", ")
}
