// Package validate checks request inputs against their struct tags and reports
// per-field problems as data instead of errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return instance
}

// Result is the outcome of validating one input: either OK or a set of field errors.
type Result struct {
	Fields map[string]string
}

// OK reports whether the input passed validation.
func (r Result) OK() bool { return len(r.Fields) == 0 }

// First returns one field error as "field: reason", in field-name order, for single-line messages.
func (r Result) First() string {
	if r.OK() {
		return ""
	}
	var first string
	for k := range r.Fields {
		if first == "" || k < first {
			first = k
		}
	}
	return first + ": " + r.Fields[first]
}

// Add records a field error that tags cannot express.
func (r *Result) Add(field, reason string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[field] = reason
}

// Struct validates v using its `validate` tags.
func Struct(v any) Result {
	err := get().Struct(v)
	if err == nil {
		return Result{}
	}

	var res Result
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Add("body", "invalid")
		return res
	}
	for _, fe := range verrs {
		res.Add(fe.Field(), reason(fe))
	}
	return res
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a time in HH:MM format"
	case "required_without":
		return "required when " + fe.Param() + " is missing"
	}
	return "invalid (" + fe.Tag() + ")"
}
