// Package editor implements the schema-driven entity form: one Schema
// per entity kind describes the editable fields, and a Form carries the
// raw string values a UI collects. Validation and decoding are generic
// over the schema, so adding an editable field is a schema change, not
// new code.
package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Kind selects the input widget and the coercion applied on decode.
type Kind int

const (
	Text Kind = iota
	Number
	Date
	Select
	Color
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	case Date:
		return "date"
	case Select:
		return "select"
	case Color:
		return "color"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Option is one choice of a Select field.
type Option struct {
	Value string
	Label string
}

// Field describes one editable attribute. Key doubles as the entity's
// JSON tag, which is what lets Decode target domain structs directly.
// Rules is a validator tag expression such as "required,max=80".
type Field struct {
	Key     string
	Label   string
	Kind    Kind
	Rules   string
	Options []Option
}

type Schema []Field

// Form holds raw user input keyed by field key. Values stay strings
// until Decode coerces them per field kind.
type Form map[string]string

var validate = validator.New()

// ValidationError aggregates per-field failures so a UI can annotate
// every bad input in one pass.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Validate checks every field's value against its kind and rules.
// Unknown form keys are rejected so typos surface instead of silently
// dropping input.
func (s Schema) Validate(f Form) error {
	fields := make(map[string]string)

	known := make(map[string]struct{}, len(s))
	for _, field := range s {
		known[field.Key] = struct{}{}
	}
	for key := range f {
		if _, ok := known[key]; !ok {
			fields[key] = "unknown field"
		}
	}

	for _, field := range s {
		value := f[field.Key]
		if msg := field.check(value); msg != "" {
			fields[field.Key] = msg
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (field Field) check(value string) string {
	if value == "" {
		if strings.Contains(field.Rules, "required") {
			return "required"
		}
		return ""
	}

	switch field.Kind {
	case Number:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "not a number"
		}
	case Select:
		if !field.hasOption(value) {
			return "not one of the allowed values"
		}
	case Color:
		if err := validate.Var(value, "hexcolor"); err != nil {
			return "not a hex color"
		}
	case Date:
		if err := validate.Var(value, "datetime=2006-01-02"); err != nil {
			return "not a date (YYYY-MM-DD)"
		}
	}

	if field.Rules != "" {
		if err := validate.Var(value, field.Rules); err != nil {
			return describeRuleError(err)
		}
	}
	return ""
}

func (field Field) hasOption(value string) bool {
	for _, opt := range field.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func describeRuleError(err error) string {
	var verrs validator.ValidationErrors
	if crerr.As(err, &verrs) && len(verrs) > 0 {
		v := verrs[0]
		if v.Param() != "" {
			return "fails " + v.Tag() + "=" + v.Param()
		}
		return "fails " + v.Tag()
	}
	return err.Error()
}

// Decode validates the form and writes the coerced values into dst,
// matching field keys to dst's JSON tags. Number fields become JSON
// numbers; everything else stays a string. Absent optional fields are
// omitted so dst keeps its prior values for them.
func (s Schema) Decode(f Form, dst any) error {
	if err := s.Validate(f); err != nil {
		return err
	}

	payload := make(map[string]any, len(s))
	for _, field := range s {
		value, ok := f[field.Key]
		if !ok || value == "" {
			continue
		}
		switch field.Kind {
		case Number:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return crerr.Wrapf(err, "decode %s", field.Key)
			}
			payload[field.Key] = n
		default:
			payload[field.Key] = value
		}
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "encode form")
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return crerr.Wrap(err, "decode form")
	}
	return nil
}
