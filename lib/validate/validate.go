// Package validate checks component input against per-field rule lists.
//
// Rules are declared once on a component schema and evaluated against the
// values collected at request time:
//
//	rules := map[string][]validate.Rule{
//	    "email": {validate.Required(), validate.Email()},
//	    "age":   {validate.Numeric(), validate.Min(18)},
//	}
//	data, err := validate.Validate(values, rules)
//	if errs := validate.Extract(err); errs != nil {
//	    // errs.Get("email") -> []string{"must be a valid email address"}
//	}
//
// Only Required fails on an empty value (nil or a blank string); every other
// rule passes empty values so optional fields can be left blank.
package validate

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Rule is a single named check on a field value.
type Rule struct {
	Name    string
	Check   func(v any) bool
	Message string
	// Always runs the check on empty values too.
	Always bool
}

// FieldError is one failed rule for one field.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Errors collects field errors. It implements error.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, rule, message string) {
	*e = append(*e, FieldError{Field: field, Rule: rule, Message: message})
}

// Has reports whether field has at least one error.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages for field in the order they were added.
func (e Errors) Get(field string) []string {
	var msgs []string
	for _, fe := range e {
		if fe.Field == field {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}

// First returns the first message for field, or "".
func (e Errors) First(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Fields returns the failing field names without duplicates.
func (e Errors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, fe := range e {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// Bag returns the errors as field -> messages.
func (e Errors) Bag() map[string][]string {
	bag := make(map[string][]string, len(e))
	for _, fe := range e {
		bag[fe.Field] = append(bag[fe.Field], fe.Message)
	}
	return bag
}

// IsEmpty reports whether there are no errors.
func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// Extract returns the Errors wrapped in err, or nil.
func Extract(err error) Errors {
	if err == nil {
		return nil
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}

// IsValidationError reports whether err carries field errors.
func IsValidationError(err error) bool {
	return Extract(err) != nil
}

// Validate checks data against rules. Fields listed in order are checked
// first, in that order; the remaining ruled fields follow alphabetically.
// On success it returns the subset of data that had rules; on failure it
// returns Errors.
func Validate(data map[string]any, rules map[string][]Rule, order ...string) (map[string]any, error) {
	var errs Errors
	validated := make(map[string]any, len(rules))

	for _, field := range fieldOrder(rules, order) {
		v := data[field]
		for _, r := range rules[field] {
			if empty(v) && !r.Always {
				continue
			}
			if !r.Check(v) {
				errs.Add(field, r.Name, r.Message)
			}
		}
		if _, ok := data[field]; ok {
			validated[field] = v
		}
	}

	if !errs.IsEmpty() {
		return nil, errs
	}
	return validated, nil
}

func fieldOrder(rules map[string][]Rule, order []string) []string {
	fields := make([]string, 0, len(rules))
	seen := make(map[string]bool, len(rules))
	for _, f := range order {
		if _, ok := rules[f]; ok && !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	rest := make([]string, 0, len(rules))
	for f := range rules {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	slices.Sort(rest)
	return append(fields, rest...)
}

func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}
