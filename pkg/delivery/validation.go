package delivery

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/orderrelay/pkg/email"
)

// FieldError names a request field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects every failed rule of a request.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrInvalidRequest.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Unwrap() error { return ErrInvalidRequest }

// Fields returns the distinct failing field names in rule order.
func (ve ValidationErrors) Fields() []string {
	seen := make(map[string]bool, len(ve))
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		if !seen[e.Field] {
			seen[e.Field] = true
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// Has reports whether field failed at least one rule.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

type rule struct {
	check func() bool
	err   FieldError
}

func apply(rules ...rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.check() {
			errs = append(errs, r.err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func required(field, value string) rule {
	return rule{
		check: func() bool { return strings.TrimSpace(value) != "" },
		err:   FieldError{Field: field, Message: "field is required"},
	}
}

// address only fails for non-empty values; emptiness is reported by required.
func address(field, value string) rule {
	return rule{
		check: func() bool { return strings.TrimSpace(value) == "" || email.ValidAddress(value) },
		err:   FieldError{Field: field, Message: "must be a valid email address"},
	}
}
