// Package inputval validates form input structs via `validate` and
// `label` tags, producing user-facing error messages.
//
// Supported rules: required, min=N, max=N, email, date, mgcode,
// httpurl. Empty optional values skip format rules.
package inputval

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// FieldError is one validation failure with its display message.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures in field order.
type Result struct {
	Errors []FieldError
}

func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All returns every message joined with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// IsValidEmail reports whether s is a plain RFC 5322 address (no
// display name).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return err == nil
}

// IsValidMGCode reports whether s is an uppercase letter sequence.
func IsValidMGCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// IsValidHTTPURL reports whether s is an absolute http or https URL.
func IsValidHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks the struct's string fields against their `validate`
// tags. At most one error is recorded per field.
func Validate(input any) *Result {
	res := &Result{}
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		rules := field.Tag.Get("validate")
		if rules == "" || field.Type.Kind() != reflect.String {
			continue
		}
		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := v.Field(i).String()

		if msg := checkField(value, label, strings.Split(rules, ",")); msg != "" {
			res.Errors = append(res.Errors, FieldError{Field: field.Name, Message: msg})
		}
	}
	return res
}

func checkField(value, label string, rules []string) string {
	trimmed := strings.TrimSpace(value)
	required := false
	for _, rule := range rules {
		if rule == "required" {
			required = true
		}
	}
	if trimmed == "" {
		if required {
			return fmt.Sprintf("%s is required.", label)
		}
		return ""
	}

	for _, rule := range rules {
		switch {
		case rule == "required":
			// handled above
		case rule == "email":
			if !IsValidEmail(trimmed) {
				return "A valid email address is required."
			}
		case rule == "date":
			if !IsValidDate(trimmed) {
				return fmt.Sprintf("%s must be a date in YYYY-MM-DD format.", label)
			}
		case rule == "mgcode":
			if !IsValidMGCode(trimmed) {
				return fmt.Sprintf("%s must be uppercase letters only.", label)
			}
		case rule == "httpurl":
			if !IsValidHTTPURL(trimmed) {
				return fmt.Sprintf("%s must be an http or https URL.", label)
			}
		case strings.HasPrefix(rule, "min="):
			n, err := strconv.Atoi(rule[len("min="):])
			if err == nil && len(value) < n {
				return fmt.Sprintf("%s must be at least %d characters.", label, n)
			}
		case strings.HasPrefix(rule, "max="):
			n, err := strconv.Atoi(rule[len("max="):])
			if err == nil && len(value) > n {
				return fmt.Sprintf("%s must be at most %d characters.", label, n)
			}
		}
	}
	return ""
}
