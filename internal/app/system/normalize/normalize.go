// Package normalize canonicalizes user-supplied strings before they
// are validated or stored.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status lowercases and trims an account status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone strips all whitespace from a phone number.
func Phone(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// MGCode uppercases and trims an MG lineage code.
func MGCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
