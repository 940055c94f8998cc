// Package htmlsanitize cleans user-authored rich text before it is
// rendered into templates. Follow-up notes and gathering notes accept
// a small HTML subset; everything else is stripped.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// UGCPolicy covers paragraphs, emphasis, lists, blockquotes,
	// headings, code blocks and links. Add the table subset and the
	// formatting tags the note editor emits.
	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").OnElements("table", "th", "td", "tr")
	p.AllowElements("u", "s", "sub", "sup", "mark", "hr")
	p.AllowImages()

	return p
}

// Sanitize strips unsafe markup and returns the cleaned HTML string.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes and marks the result safe for template output.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags. A string needs
// both '<' and '>' before we treat it as markup, so "5 < 10" stays plain.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}

// PlainTextToHTML escapes s and wraps it in a paragraph, converting
// newlines to <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders a stored note for a template: plain text is
// escaped and paragraph-wrapped, anything with markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
