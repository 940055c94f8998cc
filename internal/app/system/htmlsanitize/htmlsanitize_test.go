package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/church611/shepherdview/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Hello, World!"); got != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_PreservesSafeSubset(t *testing.T) {
	cases := []string{
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<ul><li>Item 1</li><li>Item 2</li></ul>",
		"<ol><li>First</li><li>Second</li></ol>",
		"<blockquote>A quote</blockquote>",
		"<h1>Heading 1</h1><h2>Heading 2</h2><h3>Heading 3</h3>",
		"<pre><code>function test() {}</code></pre>",
		"<u>underline</u> <s>strikethrough</s> <sub>sub</sub> <sup>sup</sup> <mark>mark</mark>",
		"<table><thead><tr><th>Header</th></tr></thead><tbody><tr><td>Cell</td></tr></tbody></table>",
	}
	for _, input := range cases {
		if got := htmlsanitize.Sanitize(input); got != input {
			t.Errorf("Sanitize(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesEventHandlers(t *testing.T) {
	got := htmlsanitize.Sanitize(`<img src="x" onerror="alert('xss')">`)
	if strings.Contains(got, "onerror") {
		t.Errorf("expected onerror attribute removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	got := htmlsanitize.Sanitize(input)
	if strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestSanitize_AllowsTableAttributes(t *testing.T) {
	got := htmlsanitize.Sanitize(`<table class="stats"><tr><td colspan="2" rowspan="2" style="text-align:center">Cell</td></tr></table>`)
	for _, want := range []string{`colspan="2"`, `rowspan="2"`, `class="stats"`, "style="} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s preserved, got %q", want, got)
		}
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	got := htmlsanitize.Sanitize(`<p>Content</p><iframe src="https://evil.com"></iframe>`)
	if strings.Contains(got, "iframe") {
		t.Errorf("expected iframe removed, got %q", got)
	}
	if !strings.Contains(got, "Content") {
		t.Errorf("expected safe content preserved, got %q", got)
	}
}

func TestSanitize_RemovesFormElements(t *testing.T) {
	got := htmlsanitize.Sanitize(`<form action="/submit"><input type="text" name="data"><button>Go</button></form>`)
	if strings.Contains(got, "<form") || strings.Contains(got, "<input") {
		t.Errorf("expected form elements removed, got %q", got)
	}
}

func TestSanitize_RemovesDataURLInImage(t *testing.T) {
	got := htmlsanitize.Sanitize(`<img src="data:text/html,<script>alert('xss')</script>">`)
	if strings.Contains(got, "data:text/html") {
		t.Errorf("expected data: src removed, got %q", got)
	}
}

func TestSanitizeToHTML(t *testing.T) {
	got := htmlsanitize.SanitizeToHTML("<p>Hello</p><script>alert('xss')</script>")
	if got != template.HTML("<p>Hello</p>") {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"<p>Hello</p>", false},
		{"5 < 10", true},
		{"5 > 3", true},
	}
	for _, tc := range cases {
		if got := htmlsanitize.IsPlainText(tc.in); got != tc.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2\nLine 3", "<p>Line 1<br>Line 2<br>Line 3</p>"},
		{"A & B", "<p>A &amp; B</p>"},
	}
	for _, tc := range cases {
		if got := htmlsanitize.PlainTextToHTML(tc.in); got != tc.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlainTextToHTML_EscapesMarkup(t *testing.T) {
	got := htmlsanitize.PlainTextToHTML("<script>alert('xss')</script>")
	if strings.Contains(got, "<script>") {
		t.Errorf("expected markup escaped, got %q", got)
	}
}

func TestPrepareForDisplay(t *testing.T) {
	cases := []struct {
		in   string
		want template.HTML
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
		{"<p>Hello</p>", "<p>Hello</p>"},
		{"<p>Hello</p><script>alert('xss')</script>", "<p>Hello</p>"},
	}
	for _, tc := range cases {
		if got := htmlsanitize.PrepareForDisplay(tc.in); got != tc.want {
			t.Errorf("PrepareForDisplay(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
