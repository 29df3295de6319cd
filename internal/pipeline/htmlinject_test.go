package pipeline

import (
	"context"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "body { color: red; }", "body { color: red; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation", "</STYLE>", `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	const css = "h1 { color: red; }"
	const block = "<style>\n" + css + "\n</style>\n"

	tests := []struct {
		name     string
		html     string
		css      string
		expected string
	}{
		{
			name:     "empty css leaves html unchanged",
			html:     "<html><head></head></html>",
			css:      "",
			expected: "<html><head></head></html>",
		},
		{
			name:     "before closing head",
			html:     "<html><head><title>CV</title></head><body></body></html>",
			css:      css,
			expected: "<html><head><title>CV</title>" + block + "</head><body></body></html>",
		},
		{
			name:     "uppercase head",
			html:     "<HTML><HEAD></HEAD></HTML>",
			css:      css,
			expected: "<HTML><HEAD>" + block + "</HEAD></HTML>",
		},
		{
			name:     "after body when no head",
			html:     `<body class="cv"><p>x</p></body>`,
			css:      css,
			expected: `<body class="cv">` + block + "<p>x</p></body>",
		},
		{
			name:     "prepended to fragment",
			html:     "<p>x</p>",
			css:      css,
			expected: block + "<p>x</p>",
		},
	}

	injector := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.expected {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInjectCSS_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<head></head>"
	if got := (&CSSInjection{}).InjectCSS(ctx, html, "p{}"); got != html {
		t.Errorf("InjectCSS() with canceled context = %q, want unchanged", got)
	}
}
