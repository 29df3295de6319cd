package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid names
		{
			name:    "simple name",
			input:   "creative",
			wantErr: nil,
		},
		{
			name:    "name with hyphen",
			input:   "my-style",
			wantErr: nil,
		},
		{
			name:    "name with underscore",
			input:   "my_style",
			wantErr: nil,
		},
		{
			name:    "name with numbers",
			input:   "style123",
			wantErr: nil,
		},
		{
			name:    "mixed case",
			input:   "MyStyle",
			wantErr: nil,
		},

		// Invalid names - empty
		{
			name:    "empty name",
			input:   "",
			wantErr: ErrInvalidAssetName,
		},

		// Invalid names - path separators
		{
			name:    "forward slash",
			input:   "path/to/style",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "backslash",
			input:   "path\\to\\style",
			wantErr: ErrInvalidAssetName,
		},

		// Invalid names - path traversal
		{
			name:    "parent directory traversal",
			input:   "../secret",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "windows parent traversal",
			input:   "..\\secret",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "double parent traversal",
			input:   "../../etc/passwd",
			wantErr: ErrInvalidAssetName,
		},

		// Invalid names - dots (could allow extension manipulation)
		{
			name:    "dot in name",
			input:   "style.css",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "hidden file",
			input:   ".hidden",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "double extension",
			input:   "style.css.bak",
			wantErr: ErrInvalidAssetName,
		},

		// Edge cases
		{
			name:    "absolute path unix",
			input:   "/etc/passwd",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "absolute path windows",
			input:   "C:\\Windows\\System32",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "just a dot",
			input:   ".",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "two dots",
			input:   "..",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTemplatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "format template", input: "typst/Header.tmpl.typ"},
		{name: "entry template", input: "markdown/entries/text-entry.tmpl.md"},
		{name: "theme template", input: "sb2nov/Header.tmpl.typ"},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "absolute", input: "/typst/Header.tmpl.typ", wantErr: true},
		{name: "parent traversal", input: "../Header.tmpl.typ", wantErr: true},
		{name: "parent only", input: "..", wantErr: true},
		{name: "backslash", input: "typst\\Header.tmpl.typ", wantErr: true},
		{name: "not clean", input: "typst//Header.tmpl.typ", wantErr: true},
		{name: "trailing dot segment", input: "typst/./Header.tmpl.typ", wantErr: true},
		{name: "nul byte", input: "typst/Header\x00.typ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateTemplatePath(tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("ValidateTemplatePath(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTemplatePath) {
				t.Errorf("ValidateTemplatePath(%q) error = %v, want ErrInvalidTemplatePath", tt.input, err)
			}
		})
	}
}
