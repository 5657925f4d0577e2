package middleware

import (
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid simple", "my-prompt", "my-prompt", false},
		{"valid single word", "prompt", "prompt", false},
		{"valid with digits", "gpt-4-helper", "gpt-4-helper", false},
		{"uppercase normalized", "My-Prompt", "my-prompt", false},
		{"surrounding space trimmed", "  my-prompt  ", "my-prompt", false},
		{"empty", "", "", true},
		{"only spaces", "   ", "", true},
		{"leading dash", "-prompt", "", true},
		{"trailing dash", "prompt-", "", true},
		{"double dash", "my--prompt", "", true},
		{"underscore", "my_prompt", "", true},
		{"path traversal", "../etc/passwd", "", true},
		{"too long", strings.Repeat("a", MaxSlugLen+1), "", true},
		{"at max length", strings.Repeat("a", MaxSlugLen), strings.Repeat("a", MaxSlugLen), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateSlug(tt.input)
			if (errMsg != "") != tt.wantErr {
				t.Errorf("ValidateSlug(%q) errMsg = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ValidateSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateLimit(t *testing.T) {
	const def = 20

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty uses default", "", def, false},
		{"spaces use default", "  ", def, false},
		{"valid", "50", 50, false},
		{"minimum", "1", 1, false},
		{"maximum", "100", 100, false},
		{"over maximum", "101", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"not a number", "abc", 0, true},
		{"float", "2.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateLimit(tt.input, def)
			if (errMsg != "") != tt.wantErr {
				t.Errorf("ValidateLimit(%q) errMsg = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ValidateLimit(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateCategoryID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"valid", "7", 7, false},
		{"valid with space", " 42 ", 42, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"empty", "", 0, true},
		{"not a number", "general", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateCategoryID(tt.input)
			if (errMsg != "") != tt.wantErr {
				t.Errorf("ValidateCategoryID(%q) errMsg = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ValidateCategoryID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
