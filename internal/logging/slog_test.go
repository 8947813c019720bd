package logging

import (
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty token", token: "", want: "<empty>"},
		{name: "short token", token: "abc", want: "[token:3 chars]"},
		{name: "long token", token: strings.Repeat("x", 1842), want: "[token:1842 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.token); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestAnonymizeEmail(t *testing.T) {
	if got := AnonymizeEmail(""); got != "" {
		t.Errorf("AnonymizeEmail(\"\") = %q, want empty", got)
	}

	a := AnonymizeEmail("alice@example.com")
	b := AnonymizeEmail("alice@example.com")
	c := AnonymizeEmail("bob@example.com")

	if !strings.HasPrefix(a, "user:") {
		t.Errorf("AnonymizeEmail should prefix with user:, got %q", a)
	}
	if a != b {
		t.Errorf("AnonymizeEmail should be deterministic: %q != %q", a, b)
	}
	if a == c {
		t.Errorf("different emails should hash differently")
	}
	// Raw address must never leak into the anonymized form
	if strings.Contains(a, "alice") || strings.Contains(a, "example.com") {
		t.Errorf("AnonymizeEmail leaked PII: %q", a)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "example.com"},
		{"", ""},
		{"not-an-email", ""},
		{"a@b@c", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.email); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
