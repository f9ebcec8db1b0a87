package validation

import (
	"net"
	"strings"
	"testing"
)

func TestNewSourceURLValidator(t *testing.T) {
	v := NewSourceURLValidator()

	if v.AllowLocalhost {
		t.Error("Expected AllowLocalhost to be false for security")
	}
	if v.AllowPrivateIPs {
		t.Error("Expected AllowPrivateIPs to be false for security")
	}
	if v.MaxLength != 2048 {
		t.Errorf("Expected MaxLength to be 2048, got %d", v.MaxLength)
	}

	p := NewPermissiveSourceURLValidator()
	if !p.AllowLocalhost || !p.AllowPrivateIPs {
		t.Error("Expected permissive validator to allow local hosts")
	}
}

func TestValidateAndNormalize(t *testing.T) {
	v := NewSourceURLValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
		errorMsg    string
	}{
		{name: "empty URL", input: "", shouldError: true, errorMsg: "URL cannot be empty"},
		{name: "whitespace-only URL", input: "   ", shouldError: true, errorMsg: "URL cannot be empty"},
		{
			name:     "default base URL",
			input:    "https://zaceno.github.io/hatut/data",
			expected: "https://zaceno.github.io/hatut/data",
		},
		{
			name:     "trailing slash trimmed",
			input:    "https://zaceno.github.io/hatut/data/",
			expected: "https://zaceno.github.io/hatut/data",
		},
		{
			name:     "scheme added",
			input:    "stories.example.org/data",
			expected: "https://stories.example.org/data",
		},
		{name: "ftp rejected", input: "ftp://stories.example.org", shouldError: true, errorMsg: "http or https"},
		{name: "query rejected", input: "https://stories.example.org/data?x=1", shouldError: true, errorMsg: "query or fragment"},
		{name: "fragment rejected", input: "https://stories.example.org/data#top", shouldError: true, errorMsg: "query or fragment"},
		{name: "traversal rejected", input: "https://stories.example.org/../etc", shouldError: true, errorMsg: "traversal"},
		{name: "quote rejected", input: "https://stories.example.org/\"data", shouldError: true, errorMsg: "invalid characters"},
		{name: "localhost rejected", input: "http://localhost:8080/data", shouldError: true, errorMsg: "localhost"},
		{name: "loopback rejected", input: "http://127.0.0.1/data", shouldError: true, errorMsg: "localhost"},
		{name: "private IP rejected", input: "http://192.168.1.10/data", shouldError: true, errorMsg: "private IP"},
		{name: "unroutable rejected", input: "http://0.0.0.0/data", shouldError: true, errorMsg: "unroutable"},
		{name: "too long", input: "https://stories.example.org/" + strings.Repeat("a", 2048), shouldError: true, errorMsg: "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ValidateAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPermissiveAllowsLocal(t *testing.T) {
	v := NewPermissiveSourceURLValidator()

	for _, input := range []string{"http://127.0.0.1:8080/data", "http://localhost/data", "http://10.0.0.5/data"} {
		if _, err := v.ValidateAndNormalize(input); err != nil {
			t.Errorf("permissive validator rejected %q: %v", input, err)
		}
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"172.32.0.1", false},
		{"192.168.0.1", true},
		{"169.254.1.1", true},
		{"8.8.8.8", false},
		{"fd00::1", true},
		{"fe80::1", true},
		{"2001:4860:4860::8888", false},
	}

	for _, tt := range tests {
		if got := isPrivateIP(net.ParseIP(tt.ip)); got != tt.private {
			t.Errorf("isPrivateIP(%s) = %v, want %v", tt.ip, got, tt.private)
		}
	}
}
