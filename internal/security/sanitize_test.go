package security

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errMsg  string
		wantErr bool
	}{
		// Valid cases
		{name: "uuid pantry id", input: "0f7c6f1e-5a7f-4bd5-9d0b-6a1d9e1c2f3a", wantErr: false},
		{name: "simple basket", input: "orders", wantErr: false},
		{name: "with spaces", input: "my basket", wantErr: false},
		{name: "with dots", input: "v1.2", wantErr: false},
		{name: "unicode", input: "panier-été", wantErr: false},
		{name: "max length", input: strings.Repeat("a", 256), wantErr: false},

		// Invalid cases
		{name: "empty", input: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too long", input: strings.Repeat("a", 257), wantErr: true, errMsg: "exceeds maximum length"},
		{name: "dot", input: ".", wantErr: true, errMsg: "relative path component"},
		{name: "dot dot", input: "..", wantErr: true, errMsg: "relative path component"},
		{name: "slash", input: "a/b", wantErr: true, errMsg: "path separators"},
		{name: "traversal", input: "../other", wantErr: true, errMsg: "path separators"},
		{name: "backslash", input: `a\b`, wantErr: true, errMsg: "path separators"},
		{name: "null byte", input: "a\x00b", wantErr: true, errMsg: "control character"},
		{name: "newline", input: "basket\n", wantErr: true, errMsg: "control character"},
		{name: "delete char", input: "basket\x7f", wantErr: true, errMsg: "control character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier("basketName", tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateIdentifier(%q) expected error, got nil", tt.input)
					return
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateIdentifier(%q) error = %v, want error containing %q", tt.input, err, tt.errMsg)
				}
				if !strings.HasPrefix(err.Error(), "basketName") {
					t.Errorf("ValidateIdentifier(%q) error = %v, should name the identifier", tt.input, err)
				}
			} else if err != nil {
				t.Errorf("ValidateIdentifier(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
