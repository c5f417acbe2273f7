package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "simple error",
			err:      New(CodeBasketNotFound, "basket not found"),
			expected: "BASKET_NOT_FOUND: basket not found",
		},
		{
			name:     "wrapped error",
			err:      Wrap(CodeRemoteError, "request failed", fmt.Errorf("connection refused")),
			expected: "REMOTE_ERROR: request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Run("no wrapped error", func(t *testing.T) {
		err := New(CodeBasketNotFound, "not found")
		if err.Unwrap() != nil {
			t.Errorf("Unwrap() = %v, want nil", err.Unwrap())
		}
	})

	t.Run("stdlib errors.Is compatibility", func(t *testing.T) {
		underlying := fmt.Errorf("io error")
		err := RemoteUnavailable(underlying)

		if !errors.Is(err, underlying) {
			t.Error("errors.Is() = false, want true for wrapped error")
		}
	})

	t.Run("stdlib errors.As compatibility", func(t *testing.T) {
		err := fmt.Errorf("get basket: %w", BasketNotFound("orders"))

		var pErr *Error
		if !As(err, &pErr) {
			t.Fatal("As() = false, want true for pantry-mcp error")
		}
		if pErr.Code != CodeBasketNotFound {
			t.Errorf("As() code = %q, want %q", pErr.Code, CodeBasketNotFound)
		}
	})
}

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "pantry error", err: ConfigMissing("pantryId"), expected: CodeConfigMissing},
		{name: "standard error", err: fmt.Errorf("standard error"), expected: ""},
		{
			name:     "wrapped standard error",
			err:      fmt.Errorf("wrapped: %w", InvalidResponse(nil)),
			expected: CodeInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.expected {
				t.Errorf("Code() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		err    error
		name   string
		config bool
		remote bool
	}{
		{name: "config missing", err: ConfigMissing("basketName"), config: true},
		{name: "invalid params", err: InvalidParams("value must be an object"), config: true},
		{name: "not found", err: BasketNotFound("b"), remote: true},
		{name: "remote status", err: RemoteStatus(500, ""), remote: true},
		{name: "network", err: RemoteUnavailable(fmt.Errorf("dial tcp")), remote: true},
		{name: "malformed", err: InvalidResponse(fmt.Errorf("eof")), remote: true},
		{name: "plain", err: fmt.Errorf("plain")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfig(tt.err); got != tt.config {
				t.Errorf("IsConfig() = %v, want %v", got, tt.config)
			}
			if got := IsRemote(tt.err); got != tt.remote {
				t.Errorf("IsRemote() = %v, want %v", got, tt.remote)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	if got := Status(BasketNotFound("b")); got != 404 {
		t.Errorf("Status(not found) = %d, want 404", got)
	}
	if got := Status(fmt.Errorf("wrapped: %w", RemoteStatus(503, "down"))); got != 503 {
		t.Errorf("Status(wrapped 503) = %d, want 503", got)
	}
	if got := Status(RemoteUnavailable(fmt.Errorf("timeout"))); got != 0 {
		t.Errorf("Status(network) = %d, want 0", got)
	}
	if got := Status(fmt.Errorf("plain")); got != 0 {
		t.Errorf("Status(plain) = %d, want 0", got)
	}
}

func TestConfigMissing(t *testing.T) {
	err := ConfigMissing("pantryId and basketName")

	if err.Code != CodeConfigMissing {
		t.Errorf("Code = %q, want %q", err.Code, CodeConfigMissing)
	}
	if !strings.Contains(err.Message, "pantryId and basketName") {
		t.Errorf("Message = %q, should name the missing identifiers", err.Message)
	}
	if !strings.Contains(err.Message, "PANTRY_ID") {
		t.Errorf("Message = %q, should mention the environment fallback", err.Message)
	}
}

func TestRemoteStatus(t *testing.T) {
	t.Run("includes body", func(t *testing.T) {
		err := RemoteStatus(400, "Could not get basket")
		if !strings.Contains(err.Message, "400") || !strings.Contains(err.Message, "Could not get basket") {
			t.Errorf("Message = %q, should include status and body", err.Message)
		}
	})

	t.Run("truncates long body", func(t *testing.T) {
		err := RemoteStatus(500, strings.Repeat("x", 2000))
		if len(err.Message) > maxBodyInMessage+64 {
			t.Errorf("Message length = %d, want truncated", len(err.Message))
		}
		if !strings.HasSuffix(err.Message, "...") {
			t.Errorf("Message = %q, should end with ellipsis", err.Message[len(err.Message)-10:])
		}
	})

	t.Run("empty body", func(t *testing.T) {
		err := RemoteStatus(502, "")
		if err.Message != "pantry responded with status 502" {
			t.Errorf("Message = %q", err.Message)
		}
	})
}

func TestBasketNotFound(t *testing.T) {
	err := BasketNotFound("orders")

	if err.Code != CodeBasketNotFound {
		t.Errorf("Code = %q, want %q", err.Code, CodeBasketNotFound)
	}
	if !strings.Contains(err.Message, "orders") {
		t.Errorf("Message = %q, should contain %q", err.Message, "orders")
	}
}

func BenchmarkCode(b *testing.B) {
	err := New(CodeBasketNotFound, "not found")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Code(err)
	}
}
