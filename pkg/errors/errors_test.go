package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeInvalidTerminal, "terminal id %q contains a colon", "X1:A")
	if want := `INVALID_TERMINAL: terminal id "X1:A" contains a colon`; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected no cause, got %v", err.Unwrap())
	}

	cause := errors.New("unexpected EOF")
	wrapped := Wrap(ErrCodeInvalidSnapshot, cause, "decode %s", "build.snap")
	if want := "INVALID_SNAPSHOT: decode build.snap: unexpected EOF"; wrapped.Error() != want {
		t.Errorf("expected %q, got %q", want, wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected the cause to be reachable with errors.Is")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeExhausted,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidProject, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidProject,
			expected: true,
		},
		{
			name:     "typed port error",
			err:      &PortNotFoundError{Component: "K1", Port: "A3", Available: []string{"A1", "A2"}},
			code:     ErrCodePortNotFound,
			expected: true,
		},
		{
			name:     "typed error behind fmt wrap",
			err:      fmt.Errorf("connect: %w", &IndexOutOfRangeError{Index: 4, Len: 2}),
			code:     ErrCodeComponentNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidTerminal, "test"),
			expected: ErrCodeInvalidTerminal,
		},
		{
			name:     "exhausted",
			err:      &ExhaustedError{Source: "X007"},
			expected: ErrCodeExhausted,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	err := fmt.Errorf("load: %w", New(ErrCodeTemplateNotFound, "device %q: unknown template %q", "LS-01", "switch"))
	if want := `device "LS-01": unknown template "switch"`; UserMessage(err) != want {
		t.Errorf("expected %q, got %q", want, UserMessage(err))
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("expected plain error, got %q", got)
	}
}

func TestTypedMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "port not found",
			err:  &PortNotFoundError{Component: "K1", Port: "A3", Available: []string{"A1", "A2"}},
			want: `port "A3" not found on component "K1" (available: A1, A2)`,
		},
		{
			name: "index out of range",
			err:  &IndexOutOfRangeError{Index: 5, Len: 3},
			want: "component index 5 is out of bounds (valid: 0-2)",
		},
		{
			name: "index into empty circuit",
			err:  &IndexOutOfRangeError{Index: 0, Len: 0},
			want: "component index 0 is out of bounds: circuit is empty",
		},
		{
			name: "exhausted",
			err:  &ExhaustedError{Source: "X007", Consumed: []string{"4", "5"}},
			want: `reuse source "X007" exhausted after 2 value(s) [4, 5]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
