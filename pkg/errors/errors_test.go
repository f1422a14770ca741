package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeFetch, cause, "fetch page %d", 3)

	if err.Code != ErrCodeFetch {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFetch)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if got := err.Error(); got != "FETCH_ERROR: fetch page 3: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() should return the cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
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
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "outer code of wrapped error",
			err:      Wrap(ErrCodeFetch, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeFetch,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeFetch, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInvalidInput,
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
		{"Error type", New(ErrCodeInvalidPhoto, "test"), ErrCodeInvalidPhoto},
		{"wrapped returns outer", Wrap(ErrCodeFetch, New(ErrCodeNetwork, "x"), "y"), ErrCodeFetch},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
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
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain", errors.New("plain error"), "plain error"},
		{"chain", Wrap(ErrCodeFetch, New(ErrCodeInvalidInput, "page must be >= 1"), "fetch page 0"), "fetch page 0: page must be >= 1"},
		{"plain cause", Wrap(ErrCodeFetch, errors.New("connection refused"), "fetch page 3"), "fetch page 3: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	long := make([]byte, maxIDLength+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		id      string
		wantErr bool
	}{
		{"p5", false},
		{"1084", false},
		{"", true},
		{"   ", true},
		{"bad\x00id", true},
		{string(long), true},
	}
	for _, tt := range tests {
		err := ValidateID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidPhoto) {
			t.Errorf("ValidateID(%q) code = %v", tt.id, GetCode(err))
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://picsum.photos/id/0/5000/3333", false},
		{"http://localhost:8080/a.jpg", false},
		{"", true},
		{"ftp://example.com/a.jpg", true},
		{"https://", true},
		{"://nope", true},
	}
	for _, tt := range tests {
		if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestValidateDimensionAndPage(t *testing.T) {
	if err := ValidateDimension("height", 0); err == nil {
		t.Error("zero height should be rejected")
	}
	if err := ValidateDimension("width", 300); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePage(0, 20); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("page 0: got %v", err)
	}
	if err := ValidatePage(1, 0); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("size 0: got %v", err)
	}
	if err := ValidatePage(1, 20); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
