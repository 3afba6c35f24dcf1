package hxlive

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pthm/hxlive/lib/encoding"
)

var sentinels = []error{
	ErrNotFound,
	ErrUnknownProperty,
	ErrUnknownAction,
	ErrCallbackNotSerializable,
	ErrCallbackNotFound,
	ErrNotCallback,
	ErrDecryptFailed,
	ErrSignatureInvalid,
	ErrInvalidFormat,
	ErrSchemaMismatch,
	ErrNoRenderer,
	ErrInvalidConfig,
}

func TestSentinelErrors(t *testing.T) {
	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestErrorMessages(t *testing.T) {
	for _, err := range sentinels {
		if !strings.HasPrefix(err.Error(), "hxlive:") {
			t.Errorf("error %q should start with 'hxlive:'", err.Error())
		}
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("wrapped: %w", ErrNotFound), true},
		{"other error", errors.New("other error"), false},
		{"ErrDecryptFailed", ErrDecryptFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.expect {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestIsDecryptionError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrDecryptFailed", ErrDecryptFailed, true},
		{"ErrSignatureInvalid", ErrSignatureInvalid, true},
		{"wrapped ErrDecryptFailed", fmt.Errorf("wrapped: %w", ErrDecryptFailed), true},
		{"ErrNotFound", ErrNotFound, false},
		{"ErrInvalidFormat", ErrInvalidFormat, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDecryptionError(tt.err); got != tt.expect {
				t.Errorf("IsDecryptionError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestIsTampered(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"signature", ErrSignatureInvalid, true},
		{"decryption", ErrDecryptFailed, true},
		{"format", fmt.Errorf("restore: %w", ErrInvalidFormat), true},
		{"schema mismatch", ErrSchemaMismatch, true},
		{"not found", ErrNotFound, false},
		{"unknown action", ErrUnknownAction, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTampered(tt.err); got != tt.expect {
				t.Errorf("IsTampered(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestWrapEncodingError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect error
	}{
		{"invalid format", encoding.ErrInvalidFormat, ErrInvalidFormat},
		{"signature", fmt.Errorf("decode: %w", encoding.ErrSignatureInvalid), ErrSignatureInvalid},
		{"decrypt", encoding.ErrDecryptFailed, ErrDecryptFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapEncodingError(tt.err); !errors.Is(got, tt.expect) {
				t.Errorf("wrapEncodingError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}

	if wrapEncodingError(nil) != nil {
		t.Error("wrapEncodingError(nil) should be nil")
	}
	other := errors.New("other")
	if got := wrapEncodingError(other); got != other {
		t.Errorf("other errors should pass through, got %v", got)
	}
}
