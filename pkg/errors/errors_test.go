package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeFrameNotFound, "unknown frame %q", "Q"),
			want: `FRAME_NOT_FOUND: unknown frame "Q"`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidDesign, stderrors.New("eof"), "load design"),
			want: "INVALID_DESIGN: load design: eof",
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

func TestIs(t *testing.T) {
	err := New(ErrCodePointNotFound, "no such point")
	if !Is(err, ErrCodePointNotFound) {
		t.Error("Is() = false, want true for matching code")
	}
	if Is(err, ErrCodeFrameNotFound) {
		t.Error("Is() = true, want false for different code")
	}
	if Is(stderrors.New("plain"), ErrCodePointNotFound) {
		t.Error("Is() = true, want false for non-structured error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeNotImplemented, "rear axle placement")
	outer := fmt.Errorf("solve stage 4: %w", inner)
	if !Is(outer, ErrCodeNotImplemented) {
		t.Error("Is() = false, want true through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeNotImplemented {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeNotImplemented)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "wrapped")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() = false, want true for wrapped cause")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidBound, "min exceeds max")); got != "min exceeds max" {
		t.Errorf("UserMessage() = %q, want %q", got, "min exceeds max")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}
