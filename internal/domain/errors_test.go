package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOK   bool
	}{
		{"classification error", NewError(KindClassification, base), KindClassification, true},
		{"writer error", Errorf(KindWriter, "append failed"), KindWriter, true},
		{"wrapped kinded error", fmt.Errorf("outer: %w", NewError(KindValidation, base)), KindValidation, true},
		{"plain error", base, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			if ok != tt.wantOK || kind != tt.wantKind {
				t.Errorf("KindOf() = (%v, %v), want (%v, %v)", kind, ok, tt.wantKind, tt.wantOK)
			}
		})
	}
}

func TestNewError_Nil(t *testing.T) {
	if err := NewError(KindWriter, nil); err != nil {
		t.Errorf("NewError(nil) = %v, want nil", err)
	}
}

func TestError_Unwrap(t *testing.T) {
	base := errors.New("refresh rejected")
	err := NewError(KindWriter, base)

	if !errors.Is(err, base) {
		t.Error("expected errors.Is to see through the kind wrapper")
	}
}
