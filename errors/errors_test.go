package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLayout,
				Kind:   KindOverflow,
				Path:   []string{"point", "payload"},
				Detail: "running size too large",
			},
			contains: []string{"[layout]", "overflow", "point.payload", "running size too large"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseBuild,
				Kind:  KindEmpty,
			},
			contains: []string{"[build]", "empty"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidInput,
				Detail: "bad field token",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[parse]", "invalid_input", "bad field token", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEmit,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseLayout,
		Kind:  KindOverflow,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseLayout, Kind: KindOverflow}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseEmit, Kind: KindOverflow}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseLayout, Kind: KindEmpty}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseLayout, Kind: KindOverflow}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseBuild, KindInvalidInput).
		Path("aggregate_size").
		Cause(cause).
		Detail("function declares %d result(s) but never returns", 1).
		Build()

	if err.Phase != PhaseBuild {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseBuild)
	}
	if err.Kind != KindInvalidInput {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
	}
	if len(err.Path) != 1 || err.Path[0] != "aggregate_size" {
		t.Errorf("Path = %v, want [aggregate_size]", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "function declares 1 result(s) but never returns" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseLayout, []string{"field"}, 4294967200, 200)
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if !strings.Contains(err.Detail, "200") {
			t.Errorf("Detail = %v, should contain the added size", err.Detail)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseParse, "unknown field token")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseEmit, "64-bit pointers")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseBuild, "function", "aggregate_size")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, "aggregate_size") {
			t.Errorf("Detail = %v, should contain the name", err.Detail)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		err := Empty(PhaseBuild, "functions")
		if err.Kind != KindEmpty {
			t.Errorf("Kind = %v, want %v", err.Kind, KindEmpty)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseParse, KindInvalidInput, cause, "while parsing fields")
		if !errors.Is(errors.Unwrap(err), cause) {
			t.Error("Wrap did not preserve cause")
		}
	})
}
