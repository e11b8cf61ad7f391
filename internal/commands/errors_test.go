package commands

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestIsValidation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("boom"), want: false},
		{name: "validation", err: wrapValidationError(errors.New("bad input")), want: true},
		{name: "execute", err: wrapExecuteError(errors.New("boom")), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidation(tc.err); got != tc.want {
				t.Fatalf("IsValidation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestWrapContextErrorCategories(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{name: "canceled", err: context.Canceled},
		{name: "deadline", err: context.DeadlineExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := wrapContextError(tc.err)
			if !goerrors.IsCategory(wrapped, goerrors.CategoryCommand) {
				t.Fatalf("expected command category, got %v", wrapped)
			}
			if !errors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match %v", tc.err)
			}
		})
	}

	if wrapContextError(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestWrapKeepsAlreadyWrappedErrors(t *testing.T) {
	original := wrapValidationError(errors.New("bad"))
	if got := wrapExecuteError(original); got != original {
		t.Fatalf("expected wrapped error to pass through unchanged, got %v", got)
	}
}
