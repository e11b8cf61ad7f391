package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeValidation     = "DECK_COMMAND_INVALID"
	TextCodeCanceled       = "DECK_COMMAND_CANCELED"
	TextCodeTimeout        = "DECK_COMMAND_TIMEOUT"
	TextCodeContextError   = "DECK_COMMAND_CONTEXT_ERROR"
	TextCodeExecuteFailure = "DECK_COMMAND_FAILED"
)

// IsValidation reports whether err was rejected by message validation.
func IsValidation(err error) bool {
	return err != nil && goerrors.IsCategory(err, goerrors.CategoryValidation)
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "deck command rejected").
		WithTextCode(TextCodeValidation)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "deck command cancelled").
			WithTextCode(TextCodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "deck command deadline exceeded").
			WithTextCode(TextCodeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "deck command context error").
			WithTextCode(TextCodeContextError)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "deck command failed").
		WithTextCode(TextCodeExecuteFailure)
}
