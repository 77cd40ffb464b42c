package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CodeValidationFailed = "TRANSLATABLE_COMMAND_INVALID"
	CodeCanceled         = "TRANSLATABLE_COMMAND_CANCELED"
	CodeTimeout          = "TRANSLATABLE_COMMAND_TIMEOUT"
	CodeExecutionFailed  = "TRANSLATABLE_COMMAND_FAILED"
)

func alreadyCategorised(err error) bool {
	return err == nil || goerrors.IsWrapped(err)
}

func validationFailed(err error) error {
	if alreadyCategorised(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(CodeValidationFailed)
}

func executionFailed(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return contextFailed(err)
	}
	if alreadyCategorised(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(CodeExecutionFailed)
}

func contextFailed(err error) error {
	if alreadyCategorised(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(CodeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled").
		WithTextCode(CodeCanceled)
}
