package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Pipeline stages an error can surface from. The stage picks the
// category and text code a command failure is tagged with.
const (
	stageValidate = "validate"
	stageContext  = "context"
	stageExecute  = "execute"
)

const (
	codeCommandRejected = "BLOG_COMMAND_REJECTED"
	codeCommandCanceled = "BLOG_COMMAND_CANCELED"
	codeCommandTimedOut = "BLOG_COMMAND_TIMED_OUT"
	codeCommandAborted  = "BLOG_COMMAND_ABORTED"
	codeCommandFailed   = "BLOG_COMMAND_FAILED"
)

// tagCommandError categorises err for the given pipeline stage. Errors
// that already carry a classification pass through untouched so nested
// handlers keep the innermost one.
func tagCommandError(stage string, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}

	category := goerrors.CategoryCommand
	message := "command execution failed"
	code := codeCommandFailed

	switch {
	case stage == stageValidate:
		category = goerrors.CategoryValidation
		message = "command message rejected"
		code = codeCommandRejected
	case errors.Is(err, context.Canceled):
		message = "command canceled before completion"
		code = codeCommandCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message = "command deadline exceeded"
		code = codeCommandTimedOut
	case stage == stageContext:
		message = "command context no longer usable"
		code = codeCommandAborted
	}

	return goerrors.Wrap(err, category, message).WithTextCode(code)
}
