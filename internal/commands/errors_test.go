package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestTagCommandErrorStages(t *testing.T) {
	cases := []struct {
		name     string
		stage    string
		err      error
		category goerrors.Category
		message  string
	}{
		{"validate", stageValidate, errors.New("bad message"), goerrors.CategoryValidation, "command message rejected"},
		{"canceled", stageContext, context.Canceled, goerrors.CategoryCommand, "command canceled before completion"},
		{"deadline", stageExecute, context.DeadlineExceeded, goerrors.CategoryCommand, "command deadline exceeded"},
		{"context", stageContext, errors.New("ctx broken"), goerrors.CategoryCommand, "command context no longer usable"},
		{"execute", stageExecute, errors.New("boom"), goerrors.CategoryCommand, "command execution failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tagged := tagCommandError(tc.stage, tc.err)
			if tagged == nil {
				t.Fatal("expected tagged error")
			}
			if !goerrors.IsCategory(tagged, tc.category) {
				t.Fatalf("expected category %v, got %v", tc.category, tagged)
			}
			if !strings.Contains(tagged.Error(), tc.message) {
				t.Fatalf("expected %q in %q", tc.message, tagged.Error())
			}
			if !errors.Is(tagged, tc.err) {
				t.Fatal("expected original error in chain")
			}
		})
	}
}

func TestTagCommandErrorPassthrough(t *testing.T) {
	if got := tagCommandError(stageExecute, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	already := goerrors.Wrap(errors.New("inner"), goerrors.CategoryValidation, "rejected").
		WithTextCode(codeCommandRejected)
	if got := tagCommandError(stageExecute, already); got != already {
		t.Fatalf("expected wrapped error to pass through, got %v", got)
	}
}
