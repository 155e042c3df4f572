package lintcmd

import (
	"context"
	"fmt"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/lint"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const runOperation = "lint.run_directory"

var _ command.Commander[RunDirectoryCommand] = (*RunDirectoryHandler)(nil)

// RunDirectoryHandler lints a Markdown corpus via the shared command handler foundation.
type RunDirectoryHandler struct {
	inner *commands.Handler[RunDirectoryCommand]
}

// NewRunDirectoryHandler creates a handler bound to the supplied lint service.
func NewRunDirectoryHandler(service lint.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RunDirectoryCommand]) *RunDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RunDirectoryCommand) error {
		report, err := service.LintDirectory(ctx, msg.Directory, lint.Options{
			Pattern:       msg.Pattern,
			DisabledRules: msg.DisabledRules,
		})
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"files":    report.Files,
			"checked":  report.Checked,
			"issues":   len(report.Issues),
			"errors":   len(report.Errors()),
			"warnings": len(report.Warnings()),
		}).Info("lint.command.run_directory.completed")

		for _, issue := range report.Issues {
			baseLogger.Warn("lint.command.issue",
				"rule", issue.Rule,
				"severity", string(issue.Severity),
				"path", issue.Path,
				"message", issue.Message,
			)
		}

		failures := report.Errors()
		if msg.FailOn == "warning" {
			failures = report.Issues
		}
		if len(failures) > 0 && !msg.IgnoreFailures {
			return fmt.Errorf("lint: %d issue(s) found in %s", len(failures), msg.Directory)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[RunDirectoryCommand]{
		commands.WithLogger[RunDirectoryCommand](baseLogger),
		commands.WithOperation[RunDirectoryCommand](runOperation),
		commands.WithMessageFields(func(msg RunDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if len(msg.DisabledRules) > 0 {
				fields["disabled_rules"] = msg.DisabledRules
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RunDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RunDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RunDirectoryCommand].
func (h *RunDirectoryHandler) Execute(ctx context.Context, msg RunDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
