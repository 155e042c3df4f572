package lintcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const runDirectoryMessageType = "blog.lint.run_directory"

// RunDirectoryCommand lints every Markdown file under Directory and fails
// when error-severity issues are found.
type RunDirectoryCommand struct {
	// Directory selects the filesystem path holding the Markdown corpus.
	Directory string `json:"directory"`
	// Pattern overrides the file glob used during discovery.
	Pattern string `json:"pattern,omitempty"`
	// DisabledRules lists rule identifiers to skip for this run.
	DisabledRules []string `json:"disabled_rules,omitempty"`
	// FailOn selects the severity that fails the run: "error" (default) or
	// "warning".
	FailOn string `json:"fail_on,omitempty"`
	// IgnoreFailures reports issues without turning them into a command error.
	IgnoreFailures bool `json:"ignore_failures,omitempty"`
}

// Type implements command.Message.
func (RunDirectoryCommand) Type() string { return runDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd RunDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if str, ok := value.(string); !ok || strings.TrimSpace(str) == "" {
				return validation.NewError("blog.lint.run_directory.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.FailOn, validation.In("", "error", "warning")),
	)
}
