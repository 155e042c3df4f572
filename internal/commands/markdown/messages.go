package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType = "blog.markdown.import_directory"
	syncDirectoryMessageType   = "blog.markdown.sync_directory"
)

// ImportDirectoryCommand triggers a filesystem walk for Markdown documents
// under the provided Directory. Options map directly onto
// interfaces.ImportOptions for post creation.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// DefaultAuthor is applied when a document's front matter omits author.
	DefaultAuthor string `json:"default_author,omitempty"`
	// PublishOverride forces imported posts into the published state even when marked draft.
	PublishOverride bool `json:"publish_override,omitempty"`
	// DryRun collects import diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireDirectory("blog.markdown.import_directory"))),
	)
}

// SyncDirectoryCommand orchestrates a Markdown sync run for the provided
// Directory, applying deletion and update flags consistent with
// interfaces.SyncOptions.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// DefaultAuthor is applied when a document's front matter omits author.
	DefaultAuthor string `json:"default_author,omitempty"`
	// PublishOverride forces imported posts into the published state even when marked draft.
	PublishOverride bool `json:"publish_override,omitempty"`
	// DryRun collects sync diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes markdown-sourced posts without matching files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
	// UpdateExisting overwrites existing posts when Markdown files have changed.
	UpdateExisting bool `json:"update_existing,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requireDirectory("blog.markdown.sync_directory"))),
	)
}

func requireDirectory(scope string) func(value any) error {
	return func(value any) error {
		if str, ok := value.(string); !ok || strings.TrimSpace(str) == "" {
			return validation.NewError(scope+".directory_required", "directory is required")
		}
		return nil
	}
}
