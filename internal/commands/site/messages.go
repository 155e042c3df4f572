package sitecmd

const (
	buildSiteMessageType = "blog.site.build"
	cleanSiteMessageType = "blog.site.clean"
)

// BuildSiteCommand renders the static site from the post store.
type BuildSiteCommand struct {
	// DryRun renders everything but writes nothing.
	DryRun bool `json:"dry_run,omitempty"`
	// Force ignores the incremental manifest and re-renders every page.
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate implements command.Message. Build accepts any flag combination.
func (BuildSiteCommand) Validate() error { return nil }

// CleanSiteCommand removes the generated site output.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate implements command.Message.
func (CleanSiteCommand) Validate() error { return nil }
