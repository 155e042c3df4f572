package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	"github.com/goliatone/go-blog/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("blog sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("blog-sync", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to sync, relative to the content root")
	author := fs.String("author", "", "Fallback author recorded when front matter omits one")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove posts whose source files disappeared")
	updateExisting := fs.Bool("update-existing", true, "Update posts whose source files changed")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting posts")
	logLevel := fs.String("log-level", "info", "Minimum log level for console output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		Recursive:     true,
		DefaultAuthor: *author,
		Markdown:      true,
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	service, err := module.Blog.Markdown()
	if err != nil {
		return fmt.Errorf("markdown service: %w", err)
	}

	handler := markdowncmd.NewSyncDirectoryHandler(service, logging.MarkdownLogger(module.Logger), markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return true },
	})

	cmd := markdowncmd.SyncDirectoryCommand{
		Directory:      *directory,
		DefaultAuthor:  *author,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
		UpdateExisting: *updateExisting,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "markdown sync completed")
	return nil
}
