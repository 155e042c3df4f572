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
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("blog import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("blog-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	author := fs.String("author", "", "Fallback author recorded when front matter omits one")
	publish := fs.Bool("publish", false, "Publish imported posts regardless of their draft flag")
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

	handler := markdowncmd.NewImportDirectoryHandler(service, logging.MarkdownLogger(module.Logger), markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return true },
	})

	cmd := markdowncmd.ImportDirectoryCommand{
		Directory:       *directory,
		DefaultAuthor:   *author,
		PublishOverride: *publish,
		DryRun:          *dryRun,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "markdown import completed")
	return nil
}
