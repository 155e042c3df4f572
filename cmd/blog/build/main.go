package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	sitecmd "github.com/goliatone/go-blog/internal/commands/site"
	"github.com/goliatone/go-blog/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	output := fs.String("output", "dist", "Directory the generated site is written to")
	baseURL := fs.String("base-url", "", "Absolute site base URL used in links and feeds")
	title := fs.String("title", "", "Site title used in templates and feeds")
	author := fs.String("author", "", "Fallback author for imported posts and feeds")
	importFirst := fs.Bool("import", false, "Import the markdown corpus before building")
	clean := fs.Bool("clean", false, "Remove the output directory instead of building")
	dryRun := fs.Bool("dry-run", false, "Render everything but write nothing")
	force := fs.Bool("force", false, "Ignore the incremental manifest and re-render every page")
	logLevel := fs.String("log-level", "info", "Minimum log level for console output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Recursive:     true,
		DefaultAuthor: *author,
		SiteTitle:     *title,
		BaseURL:       *baseURL,
		OutputDir:     *output,
		Markdown:      *importFirst,
		Generator:     true,
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	generatorSvc, err := module.Blog.Generator()
	if err != nil {
		return fmt.Errorf("generator service: %w", err)
	}

	ctx := context.Background()
	logger := logging.GeneratorLogger(module.Logger)

	if *clean {
		handler := sitecmd.NewCleanSiteHandler(generatorSvc, logger)
		if err := handler.Execute(ctx, sitecmd.CleanSiteCommand{}); err != nil {
			return fmt.Errorf("execute clean command: %w", err)
		}
		fmt.Fprintln(os.Stdout, "site output removed")
		return nil
	}

	if *importFirst {
		if err := importCorpus(ctx, module, *author, *dryRun); err != nil {
			return err
		}
	}

	handler := sitecmd.NewBuildSiteHandler(generatorSvc, logger)
	cmd := sitecmd.BuildSiteCommand{
		DryRun: *dryRun,
		Force:  *force,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "site build completed")
	return nil
}

func importCorpus(ctx context.Context, module *bootstrap.Module, author string, dryRun bool) error {
	service, err := module.Blog.Markdown()
	if err != nil {
		return fmt.Errorf("markdown service: %w", err)
	}

	handler := markdowncmd.NewImportDirectoryHandler(service, logging.MarkdownLogger(module.Logger), markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return true },
	})
	cmd := markdowncmd.ImportDirectoryCommand{
		Directory:     ".",
		DefaultAuthor: author,
		DryRun:        dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	return nil
}
