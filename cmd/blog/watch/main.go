package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-blog/internal/commands/markdown"
	sitecmd "github.com/goliatone/go-blog/internal/commands/site"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/watcher"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runWatch(os.Args[1:]); err != nil {
		log.Fatalf("blog watch: %v", err)
	}
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("blog-watch", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	output := fs.String("output", "dist", "Directory the generated site is written to")
	baseURL := fs.String("base-url", "", "Absolute site base URL used in links and feeds")
	title := fs.String("title", "", "Site title used in templates and feeds")
	author := fs.String("author", "", "Fallback author for imported posts and feeds")
	debounce := fs.Duration("debounce", 500*time.Millisecond, "Delay before coalesced changes trigger a rebuild")
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
		Markdown:      true,
		Generator:     true,
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	markdownSvc, err := module.Blog.Markdown()
	if err != nil {
		return fmt.Errorf("markdown service: %w", err)
	}
	generatorSvc, err := module.Blog.Generator()
	if err != nil {
		return fmt.Errorf("generator service: %w", err)
	}

	syncHandler := markdowncmd.NewSyncDirectoryHandler(markdownSvc, logging.MarkdownLogger(module.Logger), markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return true },
	})
	buildHandler := sitecmd.NewBuildSiteHandler(generatorSvc, logging.GeneratorLogger(module.Logger))

	rebuild := func(ctx context.Context) error {
		syncCmd := markdowncmd.SyncDirectoryCommand{
			Directory:      ".",
			DefaultAuthor:  *author,
			UpdateExisting: true,
			DeleteOrphaned: true,
		}
		if err := syncHandler.Execute(ctx, syncCmd); err != nil {
			return fmt.Errorf("sync corpus: %w", err)
		}
		if err := buildHandler.Execute(ctx, sitecmd.BuildSiteCommand{}); err != nil {
			return fmt.Errorf("build site: %w", err)
		}
		return nil
	}

	watchLogger := logging.WatcherLogger(module.Logger)
	w, err := watcher.New(watcher.Config{
		Directory: *contentDir,
		Recursive: true,
		Debounce:  *debounce,
	}, func(ctx context.Context, events []watcher.ChangeEvent) error {
		watchLogger.Info("content changed, rebuilding", "files", len(events))
		return rebuild(ctx)
	}, watcher.WithLogger(watchLogger))
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rebuild(ctx); err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	fmt.Fprintf(os.Stdout, "watching %s, press Ctrl+C to stop\n", *contentDir)
	<-ctx.Done()
	return nil
}
