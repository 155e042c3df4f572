package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	lintcmd "github.com/goliatone/go-blog/internal/commands/lint"
	"github.com/goliatone/go-blog/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runLint(os.Args[1:]); err != nil {
		log.Fatalf("blog lint: %v", err)
	}
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("blog-lint", flag.ExitOnError)
	directory := fs.String("directory", "content", "Directory holding the Markdown corpus")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	disabled := fs.String("disable", "", "Comma separated rule identifiers to skip")
	failOn := fs.String("fail-on", "", "Severity that fails the run: error or warning (defaults to the configured value)")
	ignoreFailures := fs.Bool("ignore-failures", false, "Report issues without exiting non-zero")
	logLevel := fs.String("log-level", "info", "Minimum log level for console output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *directory,
		Pattern:    *pattern,
		Recursive:  true,
		Lint:       true,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	service, err := module.Blog.Lint()
	if err != nil {
		return fmt.Errorf("lint service: %w", err)
	}

	severity := strings.TrimSpace(*failOn)
	if severity == "" {
		severity = module.Blog.Container().Config.Lint.FailOn
	}

	handler := lintcmd.NewRunDirectoryHandler(service, logging.LintLogger(module.Logger))

	// The lint service is rooted at the corpus directory, so the command
	// lints the corpus root.
	cmd := lintcmd.RunDirectoryCommand{
		Directory:      ".",
		Pattern:        *pattern,
		DisabledRules:  bootstrap.SplitList(*disabled),
		FailOn:         severity,
		IgnoreFailures: *ignoreFailures,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute lint command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "lint completed")
	return nil
}
