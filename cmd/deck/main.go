package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	deck "github.com/goliatone/go-deck"
	"github.com/goliatone/go-deck/cmd/internal/bootstrap"
	"github.com/goliatone/go-deck/internal/logging/console"
)

var moduleBuilder = bootstrap.BuildModule

const formatJSON = "json"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("deck: %v", err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("deck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("in", "", "Markdown file to convert (reads stdin when empty)")
	output := fs.String("out", "", "Output path, - for stdout (defaults to the generated filename)")
	format := fs.String("format", string(deck.FormatPDF), "Output format: pdf, html or json")
	fileKey := fs.String("file-key", "", "Design file key used for tokens")
	configPath := fs.String("config", "", "Path to a YAML config file")
	summary := fs.Bool("summary", false, "Print a slide summary table to stderr")
	verbose := fs.Bool("verbose", false, "Log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	selected := strings.ToLower(strings.TrimSpace(*format))
	if selected != formatJSON {
		if _, err := deck.ParseFormat(selected); err != nil {
			return err
		}
	}

	markdown, err := readInput(*input, stdin)
	if err != nil {
		return err
	}

	level := console.LevelWarn
	if *verbose {
		level = console.LevelInfo
	}
	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath:     *configPath,
		Lookup:         os.LookupEnv,
		FileKey:        *fileKey,
		DisablePDF:     selected != string(deck.FormatPDF),
		LoggerProvider: console.NewProvider(console.Options{Writer: stderr, MinLevel: &level}),
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Module == nil {
		return fmt.Errorf("deck module not configured")
	}
	defer module.Module.Close()

	if selected == formatJSON {
		preview, err := module.Module.Preview(ctx, markdown)
		if err != nil {
			return err
		}
		if *summary {
			writeSummary(stderr, preview.Slides)
		}
		payload, err := json.MarshalIndent(preview, "", "  ")
		if err != nil {
			return fmt.Errorf("encode preview: %w", err)
		}
		return writeOutput(*output, "presentation.json", append(payload, '\n'), stdout)
	}

	result, err := module.Module.Generate(ctx, deck.Request{
		Markdown: markdown,
		FileKey:  *fileKey,
		Format:   deck.Format(selected),
	})
	if err != nil {
		return err
	}
	if *summary {
		writeSummary(stderr, result.Slides)
	}
	if err := writeOutput(*output, result.Filename, result.Body(), stdout); err != nil {
		return err
	}
	module.Logger.Info("deck.cli.generated",
		"deck_id", result.ID.String(),
		"slides", len(result.Slides),
		"format", string(result.Format),
	)
	return nil
}

func writeOutput(path, fallback string, body []byte, stdout io.Writer) error {
	switch path {
	case "-":
		_, err := stdout.Write(body)
		return err
	case "":
		path = fallback
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
