package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/review-relay/internal/core"
	"github.com/sevigo/review-relay/internal/llm"
	"github.com/sevigo/review-relay/internal/metrics"
	"github.com/sevigo/review-relay/internal/wire"
)

const (
	formatMarkdown = "markdown"
	formatRaw      = "raw"
	formatYAML     = "yaml"
)

var (
	language      string
	outputFormat  string
	reviewTimeout time.Duration
	verbose       bool
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Review a source file (or stdin with '-')",
	Long: `Send a source file to the configured Gemini model and print a structured review.

The language is detected from the file extension unless --language is given.

Examples:
  review-relay review main.go
  cat snippet.js | review-relay review - --language javascript
  review-relay review --format yaml handler.py`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&language, "language", "l", "", "Language of the snippet (default: detected from extension)")
	reviewCmd.Flags().StringVarP(&outputFormat, "format", "f", formatMarkdown, "Output format: markdown, raw or yaml")
	reviewCmd.Flags().DurationVar(&reviewTimeout, "timeout", 2*time.Minute, "Give up on the review after this long")
	reviewCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print timing information")
	rootCmd.AddCommand(reviewCmd)
}

type yamlReview struct {
	Language string `yaml:"language"`
	Model    string `yaml:"model"`
	Review   string `yaml:"review"`
}

func runReview(cmd *cobra.Command, args []string) error {
	switch outputFormat {
	case formatMarkdown, formatRaw, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (expected markdown, raw or yaml)", outputFormat)
	}

	code, err := readSource(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	lang := language
	if lang == "" {
		lang = llm.LanguageForPath(args[0])
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), reviewTimeout)
	defer cancel()

	reviewer, err := wire.InitializeReviewer(ctx, cfg, metrics.New(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize reviewer: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputFormat == formatMarkdown {
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Reviewing %s (%s) with %s", args[0], lang, cfg.AI.Model)))
	}

	start := time.Now()
	result, err := reviewer.Review(ctx, core.ReviewRequest{Code: code, Language: lang})
	if err != nil {
		se := core.AsServiceError(err)
		errorColor.Fprintf(cmd.ErrOrStderr(), "review failed (status %d): %s\n", se.StatusCode, se.Message)
		return fmt.Errorf("review failed: %w", err)
	}
	if verbose {
		dimColor.Fprintf(cmd.ErrOrStderr(), "review took %s\n", time.Since(start).Round(time.Millisecond))
	}

	return printReview(out, lang, cfg.AI.Model, result.Text)
}

func readSource(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func printReview(out io.Writer, lang, model, text string) error {
	switch outputFormat {
	case formatRaw:
		_, err := fmt.Fprintln(out, text)
		return err
	case formatYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(yamlReview{Language: lang, Model: model, Review: text})
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		// Fall back to the plain text rather than losing the review.
		rendered = text
	}
	fmt.Fprint(out, rendered)
	successColor.Fprintln(out, "review complete")
	return nil
}
