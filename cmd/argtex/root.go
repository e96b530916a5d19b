package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgallion1/argtex/internal/config"
	"github.com/dgallion1/argtex/internal/document"
	"github.com/dgallion1/argtex/internal/grammar"
	"github.com/dgallion1/argtex/internal/source"
	"github.com/spf13/cobra"
)

const defaultOutput = "output.tex"

type options struct {
	template string
	format   string
	tree     bool
	logLevel string
}

func rootCmd() *cobra.Command {
	cfg := config.Load()
	opts := options{
		template: cfg.TemplatePath,
		format:   cfg.DefaultOutput,
	}

	cmd := &cobra.Command{
		Use:   "argtex INPUT [OUTPUT]",
		Short: "Translate argument notation into LaTeX",
		Long: `argtex reads a file of numbered premises and conclusions, grouped into
labelled sections under a [config] header, and writes a LaTeX document
built from the \argument, \conclusion and \pred macros.

INPUT may be plain notation (.txt, .logic, .arg) or a Markdown, HTML,
DOCX or PDF document carrying it. OUTPUT defaults to output.tex.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := defaultOutput
			if len(args) == 2 {
				output = args[1]
			}
			log := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			return run(log, cmd.OutOrStdout(), args[0], output, opts, cfg.PDFFallbackPdftotext)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", opts.template, "LaTeX template file (actions delimited by << >>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "Output format (latex, json, yaml)")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "Print the parse tree to stdout")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(log *slog.Logger, stdout io.Writer, input, output string, opts options, pdfFallback bool) error {
	start := time.Now()

	format, err := document.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	renderer, err := document.LoadRenderer(opts.template)
	if err != nil {
		return err
	}

	src, err := readSource(input, pdfFallback)
	if err != nil {
		return err
	}
	log.Debug("read input", "path", input, "bytes", len(src))

	root, err := grammar.Parse(src)
	if err != nil {
		return grammar.Annotate(err, src)
	}
	if opts.tree {
		if err := grammar.Dump(stdout, root); err != nil {
			return fmt.Errorf("dump tree: %w", err)
		}
	}

	doc, err := document.Assemble(root)
	if err != nil {
		if grammar.IsInternal(err) {
			log.Error("translation bug", "error", err)
		}
		return grammar.Annotate(err, src)
	}

	var buf bytes.Buffer
	if err := document.Write(&buf, doc, format, renderer); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Info("wrote document",
		"path", output,
		"format", format,
		"sections", len(doc.Sections),
		"premises", doc.PremiseCount(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func readSource(path string, pdfFallback bool) (string, error) {
	ex, err := source.ForFile(path, source.Options{FallbackPdftotext: pdfFallback})
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("input file %s does not exist", path)
		}
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ex.Extract(f, path)
}
