package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/resume"
)

var (
	extractImage   string
	extractMode    string
	extractOutput  string
	extractVerbose bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run OCR and extraction on a local resume image",
	Long: "Run the same pipeline as the HTTP endpoints against a local image and print the result. " +
		"Mode 'profile' extracts a structured profile; 'application' extracts autofill fields.",
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractImage, "image", "i", "", "Path to a PNG, JPEG or WEBP resume image (required)")
	extractCmd.Flags().StringVarP(&extractMode, "mode", "m", "profile", "Extraction mode: profile or application")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Write the JSON result to this file instead of stdout")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a human-readable summary and stage timings")
	_ = extractCmd.MarkFlagRequired("image")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	mode := strings.ToLower(extractMode)
	if mode != "profile" && mode != "application" {
		return fmt.Errorf("invalid --mode %q: must be profile or application", extractMode)
	}

	data, err := os.ReadFile(extractImage)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	var opts []resume.Option
	if extractVerbose {
		opts = append(opts, resume.WithProgress(func(ev resume.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "  %-10s %-40s %s\n", ev.Stage, ev.Message, ev.Duration.Round(time.Millisecond))
		}))
	}

	ctx := cmd.Context()
	pipeline, client, err := newExtraction(ctx, cfg, log, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	upload := &resume.Upload{
		Filename:    filepath.Base(extractImage),
		ContentType: detectContentType(data),
		Data:        data,
	}

	printer := observability.NewPrinter(os.Stderr)
	var result any
	switch mode {
	case "application":
		res, err := pipeline.ProcessApplication(ctx, upload)
		if err != nil {
			return err
		}
		if extractVerbose {
			printer.PrintApplication(&res.Data)
		}
		result = res.Data
	default:
		res, err := pipeline.ProcessProfile(ctx, upload)
		if err != nil {
			return err
		}
		if extractVerbose {
			printer.PrintExtractedProfile(res.Data)
		}
		result = res.Data
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if extractOutput == "" {
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	}
	if err := os.WriteFile(extractOutput, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", extractOutput)
	return nil
}

// detectContentType sniffs the image format. Anything that is not an
// accepted image is rejected later by the pipeline.
func detectContentType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}
