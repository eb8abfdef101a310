package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(batchFormat, "")
	if err != nil {
		return err
	}
	if threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", threads)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	outputs := make(map[string]string, len(args))
	for _, in := range args {
		out := batchOutputPath(in, format)
		if prev, ok := outputs[out]; ok {
			return fmt.Errorf("inputs %s and %s would both be written to %s", prev, in, out)
		}
		outputs[out] = in
	}

	var done atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(threads)

	for _, in := range args {
		in := in
		g.Go(func() error {
			res, err := convertFile(in, s)
			if err != nil {
				return err
			}
			out := batchOutputPath(in, format)
			if err := writeResult(out, format, in, res); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			log.WithFields(log.Fields{
				"input":  in,
				"output": out,
				"rows":   res.Stats.OutputRows,
			}).Infof("converted %d/%d", done.Add(1), len(args))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Converted %d files into %s\n", len(args), outputDir)
	return nil
}

// batchOutputPath names the output of one batch input: the base name without its
// data and compression extensions, plus the format extension.
func batchOutputPath(input, format string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".gz", ".zst", ".lz4", ".txt", ".tsv", ".csv"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			base = base[:len(base)-len(ext)]
		}
	}

	ext := ".tsv"
	if format == "sqlite" {
		ext = ".db"
	}
	return filepath.Join(outputDir, base+ext)
}
