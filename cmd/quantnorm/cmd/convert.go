package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/QuantNorm/pkg/core"
	"github.com/ChrisMcGann/QuantNorm/pkg/normalize"
	"github.com/ChrisMcGann/QuantNorm/pkg/reader/delimited"
	"github.com/ChrisMcGann/QuantNorm/pkg/settings"
	"github.com/ChrisMcGann/QuantNorm/pkg/writer/sqlite"
	"github.com/ChrisMcGann/QuantNorm/pkg/writer/tsv"
)

func runConvert(cmd *cobra.Command, args []string) error {
	// Validate input file exists
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	format, err := resolveFormat(outputFormat, outputFile)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Converting %s to %s...\n", inputFile, outputFile)
	fmt.Printf("Format: %s\n", format)

	res, err := convertFile(inputFile, s)
	if err != nil {
		return err
	}

	if err := writeResult(outputFile, format, inputFile, res); err != nil {
		return err
	}

	fmt.Printf("\nConversion complete!\n")
	fmt.Printf("Layout: %s\n", res.Layout)
	fmt.Printf("Rows: %d in, %d out\n", res.Stats.InputRows, res.Stats.OutputRows)
	fmt.Printf("Sequences quantified in all %d raw files: %d\n", res.Stats.ExpectedRawFiles, res.Stats.AllowedSequences)
	fmt.Printf("Output: %s\n", outputFile)

	return nil
}

// loadSettings reads the settings file and applies command line overrides.
func loadSettings(cmd *cobra.Command) (*core.Settings, error) {
	s, err := settings.LoadFile(settingsFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("strict") {
		s.StrictReplicates = strictReplicates
	}
	if cmd.Flags().Changed("expected-raw-files") {
		s.ExpectedRawFiles = expectedRawFiles
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"settings":  settingsFile,
		"layout":    s.Layout(),
		"raw_files": s.ExpectedRawFileCount(),
		"species":   s.SpeciesDict.Len(),
	}).Debug("loaded settings")

	return s, nil
}

// readInput loads an input table honoring the --delimiter flag. Identifier columns
// named by the mapper are read as text.
func readInput(path string, s *core.Settings) (*core.Table, error) {
	delim, err := delimiterRune()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	t, err := delimited.ReadFile(path, delim, s.TextColumns()...)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"input":   path,
		"rows":    t.Len(),
		"columns": len(t.Columns()),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("read input table")

	return t, nil
}

// convertFile reads and normalizes one input file.
func convertFile(path string, s *core.Settings) (*normalize.Result, error) {
	t, err := readInput(path, s)
	if err != nil {
		return nil, err
	}

	res, err := normalize.Convert(t, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logStats(path, res)
	return res, nil
}

func logStats(path string, res *normalize.Result) {
	st := res.Stats
	log.WithFields(log.Fields{
		"input":           path,
		"layout":          res.Layout,
		"input_rows":      st.InputRows,
		"after_decoy":     st.AfterDecoy,
		"after_reshape":   st.AfterReshape,
		"after_ambiguity": st.AfterAmbiguity,
		"output_rows":     st.OutputRows,
		"sequences":       st.AllowedSequences,
	}).Debug("normalized")

	if len(st.UnmappedRawFiles) > 0 {
		log.WithField("input", path).Warnf("raw files without replicate: %s", strings.Join(st.UnmappedRawFiles, ", "))
	}
	if st.OutputRows == 0 {
		log.WithField("input", path).Warnf("no sequence is quantified in all %d raw files", st.ExpectedRawFiles)
	}
}

// resolveFormat validates the output format or guesses it from the output name.
func resolveFormat(format, path string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".db", ".sqlite", ".sqlite3":
			return "sqlite", nil
		default:
			return "tsv", nil
		}
	}

	format = strings.ToLower(format)
	if format != "sqlite" && format != "tsv" {
		return "", fmt.Errorf("invalid output format '%s', must be sqlite or tsv", format)
	}
	return format, nil
}

// writeResult stores a normalized result in the requested format.
func writeResult(path, format, source string, res *normalize.Result) error {
	switch format {
	case "tsv":
		return tsv.WriteFile(path, res.Table)
	case "sqlite":
		writer, err := sqlite.NewWriter(path)
		if err != nil {
			return fmt.Errorf("failed to create output database: %w", err)
		}
		defer writer.Close()

		runID, err := writer.WriteResult(source, res)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"output": path, "run": runID}).Debug("stored run")

		// Finalize database
		if err := writer.Finalize(); err != nil {
			return fmt.Errorf("failed to finalize database: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
