// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Flags shared by all commands
	settingsFile     string
	delimiter        string
	strictReplicates bool
	expectedRawFiles int
	debug            bool

	// Flags for convert command
	inputFile    string
	outputFile   string
	outputFormat string

	// Flags for batch command
	outputDir   string
	batchFormat string
	threads     int
)

var rootCmd = &cobra.Command{
	Use:   "quantnorm",
	Short: "QuantNorm - search engine result normalization tool",
	Long: `QuantNorm converts peptide quantification tables exported by proteomics search
engines into one canonical long-format schema for benchmarking.

A settings file describes each engine:
- column mapping onto Proteins, Sequence, Charge, Raw file, Intensity, Reverse
- raw file to replicate assignment
- decoy and contaminant markers
- species patterns used to discard peptides shared between species

Only peptide sequences quantified in every expected raw file are kept.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log per-stage statistics")
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "Parse settings file (YAML, required)")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "", "Input delimiter: tab or comma (guessed from extension if not specified)")
	rootCmd.PersistentFlags().BoolVar(&strictReplicates, "strict", false, "Fail on raw files missing from replicate_mapper")
	rootCmd.PersistentFlags().IntVar(&expectedRawFiles, "expected-raw-files", 0, "Raw files a sequence must be quantified in (0 = from settings)")
	rootCmd.MarkPersistentFlagRequired("settings")

	// Convert command flags
	convertCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input file path (required)")
	convertCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output file (required)")
	convertCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: sqlite or tsv (auto-detect if not specified)")
	convertCmd.MarkFlagRequired("in")
	convertCmd.MarkFlagRequired("out")

	// Batch command flags
	batchCmd.Flags().StringVarP(&outputDir, "out-dir", "o", "", "Output directory (required)")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "tsv", "Output format: sqlite or tsv")
	batchCmd.Flags().IntVar(&threads, "threads", 1, "Number of files converted concurrently")
	batchCmd.MarkFlagRequired("out-dir")
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Normalize one search engine result file",
	Long: `Normalize a search engine result table and write the canonical table.

Examples:
  # MaxQuant evidence.txt to a TSV file
  quantnorm convert --settings maxquant.yaml --in evidence.txt --out normalized.tsv

  # Compressed wide-format export into a SQLite store
  quantnorm convert -s alphapept.yaml -i results.csv.gz -o bench.db`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Normalize several result files with the same settings",
	Long: `Normalize several search engine result tables concurrently. Each input is
written to the output directory under its base name with the format extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check that settings match an input file",
	Long:  `Load the settings and the input table, and check that every mapped column exists.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize the normalization of an input file",
	Long:  `Normalize an input table and print the replicate index and per-stage row counts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

// delimiterRune resolves the --delimiter flag; zero means guess from the file name.
func delimiterRune() (rune, error) {
	switch delimiter {
	case "":
		return 0, nil
	case "tab", "\\t", "\t":
		return '\t', nil
	case "comma", ",":
		return ',', nil
	case "semicolon", ";":
		return ';', nil
	}
	return 0, fmt.Errorf("invalid delimiter '%s', must be tab, comma or semicolon", delimiter)
}
