package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/QuantNorm/pkg/normalize"
)

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	t, err := readInput(args[0], s)
	if err != nil {
		return err
	}

	if err := normalize.CheckSchema(t, s); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	fmt.Printf("%s: OK\n", args[0])
	fmt.Printf("Rows: %d\n", t.Len())
	fmt.Printf("Layout: %s\n", s.Layout())
	fmt.Printf("Mapped columns: %d\n", s.Mapper.Len())
	fmt.Printf("Expected raw files: %d\n", s.ExpectedRawFileCount())

	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	res, err := convertFile(args[0], s)
	if err != nil {
		return err
	}

	st := res.Stats
	fmt.Printf("Input: %s\n", args[0])
	fmt.Printf("Layout: %s\n", res.Layout)
	fmt.Printf("\nReplicates:\n")
	for _, rep := range res.Replicates.Replicates() {
		fmt.Printf("  %s: %s\n", rep, strings.Join(res.Replicates.RawFiles(rep), ", "))
	}

	fmt.Printf("\nRows:\n")
	fmt.Printf("  input:              %d\n", st.InputRows)
	fmt.Printf("  after decoy filter: %d\n", st.AfterDecoy)
	fmt.Printf("  after reshape:      %d\n", st.AfterReshape)
	fmt.Printf("  after ambiguity:    %d\n", st.AfterAmbiguity)
	fmt.Printf("  output:             %d\n", st.OutputRows)
	fmt.Printf("\nSequences quantified in all %d raw files: %d\n", st.ExpectedRawFiles, st.AllowedSequences)
	if len(st.UnmappedRawFiles) > 0 {
		fmt.Printf("Raw files without replicate: %s\n", strings.Join(st.UnmappedRawFiles, ", "))
	}

	return nil
}
