// QuantNorm - search engine result normalization tool
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/QuantNorm/cmd/quantnorm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
