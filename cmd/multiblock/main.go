// Command multiblock builds OpenFOAM blockMesh cases from a structured
// multi-block grid and an edit script.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "multiblock:", err)
		os.Exit(1)
	}
}
