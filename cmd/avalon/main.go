package main

import (
	"fmt"
	"os"

	"github.com/avalon-project/avalon/internal/cliapp"
	"github.com/avalon-project/avalon/internal/extload"

	// Import every built-in extension for its init() registration side
	// effect.
	_ "github.com/avalon-project/avalon/internal/impl/all"
)

func main() {
	if err := extload.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(cliapp.Run(os.Args))
}
