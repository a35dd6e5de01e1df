package main

import (
	"fmt"
	"os"

	"github.com/scriptrunner/pluginsdk/pkg/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
