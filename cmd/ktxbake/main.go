package main

import (
	"fmt"
	"os"

	"github.com/woozymasta/ktxbake/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ktxbake: %v\n", err)
		os.Exit(1)
	}
}
