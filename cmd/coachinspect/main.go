// Command coachinspect tracks railway coach inspection sessions.
package main

import (
	"fmt"
	"os"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "coachinspect: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
