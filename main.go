package main

import (
	"flag"
	"fmt"
	"github.com/faiface/mainthread"
	"github.com/pkg/errors"
	"os"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	var runErr error
	mainthread.Run(func() {
		runErr = runGame(opts)
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "termcraft: %v\n", runErr)
		os.Exit(1)
	}
}
