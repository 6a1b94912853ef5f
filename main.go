// Package main starts the screenroom command line.
package main

import (
	"fmt"
	"os"

	"github.com/screenroom/screenroom/cmd"
	"github.com/screenroom/screenroom/config"
	"github.com/screenroom/screenroom/internal/cache"
	"github.com/screenroom/screenroom/log"
)

func main() {
	for _, setup := range []func() error{config.Setup, log.Setup} {
		if err := setup(); err != nil {
			fmt.Fprintln(os.Stderr, "screenroom:", err)
			os.Exit(1)
		}
	}

	go cache.Prune()

	cmd.Execute()
}
