package main

import (
	"fmt"
	"os"

	"github.com/localrivet/mcprules/config"
)

func main() {
	if err := newRootCmd(config.OSSource{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
