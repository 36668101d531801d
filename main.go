package main

import (
	"os"

	"github.com/mbarbey/nfgrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
