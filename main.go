package main

import (
	"os"

	"github.com/homegarden/gardenpages/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
