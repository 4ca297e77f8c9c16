package main

import (
	"os"

	"github.com/roeshane/life-coach-reflections/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
