package main

import (
	"os"

	"github.com/Iverick/movies-database/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
