package main

import (
	"os"

	"github.com/abhisek/nookclass/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
