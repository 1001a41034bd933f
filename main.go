package main

import (
	"os"

	"github.com/gilead/flashcards/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
