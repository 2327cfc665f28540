package main

import (
	"os"

	"github.com/keiko-edu/llm-quiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
