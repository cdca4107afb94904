package main

import (
	"os"

	"github.com/eduardo5010/study-cycle-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
