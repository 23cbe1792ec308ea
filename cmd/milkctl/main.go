package main

import (
	"fmt"
	"os"

	"github.com/Shashankyadav00/milk-attendance-system/pkg/logging"
)

func main() {
	logging.Setup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
