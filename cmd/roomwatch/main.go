package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}

// execute runs the CLI with args and returns the process exit code. Failures
// are logged where they happen, so nothing else is printed here.
func execute(args []string, stdout io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
