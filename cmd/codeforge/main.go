package main

import (
	"os"

	"codeforge/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
