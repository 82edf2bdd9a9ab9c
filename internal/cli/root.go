// Package cli defines the codeforge command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codeforge/internal/generate"
)

type rootOptions struct {
	debug bool
	plain bool
}

// Execute runs the CLI and returns the process exit code. Failures that were
// already reported as notifications are not printed twice.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		var reported *generate.Error
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Sprint("✖"), err)
		}
		return 1
	}
	return 0
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "codeforge",
		Short: "Terminal client for the codeforge code-generation service",
		Long: `codeforge sends a prompt and your workspace path to the codeforge
backend, processes the generated result locally, and reports credit usage.

Getting started:
  codeforge signup you@example.com   # create an account, store the token
  codeforge token set                # or paste an existing token
  codeforge generate "add a CLI flag to parse timeouts"
  codeforge status                   # credits and today's usage`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "write debug logs to the data dir")
	root.PersistentFlags().BoolVar(&opts.plain, "plain", false, "disable markdown rendering of generated content")

	root.AddCommand(newGenerateCommand(opts))
	root.AddCommand(newStatusCommand(opts))
	root.AddCommand(newTokenCommand(opts))
	root.AddCommand(newSignupCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}
