package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"codeforge/internal/generate"
	"codeforge/internal/runner"
)

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	var workspaceDir string
	var outPath string
	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Generate code from a prompt and process it in the workspace",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.debug)
			if err != nil {
				return err
			}
			defer app.Close()

			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				if !isInteractive() {
					return errors.New("prompt required: pass it as arguments or run on a terminal")
				}
				prompt, err = askPrompt()
				if err != nil {
					if isCanceled(err) {
						return nil
					}
					return err
				}
			}

			render := func(content string) string { return content }
			if !opts.plain && isInteractive() {
				render = renderMarkdown
			}

			proc := runner.New(app.Config.Interpreter, app.Config.RunTimeout, app.Logger)
			orch := generate.New(app.Session, app.Client, proc, app.Notifier,
				generate.WithLogger(app.Logger),
				generate.WithGenerationParams(app.Config.MaxTokens, app.Config.Temperature),
				generate.WithRenderer(render),
			)
			return orch.Run(cmd.Context(), generate.Options{
				Prompt:       prompt,
				WorkspaceDir: workspaceDir,
				OutPath:      outPath,
			})
		},
	}
	cmd.Flags().StringVarP(&workspaceDir, "workspace", "w", "", "workspace directory (defaults to the current directory)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the generated content to this file instead of printing it")
	return cmd
}
