package cli

import (
	"github.com/spf13/cobra"

	"codeforge/internal/generate"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account tier, credits, and today's usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.debug)
			if err != nil {
				return err
			}
			defer app.Close()
			reporter := generate.NewStatusReporter(app.Session, app.Client, app.Notifier, app.Logger)
			return reporter.Report(cmd.Context())
		},
	}
}
