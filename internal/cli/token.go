package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"codeforge/internal/logging"
)

func newTokenCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored session token",
	}
	cmd.AddCommand(newTokenSetCommand(opts))
	cmd.AddCommand(newTokenClearCommand(opts))
	cmd.AddCommand(newTokenShowCommand(opts))
	return cmd
}

func newTokenSetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set [token]",
		Short: "Store a session token in the encrypted secrets file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.debug)
			if err != nil {
				return err
			}
			defer app.Close()

			var token string
			if len(args) == 1 {
				token = strings.TrimSpace(args[0])
			} else {
				if !isInteractive() {
					return errors.New("token required: pass it as an argument or run on a terminal")
				}
				token, err = askToken()
				if err != nil {
					if isCanceled(err) {
						return nil
					}
					return err
				}
			}
			if token == "" {
				return errors.New("token must not be empty")
			}
			if err := app.Session.SetToken(token); err != nil {
				return err
			}
			app.Notifier.Successf("Session token saved.")
			return nil
		},
	}
}

func newTokenClearCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.debug)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.Session.Invalidate(); err != nil {
				return err
			}
			app.Notifier.Successf("Session token cleared.")
			return nil
		},
	}
}

func newTokenShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored session token, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.debug)
			if err != nil {
				return err
			}
			defer app.Close()
			if !app.Session.HasToken() {
				app.Notifier.Warnf("No session token stored. Run 'codeforge token set' or 'codeforge signup'.")
				return nil
			}
			app.Notifier.Infof("Session token: %s", logging.RedactValue(app.Session.Token()))
			return nil
		},
	}
}
