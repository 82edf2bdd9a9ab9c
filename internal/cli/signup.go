package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeforge/internal/backend"
)

func newSignupCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account and store the issued session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.debug)
			if err != nil {
				return err
			}
			defer app.Close()

			email := strings.TrimSpace(args[0])
			if !strings.Contains(email, "@") {
				return fmt.Errorf("%q does not look like an email address", email)
			}

			resp, err := app.Client.CreateUser(cmd.Context(), email)
			if err != nil {
				var statusErr *backend.StatusError
				if errors.As(err, &statusErr) {
					app.Notifier.Errorf("Signup failed: %s", statusErr.Detail)
				} else {
					app.Notifier.Errorf("Signup failed: %v", err)
				}
				return err
			}
			if resp.APIToken == "" {
				reason := resp.Error
				if reason == "" {
					reason = "the backend did not issue a token"
				}
				app.Notifier.Warnf("Signup failed: %s", reason)
				return errors.New(reason)
			}
			if err := app.Session.SetToken(resp.APIToken); err != nil {
				return err
			}
			app.Notifier.Successf("Account created for %s: %s tier, %d credits. Token stored.",
				email, resp.Tier, resp.Credits)
			return nil
		},
	}
}
