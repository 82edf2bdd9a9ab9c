package generate

import (
	"context"
	"log/slog"

	"codeforge/internal/backend"
	"codeforge/internal/errinfo"
	"codeforge/internal/logging"
	"codeforge/internal/notify"
	"codeforge/internal/session"
)

// StatusReporter renders the account status as a single notification.
type StatusReporter struct {
	session  *session.Session
	client   *backend.Client
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewStatusReporter(sess *session.Session, client *backend.Client, notifier notify.Notifier, logger *slog.Logger) *StatusReporter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &StatusReporter{session: sess, client: client, notifier: notifier, logger: logger}
}

func (r *StatusReporter) Report(ctx context.Context) error {
	if !r.session.HasToken() {
		info := errinfo.TokenMissing()
		r.notifier.Warnf("%s", info.Message())
		return &Error{Info: info}
	}
	status, err := r.client.UserStatus(ctx, r.session.Token())
	if err != nil {
		info := classify(err)
		if info.ErrorCode == errinfo.CodeTokenInvalid {
			if clearErr := r.session.Invalidate(); clearErr != nil {
				r.logger.Warn("status.token_clear_failed", "error", clearErr.Error())
			}
		}
		r.notifier.Errorf("%s", info.Message())
		return &Error{Info: info}
	}
	r.notifier.Successf("%s · %s tier · %d credits · %d used today",
		status.Email, status.Tier, status.Credits, status.TodayUsage)
	return nil
}
