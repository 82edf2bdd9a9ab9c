// Package generate sequences the generation flow: prompt and workspace
// checks, one backend call, artifact processing, cleanup, and a final
// notification. Every step is a single linear attempt with no retry.
package generate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"codeforge/internal/backend"
	"codeforge/internal/diff"
	"codeforge/internal/egress"
	"codeforge/internal/errinfo"
	"codeforge/internal/logging"
	"codeforge/internal/notify"
	"codeforge/internal/runner"
	"codeforge/internal/session"
	"codeforge/internal/workspace"
)

// Processor runs one artifact cycle against the workspace.
type Processor interface {
	Process(ctx context.Context, workspaceDir, content, token string) (*runner.Result, error)
}

// Error wraps the structured failure a command ended with.
type Error struct {
	Info *errinfo.ErrorInfo
}

func (e *Error) Error() string {
	return e.Info.Message()
}

type Orchestrator struct {
	session     *session.Session
	client      *backend.Client
	proc        Processor
	notifier    notify.Notifier
	logger      *slog.Logger
	maxTokens   int
	temperature float64
	render      func(string) string
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

func WithGenerationParams(maxTokens int, temperature float64) Option {
	return func(o *Orchestrator) {
		o.maxTokens = maxTokens
		o.temperature = temperature
	}
}

// WithRenderer sets the content renderer used for the terminal preview.
func WithRenderer(render func(string) string) Option {
	return func(o *Orchestrator) { o.render = render }
}

func New(sess *session.Session, client *backend.Client, proc Processor, notifier notify.Notifier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		session:     sess,
		client:      client,
		proc:        proc,
		notifier:    notifier,
		logger:      logging.Nop(),
		maxTokens:   4000,
		temperature: 0.3,
		render:      func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type Options struct {
	Prompt       string
	WorkspaceDir string
	OutPath      string
}

func (o *Orchestrator) Run(ctx context.Context, opts Options) error {
	if !o.session.HasToken() {
		info := errinfo.TokenMissing()
		o.notifier.Warnf("%s", info.Message())
		return &Error{Info: info}
	}
	prompt := strings.TrimSpace(opts.Prompt)
	if prompt == "" {
		o.notifier.Warnf("Prompt is empty; nothing to generate.")
		return errors.New("empty prompt")
	}
	ws, err := workspace.Resolve(opts.WorkspaceDir)
	if err != nil {
		info := errinfo.WorkspaceMissing(err.Error())
		o.notifier.Errorf("%s", info.Message())
		return &Error{Info: info}
	}

	o.logger.Info("generate.request", "workspace", ws, "prompt_len", len(prompt))
	resp, err := o.client.Generate(ctx, o.session.Token(), backend.GenerateRequest{
		Prompt:      prompt,
		Workspace:   ws,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		info := classify(err)
		if info.ErrorCode == errinfo.CodeTokenInvalid {
			if clearErr := o.session.Invalidate(); clearErr != nil {
				o.logger.Warn("generate.token_clear_failed", "error", clearErr.Error())
			}
		}
		o.notifier.Errorf("%s", info.Message())
		return &Error{Info: info}
	}
	o.logger.Info("generate.response",
		"credits_used", resp.CreditsUsed,
		"remaining_credits", resp.RemainingCredits,
		"content_len", len(resp.Content),
	)

	result, runErr := o.proc.Process(ctx, ws, resp.Content, o.session.Token())
	if runErr != nil {
		info := errinfo.InterpreterFailed(runErr.Error())
		o.notifier.Errorf("%s", info.Message())
		// The backend already charged for this call; local failure does not
		// undo the charge.
		o.notifier.Warnf("%d credits were charged before local processing failed.", resp.CreditsUsed)
		return &Error{Info: info}
	}
	if out := strings.TrimSpace(result.Stdout); out != "" {
		o.logger.Debug("generate.processed", "stdout", out)
	}

	if opts.OutPath != "" {
		if err := o.saveContent(opts.OutPath, resp.Content); err != nil {
			info := errinfo.InterpreterFailed(err.Error())
			o.notifier.Errorf("%s", info.Message())
			return &Error{Info: info}
		}
	} else {
		o.notifier.Print(o.render(resp.Content))
	}

	o.notifier.Successf("Generation complete: %d credits used, %d remaining.", resp.CreditsUsed, resp.RemainingCredits)
	return nil
}

func (o *Orchestrator) saveContent(path, content string) error {
	before, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	if existed && string(before) != content {
		preview, truncated := diff.Preview(string(before), content, 0)
		if truncated {
			o.notifier.Infof("Overwrote %s (diff too large to preview).", path)
		} else {
			o.notifier.Infof("Changes to %s:", path)
			o.notifier.Print(preview)
		}
	}
	o.notifier.Infof("Saved generated content to %s", path)
	return nil
}

// classify maps a backend failure onto the user-facing taxonomy by status
// code value.
func classify(err error) *errinfo.ErrorInfo {
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized:
			return errinfo.TokenInvalid()
		case http.StatusPaymentRequired:
			return errinfo.InsufficientCredits(statusErr.Detail)
		case http.StatusTooManyRequests:
			return errinfo.RateLimited(statusErr.Detail)
		default:
			return errinfo.GenerationFailed(statusErr.Detail)
		}
	}
	if errors.Is(err, egress.ErrBlocked) {
		return errinfo.EgressBlocked(err.Error())
	}
	return errinfo.GenerationFailed(err.Error())
}
