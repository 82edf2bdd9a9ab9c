package cli

import (
	"log/slog"
	"os"

	"codeforge/internal/appdirs"
	"codeforge/internal/backend"
	"codeforge/internal/config"
	"codeforge/internal/envfile"
	"codeforge/internal/envutil"
	"codeforge/internal/logging"
	"codeforge/internal/notify"
	"codeforge/internal/secrets"
	"codeforge/internal/session"
)

// App wires the shared collaborators every command needs. It is built once
// per invocation; the session it carries is the only state shared between
// steps.
type App struct {
	Config   *config.Settings
	Session  *session.Session
	Client   *backend.Client
	Notifier notify.Notifier
	Logger   *slog.Logger

	closeLog func() error
}

func newApp(debug bool) (*App, error) {
	envResult := envfile.Load()
	dataDir, err := appdirs.DataDir()
	if err != nil {
		return nil, err
	}
	logSetup, logErr := logging.NewFileLogger(dataDir, debug || envutil.Bool("CODEFORGE_DEBUG"))
	logger := logSetup.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With("component", "cli")
	if logSetup.Enabled {
		logger.Info("cli.logging_enabled", "path", logSetup.Path)
	}
	if logErr != nil {
		logger.Warn("cli.log_setup_failed", "error", logErr.Error())
	}
	if envResult.Loaded {
		logger.Debug("cli.env_loaded", "path", envResult.Path, "keys", envResult.Keys)
	}
	if envResult.Err != nil {
		logger.Warn("cli.env_load_failed", "path", envResult.Path, "error", envResult.Err.Error())
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	store := secrets.NewStore(appdirs.SecretsPath(dataDir), appdirs.MasterKeyPath(dataDir))
	sess, err := session.Load(store, cfg.Token)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Session:  sess,
		Client:   backend.NewClient(cfg.BaseURL),
		Notifier: notify.NewTerminal(os.Stdout, os.Stderr),
		Logger:   logger,
		closeLog: logSetup.Close,
	}, nil
}

func (a *App) Close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}
