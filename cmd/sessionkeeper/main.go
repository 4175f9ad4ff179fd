package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/larriantoniy/tg_session_keeper/internal/adapters/console"
	"github.com/larriantoniy/tg_session_keeper/internal/adapters/outcomelog"
	"github.com/larriantoniy/tg_session_keeper/internal/adapters/tg"
	"github.com/larriantoniy/tg_session_keeper/internal/config"
	"github.com/larriantoniy/tg_session_keeper/internal/ports"
	"github.com/larriantoniy/tg_session_keeper/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "sessionkeeper",
		Short:         "Interactive maintenance of Telegram account sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (or CONFIG_PATH)")
	root.AddCommand(initCredentialsCmd(), showConfigCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.Load(config.FetchConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфига: %w", err)
	}
	return cfg, nil
}

func runMenu() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Env)

	// без api_id/api_hash работать нельзя — это фатальная ошибка старта
	credsPath := cfg.Path(cfg.CredentialsFile)
	creds, err := config.LoadCredentials(credsPath)
	if err != nil {
		logger.Error("load credentials", "path", credsPath, "error", err)
		return fmt.Errorf("%w\nPlease create the file with API ID and Hash: sessionkeeper init-credentials --api-id ID --api-hash HASH", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
		// повторный Ctrl-C завершает процесс сразу
		signal.Stop(sigCh)
	}()

	recorders := outcomelog.Multi{
		outcomelog.NewFileRecorder(cfg.Path(cfg.SuccessLog), cfg.Path(cfg.FailureLog)),
	}
	if cfg.Redis.Addr != "" {
		rr := outcomelog.NewRedisRecorder(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err := rr.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, outcomes go to files only", "addr", cfg.Redis.Addr, "error", err)
			_ = rr.Close()
		} else {
			defer rr.Close()
			recorders = append(recorders, rr)
		}
	}

	prompt := console.NewPrompter(os.Stdin, os.Stdout)

	var opener ports.ClientOpener = tg.NewOpener(creds.ApiID, creds.ApiHash, prompt, os.Stdout, logger, tg.OpenerOptions{
		Verbosity:    cfg.TdlibVerbosity,
		CheckNetwork: cfg.CheckNetwork,
	})

	menu := useCases.NewMenu(useCases.MenuDeps{
		Prompt:        prompt,
		Out:           os.Stdout,
		Log:           logger,
		Repo:          config.NewFSSessionRepo(cfg),
		Opener:        opener,
		Recorder:      recorders,
		SessionsDir:   cfg.SessionsDir,
		ProbeUsername: cfg.ProbeUsername,
		ProbeText:     cfg.ProbeText,
		DialogLimit:   cfg.DialogLimit,
	})

	if err := menu.Run(ctx); err != nil {
		logger.Error("menu.Run error", "error", err)
		return err
	}

	logger.Info("exit")
	return nil
}

// логи в stderr, чтобы не мешать меню в stdout
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
		)
	}

	return logger
}
