package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

type AppConfig struct {
	Env     string `yaml:"env" env:"ENV" env-default:"local"`
	BaseDir string `yaml:"base_dir" env:"BASE_DIR" env-default:"."`

	DefaultSession  string `yaml:"default_session" env:"DEFAULT_SESSION" env-default:"session"`
	SessionsDir     string `yaml:"sessions_dir" env:"SESSIONS_DIR" env-default:"sessions"`
	CredentialsFile string `yaml:"credentials_file" env:"CREDENTIALS_FILE" env-default:"info.cbor"`

	// логи результатов завершения чужих сессий, по номеру на строку
	SuccessLog string `yaml:"success_log" env:"SUCCESS_LOG" env-default:"new_number.txt"`
	FailureLog string `yaml:"failure_log" env:"FAILURE_LOG" env-default:"old_number.txt"`

	ProbeUsername string `yaml:"probe_username" env:"PROBE_USERNAME" env-default:"@FastReciver_bot"`
	ProbeText     string `yaml:"probe_text" env:"PROBE_TEXT" env-default:"Hello from Termux!"`

	DialogLimit    int32 `yaml:"dialog_limit" env:"DIALOG_LIMIT" env-default:"100"`
	TdlibVerbosity int32 `yaml:"tdlib_verbosity" env:"TDLIB_VERBOSITY" env-default:"1"`
	CheckNetwork   bool  `yaml:"check_network" env:"CHECK_NETWORK" env-default:"false"`

	Redis RedisConfig `yaml:"redis" env-prefix:"REDIS_"`
}

// RedisConfig — необязательное зеркало логов результатов. Пустой Addr = выключено.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"PREFIX" env-default:"sessionkeeper"`
}

// Load читает YAML-конфиг (если путь задан) и переменные окружения.
// Пустой путь — только окружение и значения по умолчанию.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	} else {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	var errs []error
	if c.BaseDir == "" {
		errs = append(errs, errors.New("base_dir must be set"))
	}
	if c.DefaultSession == "" || c.SessionsDir == "" {
		errs = append(errs, errors.New("default_session and sessions_dir must be set"))
	}
	if c.DialogLimit <= 0 {
		errs = append(errs, fmt.Errorf("dialog_limit must be positive, got %d", c.DialogLimit))
	}
	if c.SuccessLog == "" || c.FailureLog == "" {
		errs = append(errs, errors.New("success_log and failure_log must be set"))
	}
	return errors.Join(errs...)
}

// Path резолвит относительный путь от BaseDir.
func (c *AppConfig) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// FetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func FetchConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}
