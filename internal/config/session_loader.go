package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const sessionConfigFile = "config.json"

// LoadRawSessionConfig читает необязательный config.json из каталога сессии.
// Нет файла — (nil, nil), сессия поднимается с параметрами по умолчанию.
func LoadRawSessionConfig(sessionDir string) (*RawSessionConfig, error) {
	path := filepath.Join(sessionDir, sessionConfigFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg RawSessionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &cfg, nil
}
