package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

var (
	ErrCredentialsNotFound  = errors.New("credentials file not found")
	ErrCredentialsMalformed = errors.New("credentials file is malformed")
)

// Credentials — пара api_id/api_hash приложения Telegram.
// Хранится на диске как CBOR-словарь с двумя обязательными ключами.
type Credentials struct {
	ApiID   int32  `cbor:"api_id"`
	ApiHash string `cbor:"api_hash"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("config: CBOR encoder initialization failed: " + err.Error())
	}

	// повторяющиеся и лишние ключи в словаре считаем порчей файла
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic("config: CBOR decoder initialization failed: " + err.Error())
	}
}

// LoadCredentials читает файл с api_id/api_hash.
// Отсутствие файла — ErrCredentialsNotFound, любой другой дефект — ErrCredentialsMalformed.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var creds Credentials
	if err := decMode.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCredentialsMalformed, path, err)
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCredentialsMalformed, path, err)
	}
	return &creds, nil
}

// SaveCredentials пишет файл с правами 0600 (там секрет).
func SaveCredentials(path string, creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	data, err := encMode.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c Credentials) Validate() error {
	if c.ApiID <= 0 {
		return errors.New("api_id is missing")
	}
	if c.ApiHash == "" {
		return errors.New("api_hash is missing")
	}
	return nil
}
