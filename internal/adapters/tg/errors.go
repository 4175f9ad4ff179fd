package tg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

var ErrRateLimited = errors.New("tdlib: too many requests")

// Ошибки TDLib приходят как "<code> <MESSAGE>", классифицируем по тексту.

func isTooManyRequests(err error) bool {
	// обычно код 429, но подстрахуемся по тексту
	return hasMarker(err, "429 ", "TOO MANY REQUESTS", "FLOOD_WAIT")
}

func isInvalidCode(err error) bool {
	return hasMarker(err, "PHONE_CODE_INVALID")
}

func isPhoneOccupied(err error) bool {
	return hasMarker(err, "PHONE_NUMBER_OCCUPIED")
}

// Telegram не даёт сбрасывать чужие сессии из только что созданной
func isSessionTooNew(err error) bool {
	return hasMarker(err, "FRESH_RESET_AUTHORISATION_FORBIDDEN", "TOO NEW")
}

// classify оборачивает известные ошибки TDLib в доменные; остальные возвращает как есть
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case isInvalidCode(err):
		return fmt.Errorf("%w: %v", domain.ErrInvalidCode, err)
	case isPhoneOccupied(err):
		return fmt.Errorf("%w: %v", domain.ErrPhoneOccupied, err)
	case isSessionTooNew(err):
		return fmt.Errorf("%w: %v", domain.ErrSessionTooNew, err)
	default:
		return err
	}
}

func hasMarker(err error, markers ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToUpper(err.Error())
	for _, m := range markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
