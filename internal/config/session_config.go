package config

import (
	"fmt"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

// RawSessionConfig — формат config.json рядом с базой TDLib.
type RawSessionConfig struct {
	Phone string `json:"phone"`

	SDK        string `json:"sdk"`         // условно: SystemVersion
	AppVersion string `json:"app_version"` // ApplicationVersion
	Device     string `json:"device"`      // DeviceModel
	LangCode   string `json:"lang_code"`   // SystemLanguageCode

	Proxy []any `json:"proxy"` // [type, host, port, useAuth, user, pass]
}

func (c *RawSessionConfig) ToProxyConfig() (*domain.Proxy, error) {
	if len(c.Proxy) == 0 {
		return nil, nil
	}
	if len(c.Proxy) < 6 {
		return nil, fmt.Errorf("invalid proxy length: %d", len(c.Proxy))
	}

	// type := c.Proxy[0] (3 — условно socks5, но нам не важно)
	host, _ := c.Proxy[1].(string)

	// port может прийти как float64 из json.Unmarshal
	var port int32
	switch v := c.Proxy[2].(type) {
	case float64:
		port = int32(v)
	case int:
		port = int32(v)
	default:
		return nil, fmt.Errorf("invalid proxy port type %T", c.Proxy[2])
	}

	useAuth, _ := c.Proxy[3].(bool)
	user, _ := c.Proxy[4].(string)
	pass, _ := c.Proxy[5].(string)

	if host == "" || port == 0 {
		return nil, nil
	}

	p := &domain.Proxy{
		Server: host,
		Port:   port,
	}
	if useAuth {
		p.Username = user
		p.Password = pass
	}
	return p, nil
}

// Apply переносит настройки устройства и прокси в сессию.
// Номер из файла используется только если в сессии его нет.
func (c *RawSessionConfig) Apply(sess *domain.Session) error {
	proxy, err := c.ToProxyConfig()
	if err != nil {
		return fmt.Errorf("proxy parse: %w", err)
	}
	if sess.Phone == "" {
		sess.Phone = c.Phone
	}
	sess.DeviceModel = c.Device
	sess.SystemVersion = c.SDK
	sess.ApplicationVersion = c.AppVersion
	sess.LangCode = c.LangCode
	sess.Proxy = proxy
	return nil
}
