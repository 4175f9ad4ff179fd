package tg

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/larriantoniy/tg_session_keeper/internal/domain"
)

const (
	netProbeTimeout   = 3 * time.Second
	proxyProbeTimeout = 5 * time.Second
)

// dial — подменяется в тестах
var dial = net.DialTimeout

func probe(network, addr string, timeout time.Duration) error {
	conn, err := dial(network, addr, timeout)
	if err != nil {
		return err
	}
	_ = conn.Close()
	return nil
}

// checkNetwork только пишет в лог, на результат входа не влияет
func checkNetwork(logger *slog.Logger) {
	if err := probe("tcp4", "8.8.8.8:53", netProbeTimeout); err != nil {
		logger.Warn("IPv4 seems not working", "error", err)
	} else {
		logger.Info("IPv4 OK")
	}

	if err := probe("tcp6", "[2606:4700:4700::1111]:53", netProbeTimeout); err != nil {
		logger.Warn("IPv6 seems not working", "error", err)
	} else {
		logger.Info("IPv6 OK")
	}
}

// proxyNetworks: для IP-литерала одна сеть, для hostname сначала IPv6, потом IPv4
func proxyNetworks(host string) []string {
	ip := net.ParseIP(host)
	switch {
	case ip == nil:
		return []string{"tcp6", "tcp4"}
	case ip.To4() == nil:
		return []string{"tcp6"}
	default:
		return []string{"tcp4"}
	}
}

// checkProxy проверяет доступность SOCKS5-прокси сессии и возвращает сеть, по которой он ответил.
func checkProxy(logger *slog.Logger, proxyCfg *domain.Proxy) (string, error) {
	if proxyCfg == nil {
		logger.Info("proxy disabled, skipping check")
		return "", nil
	}

	addr := net.JoinHostPort(proxyCfg.Server, strconv.Itoa(int(proxyCfg.Port)))

	var lastErr error
	for _, network := range proxyNetworks(proxyCfg.Server) {
		logger.Info("checking proxy...", "network", network, "addr", addr)
		if err := probe(network, addr, proxyProbeTimeout); err != nil {
			logger.Warn("proxy unreachable", "network", network, "addr", addr, "error", err)
			lastErr = err
			continue
		}
		logger.Info("proxy reachable", "network", network, "addr", addr)
		return network, nil
	}

	logger.Error("proxy unreachable", "addr", addr, "error", lastErr)
	return "", fmt.Errorf("proxy %s unreachable: %w", addr, lastErr)
}
