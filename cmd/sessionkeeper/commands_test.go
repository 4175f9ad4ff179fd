package main

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/larriantoniy/tg_session_keeper/internal/config"
)

func TestRenderConfigMasksRedisPassword(t *testing.T) {
	cfg := &config.AppConfig{
		Env:         "prod",
		BaseDir:     "/srv",
		DialogLimit: 100,
		Redis:       config.RedisConfig{Addr: "localhost:6379", Password: "hunter2"},
	}

	out, err := renderConfig(cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "hunter2") {
		t.Fatalf("password leaked:\n%s", out)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Fatal("renderConfig must not modify the loaded config")
	}

	var back config.AppConfig
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if back.BaseDir != "/srv" || back.Redis.Addr != "localhost:6379" || back.DialogLimit != 100 {
		t.Fatalf("got %+v", back)
	}
}
