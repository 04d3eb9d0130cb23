package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `station:
  platforms: [1, 2, 3]
  trains:
    - id: "T001"
      type: "Express"
      priority: 1
      duration: 10
      preferred_time: 630
schedule:
  time_horizon_minutes: 600
  buffer_minutes: 3
history:
  backend: "sqlite"
  path: "solves.db"
metrics:
  prometheus_enabled: true
  prometheus_port: ":9465"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "station/updates"
api:
  addr: ":8081"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"platforms", len(cfg.Station.Platforms), 3},
		{"train id", cfg.Station.Trains[0].ID, "T001"},
		{"horizon", cfg.Schedule.TimeHorizonMinutes, 600},
		{"buffer", cfg.Schedule.BufferMinutes, 3},
		{"time start default", cfg.Schedule.TimeStartMinutes, 360},
		{"solver timeout default", cfg.Schedule.SolverTimeoutSeconds, 10.0},
		{"history backend", cfg.History.Backend, "sqlite"},
		{"history path", cfg.History.Path, "solves.db"},
		{"prom enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prom port", cfg.Metrics.PrometheusPort, ":9465"},
		{"mqtt broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt topic", cfg.MQTT.Topic, "station/updates"},
		{"api addr", cfg.API.Addr, ":8081"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RAILOPS_API__ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":9999" {
		t.Fatalf("env override ignored, addr = %s", cfg.API.Addr)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadRejectsBadSchedule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("schedule:\n  time_horizon_minutes: -10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
