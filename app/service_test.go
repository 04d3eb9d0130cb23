package app

import (
	"path/filepath"
	"testing"

	"github.com/tripathik9559/railops/config"
	"github.com/tripathik9559/railops/core/schedule/history"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		History: history.Config{Path: filepath.Join(t.TempDir(), "solves.log")},
	}
	cfg.Schedule.SetDefaults()
	cfg.History.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.API.SetDefaults()
	return cfg
}

func TestNewService(t *testing.T) {
	svc, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}()
	if svc.Planner == nil || svc.Store == nil {
		t.Fatalf("service not fully wired")
	}
	trains, platforms := svc.Store.Snapshot()
	if len(trains) != 4 || len(platforms) != 6 {
		t.Fatalf("store not seeded with defaults: %d trains, %d platforms", len(trains), len(platforms))
	}
}

func TestNewServiceWithPrometheus(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.PrometheusEnabled = true
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
