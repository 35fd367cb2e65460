package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:              "8080",
		SourcesDir:        "./sources",
		DBPath:            "./partsearch.db",
		RedisAddr:         "localhost:6379",
		UserAgent:         "Test Agent",
		WorkerCount:       5,
		SchedulerInterval: 60,
		WatchInterval:     3600,
		APIAccessKey:      "test-key",
		Version:           "test-version",
		Timezone:          "UTC",
		Debug:             true,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SourcesDir != "./sources" {
		t.Errorf("Expected sources dir './sources', got '%s'", cfg.SourcesDir)
	}
	if cfg.DBPath != "./partsearch.db" {
		t.Errorf("Expected db path './partsearch.db', got '%s'", cfg.DBPath)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("Expected worker count 5, got %d", cfg.WorkerCount)
	}
	if cfg.WatchInterval != 3600 {
		t.Errorf("Expected watch interval 3600, got %d", cfg.WatchInterval)
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be a valid timezone, got %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected invalid timezone to return an error")
	}
}
