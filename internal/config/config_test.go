package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return file
}

func TestLoadConfigDefaults(t *testing.T) {
	file := writeConfig(t, "client:\n  interface: eth0\n")

	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Client.Interface != "eth0" {
		t.Errorf("Expected interface eth0, got=%q", cfg.Client.Interface)
	}
	if cfg.Client.ClassID != "dhclientd" {
		t.Errorf("Expected default class ID, got=%q", cfg.Client.ClassID)
	}
	if !cfg.Client.Gateway || !cfg.Client.MTU || !cfg.Client.DNS {
		t.Error("Expected gateway, mtu and dns enabled by default")
	}
	if cfg.Client.NTP || cfg.Client.NIS || cfg.Client.Hostname {
		t.Error("Expected ntp, nis and hostname disabled by default")
	}
	if !cfg.Client.ARPCheck {
		t.Error("Expected arp_check enabled by default")
	}
	if cfg.Paths.ResolvFile != "/etc/resolv.conf" {
		t.Errorf("Expected default resolv_file, got=%q", cfg.Paths.ResolvFile)
	}
	if cfg.Paths.StateDB != "/var/lib/dhclientd/state.db" {
		t.Errorf("Expected default state_db, got=%q", cfg.Paths.StateDB)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got=%q", cfg.Logging.Level)
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
	if cfg.Metrics.ListenAddress != ":9101" {
		t.Errorf("Expected default metrics address, got=%q", cfg.Metrics.ListenAddress)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	file := writeConfig(t, `client:
  interface: wlan0
  metric: 200
  ntp: true
  arp_check: false
paths:
  resolv_file: /run/resolv.conf
  ntp_service: /etc/init.d/chronyd
logging:
  level: debug
metrics:
  enabled: true
  listen_address: ":9200"
`)

	cfg, err := LoadConfig(file)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Client.Interface != "wlan0" {
		t.Errorf("Expected interface wlan0, got=%q", cfg.Client.Interface)
	}
	if cfg.Client.Metric != 200 {
		t.Errorf("Expected metric 200, got=%d", cfg.Client.Metric)
	}
	if !cfg.Client.NTP {
		t.Error("Expected ntp enabled")
	}
	if cfg.Client.ARPCheck {
		t.Error("Expected arp_check disabled")
	}
	if cfg.Paths.ResolvFile != "/run/resolv.conf" {
		t.Errorf("Expected resolv_file override, got=%q", cfg.Paths.ResolvFile)
	}
	if cfg.Paths.NTPService != "/etc/init.d/chronyd" {
		t.Errorf("Expected ntp_service override, got=%q", cfg.Paths.NTPService)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got=%q", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.ListenAddress != ":9200" {
		t.Errorf("Expected metrics enabled on :9200, got=%v %q", cfg.Metrics.Enabled, cfg.Metrics.ListenAddress)
	}
}

func TestLoadConfigMissingInterface(t *testing.T) {
	file := writeConfig(t, "client:\n  script: /usr/local/bin/hook\n")

	if _, err := LoadConfig(file); err == nil {
		t.Error("Expected error for missing interface")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
