// ABOUTME: Tests for the eamctl configuration loader
// ABOUTME: Covers defaults, overrides, and validation of env values

package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.Retries != 3 {
		t.Errorf("Expected default retries 3, got %d", cfg.Retries)
	}
	if cfg.BaseDelay != 400*time.Millisecond {
		t.Errorf("Expected default base delay 400ms, got %v", cfg.BaseDelay)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("EAM_API_URL", "https://eam.example.com")
	os.Setenv("EAM_TIMEOUT_MS", "2500")
	os.Setenv("EAM_RETRIES", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.BaseURL != "https://eam.example.com" {
		t.Errorf("Expected overridden base URL, got %s", cfg.BaseURL)
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Errorf("Expected 2500ms timeout, got %v", cfg.Timeout)
	}
	if cfg.Retries != 1 {
		t.Errorf("Expected 1 retry, got %d", cfg.Retries)
	}
}

func TestLoadConfig_AddsScheme(t *testing.T) {
	os.Clearenv()
	os.Setenv("EAM_API_URL", "eam.internal:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.BaseURL != "http://eam.internal:8080" {
		t.Errorf("Expected http scheme added, got %s", cfg.BaseURL)
	}
}

func TestLoadConfig_InvalidRetries(t *testing.T) {
	os.Clearenv()
	os.Setenv("EAM_RETRIES", "50")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for out-of-range retries, got nil")
	}
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	os.Clearenv()
	os.Setenv("EAM_TIMEOUT_MS", "-5")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for negative timeout, got nil")
	}
}
