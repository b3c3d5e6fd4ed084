package linkparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/driftapp/drift-parse/app/save"
)

func TestLoadSettings_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "sources.yml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}

	if !settings.SourceEnabled(save.SourceTypeTikTok) {
		t.Error("Expected all sources enabled by default")
	}
	if settings.SourceTimeout(save.SourceTypeTikTok) != 0 {
		t.Error("Expected no timeout override by default")
	}
}

func TestLoadSettings_PerSourceOverrides(t *testing.T) {
	content := `sources:
  tiktok:
    enabled: false
  eventbrite:
    timeout: 5
  instagram:
    user_agent: "custom-agent/1.0"
`
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if settings.SourceEnabled(save.SourceTypeTikTok) {
		t.Error("Expected tiktok to be disabled")
	}
	if !settings.SourceEnabled(save.SourceTypeEventbrite) {
		t.Error("Expected eventbrite to stay enabled when only timeout is overridden")
	}
	if got := settings.SourceTimeout(save.SourceTypeEventbrite); got != 5*time.Second {
		t.Errorf("Expected 5s timeout override, got %v", got)
	}
	if settings.SourceTimeout(save.SourceTypeReddit) != 0 {
		t.Error("Expected no timeout override for reddit")
	}
	if got := settings.SourceUserAgent(save.SourceTypeInstagram); got != "custom-agent/1.0" {
		t.Errorf("Expected instagram user agent override, got '%s'", got)
	}
	if settings.SourceUserAgent(save.SourceTypeTikTok) != "" {
		t.Error("Expected no user agent override for tiktok")
	}
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte("sources: ["), 0o644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestSettings_NilReceiverDefaults(t *testing.T) {
	var settings *Settings
	if !settings.SourceEnabled(save.SourceTypeInstagram) {
		t.Error("Nil settings must behave as all-enabled")
	}
	if settings.SourceTimeout(save.SourceTypeInstagram) != 0 {
		t.Error("Nil settings must carry no timeout override")
	}
}
