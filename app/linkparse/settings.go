package linkparse

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/driftapp/drift-parse/app/save"
)

// SourceSettings are the per-source overrides operators can set without a
// rebuild, e.g. backing off a platform that started rate limiting.
type SourceSettings struct {
	Enabled   *bool  `yaml:"enabled"`
	Timeout   int    `yaml:"timeout"` // seconds
	UserAgent string `yaml:"user_agent"`
}

type Settings struct {
	Sources map[string]SourceSettings `yaml:"sources"`
}

// LoadSettings reads the optional per-source settings file. A missing file
// yields defaults: every source enabled, shared fetch timeout.
func LoadSettings(path string) (*Settings, error) {
	settings := &Settings{Sources: map[string]SourceSettings{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("No source settings file, using defaults", "path", path)
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read source settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse source settings: %w", err)
	}
	if settings.Sources == nil {
		settings.Sources = map[string]SourceSettings{}
	}

	known := map[string]bool{
		string(save.SourceTypeGoogleMaps): true,
		string(save.SourceTypeTikTok):     true,
		string(save.SourceTypeInstagram):  true,
		string(save.SourceTypeEventbrite): true,
		string(save.SourceTypeReddit):     true,
		string(save.SourceTypeOtherURL):   true,
	}
	for name := range settings.Sources {
		if !known[name] {
			slog.Warn("Source settings entry does not match a known source", "source", name)
		}
	}

	return settings, nil
}

func (s *Settings) SourceEnabled(sourceType save.SourceType) bool {
	if s == nil {
		return true
	}
	entry, ok := s.Sources[string(sourceType)]
	if !ok || entry.Enabled == nil {
		return true
	}
	return *entry.Enabled
}

func (s *Settings) SourceUserAgent(sourceType save.SourceType) string {
	if s == nil {
		return ""
	}
	return s.Sources[string(sourceType)].UserAgent
}

func (s *Settings) SourceTimeout(sourceType save.SourceType) time.Duration {
	if s == nil {
		return 0
	}
	entry, ok := s.Sources[string(sourceType)]
	if !ok || entry.Timeout <= 0 {
		return 0
	}
	return time.Duration(entry.Timeout) * time.Second
}
