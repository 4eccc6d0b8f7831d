package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rangetimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	AnnounceEnabled     bool `yaml:"announce_enabled"`
	Fullscreen          bool `yaml:"fullscreen"`
	FlashWarningSeconds int  `yaml:"flash_warning_seconds"`
}

// LoadSettings reads display preferences from YAML.
// If the settings file does not exist, defaults are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	settingsPath, err := resolveSettingsPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	fileData := yamlSettings{
		AnnounceEnabled:     settings.AnnounceEnabled,
		Fullscreen:          settings.Fullscreen,
		FlashWarningSeconds: settings.FlashWarningSeconds,
	}
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	settings.AnnounceEnabled = fileData.AnnounceEnabled
	settings.Fullscreen = fileData.Fullscreen
	if fileData.FlashWarningSeconds >= 0 {
		settings.FlashWarningSeconds = fileData.FlashWarningSeconds
	}
	return settings, nil
}

// SaveSettings writes display preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	settingsPath, err := resolveSettingsPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		AnnounceEnabled:     settings.AnnounceEnabled,
		Fullscreen:          settings.Fullscreen,
		FlashWarningSeconds: settings.FlashWarningSeconds,
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(settingsPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func resolveSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}
