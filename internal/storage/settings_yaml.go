package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eyecare/internal/ui/preferences"
	"eyecare/internal/ui/theme"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	BreakLengthSeconds   int      `yaml:"break_length_seconds,omitempty"`
	Theme                string   `yaml:"theme,omitempty"`
	PlaySound            *bool    `yaml:"play_sound,omitempty"`
	SoundVolume          *float64 `yaml:"sound_volume,omitempty"`
	ShowNotifications    *bool    `yaml:"show_notifications,omitempty"`
	MotivationalMessages *bool    `yaml:"motivational_messages,omitempty"`
	ShowBreakStreak      *bool    `yaml:"show_break_streak,omitempty"`
	OverlayOpacity       float64  `yaml:"overlay_opacity,omitempty"`
	Fullscreen           *bool    `yaml:"fullscreen,omitempty"`
	LaunchAtLogin        *bool    `yaml:"launch_at_login,omitempty"`
}

// LoadSettings reads user preferences from settings.yaml in dir.
// If the file does not exist, default settings are returned.
func LoadSettings(dir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to settings.yaml in dir.
func SaveSettings(dir string, settings preferences.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		BreakLengthSeconds:   int(settings.BreakLength / time.Second),
		Theme:                string(settings.Theme),
		PlaySound:            &settings.PlaySound,
		SoundVolume:          &settings.SoundVolume,
		ShowNotifications:    &settings.ShowNotifications,
		MotivationalMessages: &settings.MotivationalMessages,
		ShowBreakStreak:      &settings.ShowBreakStreak,
		OverlayOpacity:       settings.OverlayOpacity,
		Fullscreen:           &settings.Fullscreen,
		LaunchAtLogin:        &settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(dir, settingsFileName), serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.BreakLengthSeconds > 0 {
		settings.BreakLength = time.Duration(fileData.BreakLengthSeconds) * time.Second
	}
	if style, ok := theme.ParseStyle(fileData.Theme); ok {
		settings.Theme = style
	}
	if fileData.OverlayOpacity >= preferences.MinOverlayOpacity && fileData.OverlayOpacity <= preferences.MaxOverlayOpacity {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}
	if volume := fileData.SoundVolume; volume != nil && *volume >= 0 && *volume <= 1 {
		settings.SoundVolume = *volume
	}

	applyBool(&settings.PlaySound, fileData.PlaySound)
	applyBool(&settings.ShowNotifications, fileData.ShowNotifications)
	applyBool(&settings.MotivationalMessages, fileData.MotivationalMessages)
	applyBool(&settings.ShowBreakStreak, fileData.ShowBreakStreak)
	applyBool(&settings.Fullscreen, fileData.Fullscreen)
	applyBool(&settings.LaunchAtLogin, fileData.LaunchAtLogin)
}

func applyBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}

// writeFileAtomic replaces path through a temporary file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	temp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tempPath := temp.Name()
	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return err
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return os.Rename(tempPath, path)
}
