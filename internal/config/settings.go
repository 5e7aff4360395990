package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/danken4445/hospital-management/internal/analytics"
)

// SettingsLoadError reports a settings file that exists but cannot be used.
type SettingsLoadError struct {
	Path string
	Err  error
}

func (e *SettingsLoadError) Error() string {
	return fmt.Sprintf("loading analytics settings from %s: %v", e.Path, e.Err)
}

func (e *SettingsLoadError) Unwrap() error {
	return e.Err
}

// LoadAnalyticsSettings reads pipeline settings from a TOML file. An empty path or a
// missing file yields the defaults; fields absent from the file keep their defaults.
func LoadAnalyticsSettings(path string) (analytics.Settings, error) {
	if path == "" {
		return analytics.DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return analytics.DefaultSettings(), nil
		}
		return analytics.Settings{}, &SettingsLoadError{Path: path, Err: err}
	}

	var settings analytics.Settings
	if _, err := toml.Decode(string(data), &settings); err != nil {
		return analytics.Settings{}, &SettingsLoadError{Path: path, Err: err}
	}

	for _, opt := range settings.Timelines {
		if opt.Value == "" || opt.Days <= 0 {
			return analytics.Settings{}, &SettingsLoadError{
				Path: path,
				Err:  fmt.Errorf("timeline %q must have a value and positive days", opt.Label),
			}
		}
	}

	return settings.WithDefaults(), nil
}
