// Package prefs loads the editor's own preferences from
// ~/.config/settings-tui/config.toml and SETTINGS_TUI_* environment variables.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Prefs struct {
	NoColor bool     `mapstructure:"no_color"`
	Debug   bool     `mapstructure:"debug"`
	Log     LogPrefs `mapstructure:"log"`
	UI      UIPrefs  `mapstructure:"ui"`
}

type LogPrefs struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	Level   string `mapstructure:"level"`
}

type UIPrefs struct {
	// Width of the value column in cells; 0 follows the terminal.
	Width int `mapstructure:"width"`
	// InputWidth is the width of text inputs inside edit forms.
	InputWidth int `mapstructure:"input_width"`
}

// Load reads preferences. SETTINGS_TUI_CONFIG names an explicit file, which
// must exist; the default file is optional.
func Load() (Prefs, error) {
	v := viper.New()

	v.SetDefault("no_color", false)
	v.SetDefault("debug", false)
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.width", 0)
	v.SetDefault("ui.input_width", 32)

	v.SetConfigType("toml")
	explicit := os.Getenv("SETTINGS_TUI_CONFIG")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "settings-tui"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SETTINGS_TUI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Prefs{}, fmt.Errorf("read preferences: %w", err)
		}
	}

	var p Prefs
	if err := v.Unmarshal(&p); err != nil {
		return Prefs{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return p, nil
}
