// Package config resolves command settings from flags, environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is used for the config directory and file lookup.
	AppName = "repotidy"
	// EnvPrefix prefixes environment overrides, e.g. REPOTIDY_SORT_BY.
	EnvPrefix = "REPOTIDY"
)

// Settings holds the resolved values of every command flag. Flags that a
// command does not define keep their zero value.
type Settings struct {
	Exclude    []string `mapstructure:"exclude"`
	NoExcludes bool     `mapstructure:"no-excludes"`
	FilesOnly  bool     `mapstructure:"files-only"`
	Ext        []string `mapstructure:"ext"`
	MinSize    string   `mapstructure:"min-size"`
	Gitignore  bool     `mapstructure:"gitignore"`
	SortBy     string   `mapstructure:"sort-by"`
	Reverse    bool     `mapstructure:"reverse"`
	Limit      int      `mapstructure:"limit"`
	Top        int      `mapstructure:"top"`
	Summary    bool     `mapstructure:"summary"`
	Output     string   `mapstructure:"output"`
	Debug      bool     `mapstructure:"debug"`

	// Source is the config file that was read, empty if none.
	Source string `mapstructure:"-"`
}

// Load resolves settings with precedence flag > environment > config file > flag default.
// An explicit configFile must exist; otherwise config.yaml is looked up in the
// user config directory and the working directory, and its absence is not an error.
func Load(configFile string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppName))
		}

		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	settings.Source = v.ConfigFileUsed()

	return &settings, nil
}
