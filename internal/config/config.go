package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ThemeConfig holds TUI color configuration.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// LogConfig controls where and how verbosely mindary logs.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config holds the application configuration.
type Config struct {
	Storage        string        `mapstructure:"storage"`
	DataDir        string        `mapstructure:"data_dir"`
	ServerURL      string        `mapstructure:"server_url"`
	ListenAddr     string        `mapstructure:"listen_addr"`
	Timezone       string        `mapstructure:"timezone"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	PersistRecords bool          `mapstructure:"persist_records"`
	Editor         string        `mapstructure:"editor"`
	MaxWidth       int           `mapstructure:"max_width"`
	Log            LogConfig     `mapstructure:"log"`
	Theme          ThemeConfig   `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.mindary/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mindary")
	}
	return filepath.Join(home, ".mindary")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("server_url", "")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("timezone", "Asia/Seoul")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("persist_records", true)
	v.SetDefault("editor", "")
	v.SetDefault("max_width", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("theme.preset", "default-dark")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mindary"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// MINDARY_SERVER_URL, MINDARY_LOG_LEVEL, ...
	v.SetEnvPrefix("MINDARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
