// Package config loads service settings from defaults, an optional config
// file, a .env file, CURRICULO_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"resume-pdf/internal/locale"
	"resume-pdf/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CURRICULO"

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Render   RenderConfig
	Chrome   ChromeConfig
	Database DatabaseConfig
	Log      logger.Config
	Metrics  MetricsConfig
}

type AppConfig struct {
	Env string
}

type HTTPConfig struct {
	Port        int
	BodyLimit   int
	CORSOrigins string
}

type RenderConfig struct {
	Locale       string
	FontFamily   string
	FontPath     string
	FontBoldPath string
}

// ChromeConfig controls the optional chrome engine.
type ChromeConfig struct {
	Enabled bool
	Path    string
	Timeout time.Duration
}

// DatabaseConfig enables the generation audit log when URL is set.
type DatabaseConfig struct {
	URL string
}

type MetricsConfig struct {
	Enabled bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.body_limit", 1<<20)
	v.SetDefault("http.cors_origins", "*")
	v.SetDefault("render.locale", locale.DefaultTag)
	v.SetDefault("render.font_family", "")
	v.SetDefault("render.font_path", "")
	v.SetDefault("render.font_bold_path", "")
	v.SetDefault("chrome.enabled", false)
	v.SetDefault("chrome.path", "")
	v.SetDefault("chrome.timeout", 60*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("metrics.enabled", true)
}

// Flags returns the flag set Load parses. name is the program name used in
// usage output.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to a config file (yaml, toml or json)")
	fs.String("env-file", ".env", "dotenv file loaded before reading the environment")
	fs.IntP("port", "p", 5000, "HTTP listen port")
	fs.String("locale", locale.DefaultTag, "default document locale")
	fs.String("font", "", "TrueType font used instead of the core Helvetica")
	fs.Bool("chrome", false, "enable the chrome engine")
	fs.String("log-level", "info", "debug, info, warn or error")
	return fs
}

var flagKeys = map[string]string{
	"port":      "http.port",
	"locale":    "render.locale",
	"font":      "render.font_path",
	"chrome":    "chrome.enabled",
	"log-level": "log.level",
}

// Load parses args (without the program name) and builds the configuration.
func Load(args []string) (*Config, error) {
	fs := Flags("curriculo")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return LoadFlags(fs)
}

// LoadFlags builds the configuration from an already parsed flag set created
// by Flags.
func LoadFlags(fs *pflag.FlagSet) (*Config, error) {
	envFile, _ := fs.GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/curriculo")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		App: AppConfig{Env: v.GetString("app.env")},
		HTTP: HTTPConfig{
			Port:        v.GetInt("http.port"),
			BodyLimit:   v.GetInt("http.body_limit"),
			CORSOrigins: v.GetString("http.cors_origins"),
		},
		Render: RenderConfig{
			Locale:       v.GetString("render.locale"),
			FontFamily:   v.GetString("render.font_family"),
			FontPath:     v.GetString("render.font_path"),
			FontBoldPath: v.GetString("render.font_bold_path"),
		},
		Chrome: ChromeConfig{
			Enabled: v.GetBool("chrome.enabled"),
			Path:    v.GetString("chrome.path"),
			Timeout: v.GetDuration("chrome.timeout"),
		},
		Database: DatabaseConfig{URL: v.GetString("database.url")},
		Log: logger.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Metrics: MetricsConfig{Enabled: v.GetBool("metrics.enabled")},
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logger.ForEnvironment(cfg.App.Env).Format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.HTTP.BodyLimit <= 0 {
		return fmt.Errorf("http.body_limit must be positive")
	}
	if _, err := locale.Lookup(c.Render.Locale); err != nil {
		return fmt.Errorf("render.locale: %w", err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Chrome.Enabled && c.Chrome.Timeout <= 0 {
		return fmt.Errorf("chrome.timeout must be positive")
	}
	return nil
}

func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.HTTP.Port) }
