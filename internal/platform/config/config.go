// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName se usa para el prefijo de ENV y la ruta XDG.
const AppName = "phoneprobe"

// EnvPrefix prefijo de las variables de entorno (PHONEPROBE_CORE_WORKERS, ...).
const EnvPrefix = "PHONEPROBE"

type Config struct {
	Core    Core    `mapstructure:"core" json:"core"`
	HTTP    HTTP    `mapstructure:"http" json:"http"`
	Catalog Catalog `mapstructure:"catalog" json:"catalog"`
	Output  Output  `mapstructure:"output" json:"output"`
	UI      UI      `mapstructure:"ui" json:"ui"`
	Log     Log     `mapstructure:"log" json:"log"`
	Metrics Metrics `mapstructure:"metrics" json:"metrics"`

	// ConfigFile archivo efectivamente leído ("" si ninguno)
	ConfigFile string `mapstructure:"-" json:"config_file,omitempty"`
}

type Core struct {
	Workers    int           `mapstructure:"workers" json:"workers"`
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout"`
	Retries    int           `mapstructure:"retries" json:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay" json:"retry_delay"`
	RunTimeout time.Duration `mapstructure:"run_timeout" json:"run_timeout"` // 0 = sin límite
	Schedule   string        `mapstructure:"schedule" json:"schedule"`
}

type HTTP struct {
	Insecure        bool    `mapstructure:"insecure" json:"insecure"`
	Proxy           string  `mapstructure:"proxy" json:"proxy,omitempty"`
	RateLimit       float64 `mapstructure:"rate_limit" json:"rate_limit"`
	RateBurst       int     `mapstructure:"rate_burst" json:"rate_burst"`
	FollowRedirects bool    `mapstructure:"follow_redirects" json:"follow_redirects"`
}

type Catalog struct {
	File       string   `mapstructure:"file" json:"file,omitempty"`
	Categories []string `mapstructure:"categories" json:"categories,omitempty"`
}

type Output struct {
	Dir     string   `mapstructure:"dir" json:"dir"`
	Formats []string `mapstructure:"formats" json:"formats"`
	File    string   `mapstructure:"file" json:"file,omitempty"`
	NoTable bool     `mapstructure:"no_table" json:"no_table"`
	Stream  bool     `mapstructure:"stream" json:"stream"`
}

type UI struct {
	Quiet    bool `mapstructure:"quiet" json:"quiet"`
	NoBanner bool `mapstructure:"no_banner" json:"no_banner"`
}

type Log struct {
	Level       string `mapstructure:"level" json:"level"`
	Format      string `mapstructure:"format" json:"format"`
	Development bool   `mapstructure:"development" json:"development"`
}

type Metrics struct {
	File string `mapstructure:"file" json:"file,omitempty"`
}

// Valores por defecto del motor.
const (
	DefaultWorkers    = 5
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = 2 * time.Second
	DefaultOutputDir  = "phoneprobe_out"
	DefaultSchedule   = "fifo"
)

var (
	validSchedules  = []string{"fifo", "weighted"}
	validFormats    = []string{"csv", "json", "yaml", "markdown"}
	validLogFormats = []string{"console", "json"}
)

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: Core{
			Workers:    DefaultWorkers,
			Timeout:    DefaultTimeout,
			Retries:    DefaultRetries,
			RetryDelay: DefaultRetryDelay,
			Schedule:   DefaultSchedule,
		},
		HTTP: HTTP{
			RateBurst:       1,
			FollowRedirects: true,
		},
		Output: Output{
			Dir:     DefaultOutputDir,
			Formats: []string{"csv", "json"},
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults registra los defaults en viper (capa más baja).
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("core.workers", d.Core.Workers)
	v.SetDefault("core.timeout", d.Core.Timeout)
	v.SetDefault("core.retries", d.Core.Retries)
	v.SetDefault("core.retry_delay", d.Core.RetryDelay)
	v.SetDefault("core.run_timeout", d.Core.RunTimeout)
	v.SetDefault("core.schedule", d.Core.Schedule)
	v.SetDefault("http.insecure", d.HTTP.Insecure)
	v.SetDefault("http.proxy", d.HTTP.Proxy)
	v.SetDefault("http.rate_limit", d.HTTP.RateLimit)
	v.SetDefault("http.rate_burst", d.HTTP.RateBurst)
	v.SetDefault("http.follow_redirects", d.HTTP.FollowRedirects)
	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.categories", []string{})
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.formats", d.Output.Formats)
	v.SetDefault("output.file", "")
	v.SetDefault("output.no_table", false)
	v.SetDefault("output.stream", false)
	v.SetDefault("ui.quiet", false)
	v.SetDefault("ui.no_banner", false)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.development", false)
	v.SetDefault("metrics.file", "")
}

// flagBindings asocia cada clave de viper con su flag.
var flagBindings = map[string]string{
	"core.workers":          "workers",
	"core.timeout":          "timeout",
	"core.retries":          "retry",
	"core.retry_delay":      "retry-delay",
	"core.run_timeout":      "run-timeout",
	"core.schedule":         "schedule",
	"http.insecure":         "insecure",
	"http.proxy":            "proxy",
	"http.rate_limit":       "rate-limit",
	"http.rate_burst":       "rate-burst",
	"http.follow_redirects": "follow-redirects",
	"catalog.file":          "catalog",
	"catalog.categories":    "categories",
	"output.dir":            "out-dir",
	"output.formats":        "formats",
	"output.file":           "output",
	"output.no_table":       "no-table",
	"output.stream":         "stream",
	"ui.quiet":              "quiet",
	"ui.no_banner":          "no-banner",
	"log.level":             "log-level",
	"log.format":            "log-format",
	"metrics.file":          "metrics-file",
}

// RegisterFlags añade al FlagSet todas las opciones de un scan.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()

	fs.StringP("config", "c", "", "Config file (default: ./phoneprobe.yaml or $XDG_CONFIG_HOME/phoneprobe/config.yaml)")

	// Core
	fs.IntP("workers", "w", d.Core.Workers, "Categories probed concurrently")
	fs.DurationP("timeout", "t", d.Core.Timeout, "Per-attempt request timeout")
	fs.IntP("retry", "r", d.Core.Retries, "Attempts per endpoint on transport errors")
	fs.Duration("retry-delay", d.Core.RetryDelay, "Fixed delay between attempts")
	fs.Duration("run-timeout", d.Core.RunTimeout, "Cancel the whole run after this long (0 = no limit)")
	fs.String("schedule", d.Core.Schedule, "Category dispatch order: fifo|weighted")

	// HTTP
	fs.BoolP("insecure", "k", d.HTTP.Insecure, "Skip TLS certificate verification")
	fs.StringP("proxy", "p", d.HTTP.Proxy, "HTTP(S) proxy URL for outbound requests")
	fs.Float64("rate-limit", d.HTTP.RateLimit, "Global requests per second (0 = unlimited)")
	fs.Int("rate-burst", d.HTTP.RateBurst, "Burst size for --rate-limit")
	fs.Bool("follow-redirects", d.HTTP.FollowRedirects, "Follow HTTP redirects before judging the status")

	// Catalog
	fs.String("catalog", "", "YAML file with extra categories/sources")
	fs.StringSlice("categories", nil, "Only probe these categories (comma separated)")

	// Output
	fs.StringP("output", "o", "", "Write the report to this file (format from extension, e.g. results.csv)")
	fs.String("out-dir", d.Output.Dir, "Output directory for timestamped reports")
	fs.StringSlice("formats", d.Output.Formats, "Report formats: csv,json,yaml,markdown")
	fs.Bool("no-table", false, "Do not print the results table")
	fs.Bool("stream", false, "Write partial results to disk as categories finish")

	// UI / logging
	fs.BoolP("quiet", "q", false, "Disable banner and progress output")
	fs.Bool("no-banner", false, "Do not print the banner")
	fs.String("log-level", d.Log.Level, "Log level: debug|info|warn|error")
	fs.String("log-format", d.Log.Format, "Log format: console|json")
	fs.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
}

// Load inicializa la configuración: defaults -> archivo -> ENV -> FLAGS.
// fs puede ser nil (solo defaults, archivo y ENV).
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	explicit := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
		for key, name := range flagBindings {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}

	path, err := resolveConfigFile(explicit)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigFile = path

	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveConfigFile busca el archivo de configuración.
// Un path explícito debe existir; los implícitos son opcionales.
func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, candidate := range SearchPaths() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

// SearchPaths retorna las rutas implícitas, en orden de prioridad.
func SearchPaths() []string {
	return []string{
		AppName + ".yaml",
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
	}
}

func normalize(c *Config) {
	if c.Core.Workers < 1 {
		c.Core.Workers = 1
	}
	if c.Core.Retries < 1 {
		c.Core.Retries = 1
	}
	if c.Core.Timeout <= 0 {
		c.Core.Timeout = DefaultTimeout
	}
	if c.Core.RetryDelay < 0 {
		c.Core.RetryDelay = 0
	}
	if c.Core.RunTimeout < 0 {
		c.Core.RunTimeout = 0
	}
	c.Core.Schedule = strings.ToLower(strings.TrimSpace(c.Core.Schedule))
	if c.Core.Schedule == "" {
		c.Core.Schedule = DefaultSchedule
	}
	if c.HTTP.RateBurst < 1 {
		c.HTTP.RateBurst = 1
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	c.Output.Formats = normalizeList(c.Output.Formats)
	c.Catalog.Categories = normalizeList(c.Catalog.Categories)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// normalizeList pasa a minúsculas, recorta y elimina duplicados manteniendo el orden.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		for _, part := range strings.Split(raw, ",") {
			s := strings.ToLower(strings.TrimSpace(part))
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Validate rechaza combinaciones imposibles.
func (c Config) Validate() error {
	if !contains(validSchedules, c.Core.Schedule) {
		return fmt.Errorf("core.schedule must be one of %v, got %q", validSchedules, c.Core.Schedule)
	}
	for _, f := range c.Output.Formats {
		if !contains(validFormats, f) {
			return fmt.Errorf("output.formats: unknown format %q (valid: %v)", f, validFormats)
		}
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("http.rate_limit must be >= 0")
	}
	if !contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v, got %q", validLogFormats, c.Log.Format)
	}
	return nil
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
