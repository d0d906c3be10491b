package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reconcile/internal/errors"
)

const (
	// ConfigFileName is the JSON configuration file.
	ConfigFileName = "reconcile.json"

	// YAMLFileName is the YAML configuration file, used when no JSON file
	// exists.
	YAMLFileName = "reconcile.yaml"

	// AddrEnv overrides Server.Addr.
	AddrEnv = "RECONCILE_ADDR"

	DefaultAddr         = ":8080"
	DefaultReadTimeout  = "60s"
	DefaultWriteTimeout = "10s"
	DefaultNamespace    = "reconcile"
	DefaultSnapshotDir  = "snapshots"
)

// Config represents reconcile.json (or reconcile.yaml).
type Config struct {
	// Server configures the live server.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Log configures the process logger.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Metrics configures the Prometheus exporter.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing configures the OpenTelemetry exporter.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Snapshot configures where rendered snapshots are stored.
	Snapshot SnapshotConfig `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`

	configPath string
}

// ServerConfig contains live server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// ReadTimeout bounds the wait for a client message (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout bounds a frame write (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// SnapshotConfig selects the snapshot store. A non-empty Bucket selects
// S3; otherwise snapshots go to Dir.
type SnapshotConfig struct {
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region overrides the region resolved by the AWS SDK (AWS_REGION,
	// the shared config profile).
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads reconcile.json, or reconcile.yaml, from dir. The returned
// error wraps fs.ErrNotExist when neither file exists.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		yamlPath := filepath.Join(dir, YAMLFileName)
		if _, yerr := os.Stat(yamlPath); yerr == nil {
			path = yamlPath
		}
	}
	return LoadFile(path)
}

// LoadFile loads a configuration file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON. Defaults and the environment
// override are applied, then the result is validated.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E180").
				WithDetail("No " + ConfigFileName + " or " + YAMLFileName + " found at " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("E180").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E180").
			WithDetail("Failed to parse " + filepath.Base(path)).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, in YAML when the extension asks
// for it.
func (c *Config) SaveTo(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E180").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E180").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
}

func (c *Config) applyEnv() {
	if addr := os.Getenv(AddrEnv); addr != "" {
		c.Server.Addr = addr
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("E180").WithDetail("server.addr must not be empty")
	}
	for name, v := range map[string]string{
		"server.readTimeout":  c.Server.ReadTimeout,
		"server.writeTimeout": c.Server.WriteTimeout,
	} {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return errors.New("E180").WithDetail(name + " must be a positive duration, got " + v)
		}
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("E180").WithDetail("log.level must be debug, info, warn or error, got " + c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E180").WithDetail("log.format must be text or json, got " + c.Log.Format)
	}
	return nil
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, DefaultReadTimeout)
}

// WriteTimeout returns the parsed server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, DefaultWriteTimeout)
}

func parseDuration(v, fallback string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Logger builds a logger writing to w with the configured level and format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levels[strings.ToLower(c.Log.Level)]}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
