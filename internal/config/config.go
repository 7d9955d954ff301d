package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notekeeper/notesweb/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "notesweb.json"

	// DefaultAddress is the default listen address.
	DefaultAddress = ":5173"

	// DefaultBase is the default deployment base.
	DefaultBase = "/"

	// DefaultAssetsDir is the default local asset directory.
	DefaultAssetsDir = "public"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "notesweb"
)

// History modes.
const (
	HistoryWeb    = "web"
	HistoryMemory = "memory"
)

// Environment variables overriding the file.
const (
	EnvHistory      = "NOTESWEB_HISTORY"
	EnvBase         = "BASE_URL"
	EnvAddress      = "NOTESWEB_ADDR"
	EnvAssetsDir    = "NOTESWEB_ASSETS_DIR"
	EnvAssetsBucket = "NOTESWEB_ASSETS_BUCKET"
	EnvLogLevel     = "NOTESWEB_LOG_LEVEL"
)

// Config represents the notesweb.json configuration.
type Config struct {
	// History selects how navigation is mirrored: "web" drives the browser
	// history, "memory" keeps it on the server.
	History string `json:"history,omitempty"`

	// Base is the deployment base path prefixed to every href.
	Base string `json:"base,omitempty"`

	// Address is the listen address.
	Address string `json:"address,omitempty"`

	// Assets configures static file serving.
	Assets AssetsConfig `json:"assets,omitempty"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing configures OpenTelemetry tracing of navigations.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Log configures the slog handler.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AssetsConfig contains static file settings.
type AssetsConfig struct {
	// Dir is the local directory with static files.
	Dir string `json:"dir,omitempty"`

	// S3 serves assets from a bucket instead of Dir when Bucket is set.
	S3 S3Config `json:"s3,omitempty"`
}

// S3Config locates assets in S3 or an S3-compatible store.
type S3Config struct {
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled"`
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		History: HistoryWeb,
		Base:    DefaultBase,
		Address: DefaultAddress,
		Assets: AssetsConfig{
			Dir: DefaultAssetsDir,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads notesweb.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		e := errors.New("E120").Wrap(err)
		var syntax *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case stderrors.As(err, &syntax):
			line, col := position(data, syntax.Offset)
			e.WithLocation(path, line, col)
		case stderrors.As(err, &typeErr):
			line, col := position(data, typeErr.Offset)
			e.WithLocation(path, line, col)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOptional is like LoadFile but returns the defaults when the file
// does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Code == "E141" {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, c := range data[:offset] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.History == "" {
		c.History = HistoryWeb
	}
	if c.Base == "" {
		c.Base = DefaultBase
	}
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.Assets.Dir == "" {
		c.Assets.Dir = DefaultAssetsDir
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvHistory, &c.History)
	set(EnvBase, &c.Base)
	set(EnvAddress, &c.Address)
	set(EnvAssetsDir, &c.Assets.Dir)
	set(EnvAssetsBucket, &c.Assets.S3.Bucket)
	set(EnvLogLevel, &c.Log.Level)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.History {
	case HistoryWeb, HistoryMemory:
	default:
		return errors.New("E123").
			WithDetail(fmt.Sprintf("history mode %q is not supported", c.History))
	}

	if strings.ContainsAny(c.Base, "?#\\ \t") {
		return errors.New("E121").
			WithDetail(fmt.Sprintf("base %q must be a plain path", c.Base))
	}

	if err := validateAddress(c.Address); err != nil {
		return err
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E125").
			WithDetail(fmt.Sprintf("metrics path %q is not absolute", c.Metrics.Path))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E124").
			WithDetail(fmt.Sprintf("log format %q is not supported", c.Log.Format))
	}
	return nil
}

func validateAddress(addr string) error {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("E122").Wrap(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return errors.New("E122").
			WithDetail(fmt.Sprintf("port %q must be between 0 and 65535", portStr))
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.New("E124").
			WithDetail(fmt.Sprintf("log level %q is not supported", s))
	}
	return level, nil
}

// UseS3 reports whether assets come from S3.
func (c *Config) UseS3() bool {
	return c.Assets.S3.Bucket != ""
}

// AssetsPath returns the asset directory, relative to the config file.
func (c *Config) AssetsPath() string {
	if filepath.IsAbs(c.Assets.Dir) {
		return c.Assets.Dir
	}
	return filepath.Join(c.Dir(), c.Assets.Dir)
}

// NewLogger builds the slog logger described by the Log settings.
// Invalid settings fall back to info level text output.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory containing
// notesweb.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
