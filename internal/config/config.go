// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/dashgrid/internal/grid"
	"github.com/xkilldash9x/dashgrid/internal/layout"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. DASHGRID_GRID_CELL_WIDTH.
const EnvPrefix = "DASHGRID"

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Grid() GridConfig
	Screen() ScreenConfig
	Padding() layout.Edges
	Engine() EngineConfig
	Network() NetworkConfig
	Dashlets() []DashletConfig

	// Screen Setters
	SetScreenSize(width, height int)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg   LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	GridCfg     GridConfig      `mapstructure:"grid" yaml:"grid"`
	ScreenCfg   ScreenConfig    `mapstructure:"screen" yaml:"screen"`
	PaddingCfg  layout.Edges    `mapstructure:"padding" yaml:"padding"`
	EngineCfg   EngineConfig    `mapstructure:"engine" yaml:"engine"`
	NetworkCfg  NetworkConfig   `mapstructure:"network" yaml:"network"`
	DashletsCfg []DashletConfig `mapstructure:"dashlets" yaml:"dashlets"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig      { return c.LoggerCfg }
func (c *Config) Grid() GridConfig          { return c.GridCfg }
func (c *Config) Screen() ScreenConfig      { return c.ScreenCfg }
func (c *Config) Padding() layout.Edges     { return c.PaddingCfg }
func (c *Config) Engine() EngineConfig      { return c.EngineCfg }
func (c *Config) Network() NetworkConfig    { return c.NetworkCfg }
func (c *Config) Dashlets() []DashletConfig { return c.DashletsCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetScreenSize(width, height int) {
	c.ScreenCfg.Width = width
	c.ScreenCfg.Height = height
}

type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// GridConfig sizes one grid cell and the title bar floors.
type GridConfig struct {
	CellWidth  int `mapstructure:"cell_width" yaml:"cell_width"`
	CellHeight int `mapstructure:"cell_height" yaml:"cell_height"`
	MinWidth   int `mapstructure:"min_width" yaml:"min_width"`
	TitleInset int `mapstructure:"title_inset" yaml:"title_inset"`
}

// Cell returns the cell size as a vector.
func (g GridConfig) Cell() grid.Vec {
	return grid.V(g.CellWidth, g.CellHeight)
}

// ScreenConfig describes the page the dashboard is drawn on. The layout region
// is the page minus the margins and the header.
type ScreenConfig struct {
	Width        int `mapstructure:"width" yaml:"width"`
	Height       int `mapstructure:"height" yaml:"height"`
	Margin       int `mapstructure:"margin" yaml:"margin"`
	HeaderHeight int `mapstructure:"header_height" yaml:"header_height"`
}

type EngineConfig struct {
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
}

type NetworkConfig struct {
	Timeout         time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	RateLimit       float64           `mapstructure:"rate_limit" yaml:"rate_limit"`
	Concurrency     int               `mapstructure:"concurrency" yaml:"concurrency"`
	Headers         map[string]string `mapstructure:"headers" yaml:"headers"`
	IgnoreTLSErrors bool              `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
}

// DashletConfig is one declared dashlet plus its presentation metadata.
type DashletConfig struct {
	grid.Dashlet `mapstructure:",squash" yaml:",inline"`
	Title        string `mapstructure:"title" yaml:"title,omitempty"`
	ReloadURL    string `mapstructure:"reload_url" yaml:"reload_url,omitempty"`
}

// Declarations extracts the bare placement declarations, in order.
func Declarations(dashlets []DashletConfig) []grid.Dashlet {
	out := make([]grid.Dashlet, len(dashlets))
	for i, d := range dashlets {
		out[i] = d.Dashlet
	}
	return out
}

// NewDefaultConfig returns the configuration made of defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg, DecodeHook()); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "dashgrid")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("grid.cell_width", 10)
	v.SetDefault("grid.cell_height", 10)
	v.SetDefault("grid.min_width", layout.DefaultMinWidth)
	v.SetDefault("grid.title_inset", layout.DefaultTitleInset)

	v.SetDefault("screen.width", 1280)
	v.SetDefault("screen.height", 800)
	v.SetDefault("screen.margin", 5)
	v.SetDefault("screen.header_height", 25)

	v.SetDefault("padding.top", 21)
	v.SetDefault("padding.right", 5)
	v.SetDefault("padding.bottom", 5)
	v.SetDefault("padding.left", 5)

	v.SetDefault("engine.queue_size", 256)

	v.SetDefault("network.timeout", "30s")
	v.SetDefault("network.rate_limit", 5.0)
	v.SetDefault("network.concurrency", 4)
	v.SetDefault("network.ignore_tls_errors", false)
}

// DecodeHook extends viper's default hooks so sizes may be written as
// `grow`, `max` or integers.
func DecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))
}

// BindEnv wires DASHGRID_* environment variables for every known key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ExpandPath resolves a leading ~ in a config file path.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand config path %q: %w", path, err)
	}
	return expanded, nil
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	BindEnv(v)

	if err := v.Unmarshal(&cfg, DecodeHook()); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.GridCfg.CellWidth <= 0 || c.GridCfg.CellHeight <= 0 {
		return fmt.Errorf("grid.cell_width and grid.cell_height must be positive integers")
	}
	if err := c.ScreenCfg.Validate(); err != nil {
		return fmt.Errorf("screen configuration invalid: %w", err)
	}
	if c.EngineCfg.QueueSize <= 0 {
		return fmt.Errorf("engine.queue_size must be a positive integer")
	}
	if err := c.NetworkCfg.Validate(); err != nil {
		return fmt.Errorf("network configuration invalid: %w", err)
	}
	for i, d := range c.DashletsCfg {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("dashlets[%d]: %w", i, err)
		}
	}
	return nil
}

func (s *ScreenConfig) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("width and height must not be negative")
	}
	if s.Margin < 0 || s.HeaderHeight < 0 {
		return fmt.Errorf("margin and header_height must not be negative")
	}
	return nil
}

func (n *NetworkConfig) Validate() error {
	if n.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be a positive integer")
	}
	if n.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive")
	}
	if n.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive duration")
	}
	return nil
}
