// Package config loads the query server configuration from config.yaml and the environment.
package config

import (
	"fmt"
	"github.com/c2h5oh/datasize"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Data      DataConfig      `mapstructure:"data"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Layout    LayoutConfig    `mapstructure:"layout"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// DataConfig selects where requests come from at startup.
type DataConfig struct {
	LoadFixture bool   `mapstructure:"load_fixture"`
	OtlpTraces  string `mapstructure:"otlp_traces"`
	OtlpLogs    string `mapstructure:"otlp_logs"`
}

type CacheConfig struct {
	// Human readable, e.g. 64MB
	MaxSize     string `mapstructure:"max_size"`
	NumCounters int64  `mapstructure:"num_counters"`
	BufferItems int64  `mapstructure:"buffer_items"`
}

type LayoutConfig struct {
	Timeline   TimelineConfig   `mapstructure:"timeline"`
	Flamegraph FlamegraphConfig `mapstructure:"flamegraph"`
	Flowchart  FlowchartConfig  `mapstructure:"flowchart"`
}

type TimelineConfig struct {
	Width      float64 `mapstructure:"width"`
	RowHeight  float64 `mapstructure:"row_height"`
	BarHeight  float64 `mapstructure:"bar_height"`
	TopPadding float64 `mapstructure:"top_padding"`
}

type FlamegraphConfig struct {
	Width     float64 `mapstructure:"width"`
	RowHeight float64 `mapstructure:"row_height"`
	BarHeight float64 `mapstructure:"bar_height"`
}

type FlowchartConfig struct {
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
	NodeWidth  float64 `mapstructure:"node_width"`
	NodeHeight float64 `mapstructure:"node_height"`
}

type WebSocketConfig struct {
	WriteTimeout string `mapstructure:"write_timeout"`
	PingInterval string `mapstructure:"ping_interval"`
	SendBuffer   int    `mapstructure:"send_buffer"`
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) GetReadTimeoutDuration() time.Duration {
	return parseDuration(c.ReadTimeout, 10*time.Second)
}

func (c *ServerConfig) GetWriteTimeoutDuration() time.Duration {
	return parseDuration(c.WriteTimeout, 10*time.Second)
}

func (c *ServerConfig) GetShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout, 5*time.Second)
}

func (c *WebSocketConfig) GetWriteTimeoutDuration() time.Duration {
	return parseDuration(c.WriteTimeout, 5*time.Second)
}

func (c *WebSocketConfig) GetPingIntervalDuration() time.Duration {
	return parseDuration(c.PingInterval, 30*time.Second)
}

// GetMaxCost returns the cache budget in bytes.
func (c *CacheConfig) GetMaxCost() (int64, error) {
	size, err := datasize.ParseString(c.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("invalid cache max_size %q: %w", c.MaxSize, err)
	}
	if size.Bytes() == 0 {
		return 0, fmt.Errorf("cache max_size must be positive")
	}
	return int64(size.Bytes()), nil
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, _ := time.ParseDuration(value)
	if d <= 0 {
		return fallback
	}
	return d
}

// Load reads config.yaml from the working directory, ./config or /etc/lens. Environment
// variables override file values, with dots replaced by underscores (SERVER_PORT).
func Load() (*Config, error) {
	return LoadFrom(".", "./config", "/etc/lens")
}

func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if _, err := cfg.Cache.GetMaxCost(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("data.load_fixture", true)
	v.SetDefault("data.otlp_traces", "")
	v.SetDefault("data.otlp_logs", "")
	v.SetDefault("cache.max_size", "64MB")
	v.SetDefault("cache.num_counters", 1_000_000)
	v.SetDefault("cache.buffer_items", 64)
	v.SetDefault("layout.timeline.width", 800)
	v.SetDefault("layout.timeline.row_height", 80)
	v.SetDefault("layout.timeline.bar_height", 50)
	v.SetDefault("layout.timeline.top_padding", 20)
	v.SetDefault("layout.flamegraph.width", 100)
	v.SetDefault("layout.flamegraph.row_height", 60)
	v.SetDefault("layout.flamegraph.bar_height", 50)
	v.SetDefault("layout.flowchart.width", 1200)
	v.SetDefault("layout.flowchart.height", 600)
	v.SetDefault("layout.flowchart.node_width", 180)
	v.SetDefault("layout.flowchart.node_height", 80)
	v.SetDefault("websocket.write_timeout", "5s")
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.send_buffer", 16)
}
