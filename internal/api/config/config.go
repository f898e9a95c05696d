package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds gateway configuration
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	App      AppConfig      `json:"app" yaml:"app"`
	Cluster  ClusterConfig  `json:"cluster" yaml:"cluster"`
	Redis    RedisConfig    `json:"redis" yaml:"redis"`
	ScoreLog ScoreLogConfig `json:"score_log" yaml:"score_log"`
	Logger   logger.Config  `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	BodyLimit int    `json:"body_limit" yaml:"body_limit"`
}

type AppConfig struct {
	// WorkerID feeds the round ID generator; gateways sharing Redis need
	// distinct IDs.
	WorkerID      int64 `json:"worker_id" yaml:"worker_id"`
	RankTimeoutMS int   `json:"rank_timeout_ms" yaml:"rank_timeout_ms"`
}

type ClusterConfig struct {
	Nodes          []string `json:"nodes" yaml:"nodes"`
	PollIntervalMS int      `json:"poll_interval_ms" yaml:"poll_interval_ms"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type ScoreLogConfig struct {
	// Backend is "redis" or "csv".
	Backend          string `json:"backend" yaml:"backend"`
	Dir              string `json:"dir" yaml:"dir"`
	KeyPrefix        string `json:"key_prefix" yaml:"key_prefix"`
	Workers          int    `json:"workers" yaml:"workers"`
	QueueSize        int    `json:"queue_size" yaml:"queue_size"`
	WriteTimeoutMS   int    `json:"write_timeout_ms" yaml:"write_timeout_ms"`
	FailureThreshold int    `json:"failure_threshold" yaml:"failure_threshold"`
	OpenTimeoutMS    int    `json:"open_timeout_ms" yaml:"open_timeout_ms"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8090",
			BodyLimit: 1 << 20,
		},
		App: AppConfig{
			WorkerID:      1,
			RankTimeoutMS: 5000,
		},
		Cluster: ClusterConfig{
			Nodes:          []string{"localhost:9090", "localhost:9091", "localhost:9092"},
			PollIntervalMS: 2000,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		ScoreLog: ScoreLogConfig{
			Backend:          "redis",
			Dir:              "./scores",
			KeyPrefix:        "vanet:scores",
			Workers:          2,
			QueueSize:        256,
			WriteTimeoutMS:   2000,
			FailureThreshold: 5,
			OpenTimeoutMS:    10000,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

func (c AppConfig) RankTimeout() time.Duration {
	return time.Duration(c.RankTimeoutMS) * time.Millisecond
}

func (c ClusterConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "api", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
