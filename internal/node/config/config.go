package config

import (
	"fmt"
	"log"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthanhphan/go-vanet-cluster/pkg/election"
	"github.com/anthanhphan/go-vanet-cluster/pkg/mcda"
	"github.com/anthanhphan/go-vanet-cluster/pkg/wire"
	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/spaolacci/murmur3"
)

const (
	TransportUDP    = "udp"
	TransportGossip = "gossip"
)

// Config holds clustering node configuration
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Transport  TransportConfig  `json:"transport" yaml:"transport"`
	Clustering ClusteringConfig `json:"clustering" yaml:"clustering"`
	Election   ElectionConfig   `json:"election" yaml:"election"`
	Redis      RedisConfig      `json:"redis" yaml:"redis"`
	Logger     logger.Config    `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	// NodeID is derived from Name when zero.
	NodeID   uint32 `json:"node_id" yaml:"node_id"`
	Name     string `json:"name" yaml:"name"`
	Hostname string `json:"hostname" yaml:"hostname"`
	Port     int    `json:"port" yaml:"port"`
}

type TransportConfig struct {
	Kind   string       `json:"kind" yaml:"kind"` // "udp" or "gossip"
	UDP    UDPConfig    `json:"udp" yaml:"udp"`
	Gossip GossipConfig `json:"gossip" yaml:"gossip"`
}

type UDPConfig struct {
	ListenAddr    string `json:"listen_addr" yaml:"listen_addr"`
	Port          int    `json:"port" yaml:"port"`
	Group         string `json:"group" yaml:"group"`
	Interface     string `json:"interface" yaml:"interface"`
	TTL           int    `json:"ttl" yaml:"ttl"`
	AdvertiseAddr string `json:"advertise_addr" yaml:"advertise_addr"`
}

type GossipConfig struct {
	Port  int      `json:"port" yaml:"port"`
	Seeds []string `json:"seeds" yaml:"seeds"`
}

type ClusteringConfig struct {
	DiscoveryIntervalMS int `json:"discovery_interval_ms" yaml:"discovery_interval_ms"`
	RTTThresholdMS      int `json:"rtt_threshold_ms" yaml:"rtt_threshold_ms"`
	ExpirationMS        int `json:"expiration_ms" yaml:"expiration_ms"`
	HeadGracePeriodMS   int `json:"head_grace_period_ms" yaml:"head_grace_period_ms"`
}

type ElectionConfig struct {
	Enabled             bool                    `json:"enabled" yaml:"enabled"`
	IntervalMS          int                     `json:"interval_ms" yaml:"interval_ms"`
	AdvertiseIntervalMS int                     `json:"advertise_interval_ms" yaml:"advertise_interval_ms"`
	Methods             []string                `json:"methods" yaml:"methods"`
	Weights             []float64               `json:"weights" yaml:"weights"`
	ScoreDir            string                  `json:"score_dir" yaml:"score_dir"`
	Profile             election.VehicleProfile `json:"profile" yaml:"profile"`
}

// RedisConfig enables the Redis score log and clock when Addr is set.
type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Hostname: "127.0.0.1",
			Port:     9090,
		},
		Transport: TransportConfig{
			Kind: TransportUDP,
			UDP: UDPConfig{
				Port:  9000,
				Group: "239.0.0.1",
				TTL:   1,
			},
			Gossip: GossipConfig{
				Port: 7946,
			},
		},
		Clustering: ClusteringConfig{
			DiscoveryIntervalMS: 1000,
			RTTThresholdMS:      10,
			ExpirationMS:        3000,
		},
		Election: ElectionConfig{
			Enabled:             true,
			IntervalMS:          5000,
			AdvertiseIntervalMS: 2000,
			ScoreDir:            "./scores",
		},
		Redis: RedisConfig{
			KeyPrefix: "vanet:scores",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// ResolveNodeID returns the configured ID, or a hash of the node name.
func (c *Config) ResolveNodeID() wire.NodeID {
	if c.Server.NodeID != 0 {
		return wire.NodeID(c.Server.NodeID)
	}
	return wire.NodeID(murmur3.Sum32([]byte(c.NodeName())))
}

// NodeName is the configured name, or hostname-port.
func (c *Config) NodeName() string {
	if c.Server.Name != "" {
		return c.Server.Name
	}
	host, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", host, c.Server.Port)
}

func (c ClusteringConfig) DiscoveryInterval() time.Duration { return ms(c.DiscoveryIntervalMS) }
func (c ClusteringConfig) RTTThreshold() time.Duration      { return ms(c.RTTThresholdMS) }
func (c ClusteringConfig) Expiration() time.Duration        { return ms(c.ExpirationMS) }
func (c ClusteringConfig) HeadGracePeriod() time.Duration   { return ms(c.HeadGracePeriodMS) }

func (c ElectionConfig) Interval() time.Duration          { return ms(c.IntervalMS) }
func (c ElectionConfig) AdvertiseInterval() time.Duration { return ms(c.AdvertiseIntervalMS) }

// ParsedMethods maps method names to mcda methods. Empty means all.
func (c ElectionConfig) ParsedMethods() ([]mcda.Method, error) {
	methods := make([]mcda.Method, 0, len(c.Methods))
	for _, name := range c.Methods {
		m, err := mcda.ParseMethod(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Validate rejects settings the node cannot run with.
func (c *Config) Validate() error {
	switch c.Transport.Kind {
	case TransportUDP, TransportGossip:
	default:
		return fmt.Errorf("unknown transport kind %q", c.Transport.Kind)
	}
	if c.Transport.Kind == TransportGossip {
		// Gossip unicasts are addressed by IP, so every node needs its own.
		host, err := netip.ParseAddr(c.Server.Hostname)
		if err != nil || host.IsUnspecified() {
			return fmt.Errorf("gossip transport needs a concrete per-node hostname IP, got %q", c.Server.Hostname)
		}
	}
	if c.Clustering.DiscoveryIntervalMS <= 0 || c.Clustering.ExpirationMS <= 0 || c.Clustering.RTTThresholdMS <= 0 {
		return fmt.Errorf("clustering intervals must be positive")
	}
	if c.Clustering.HeadGracePeriodMS < 0 {
		return fmt.Errorf("head grace period must not be negative")
	}
	if _, err := c.Election.ParsedMethods(); err != nil {
		return err
	}
	if n := len(c.Election.Weights); n != 0 && n != election.CriteriaCount {
		return fmt.Errorf("election weights: got %d, want %d", n, election.CriteriaCount)
	}
	return nil
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "node", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, cfg.Validate()
	}

	return parsedCfg, parsedCfg.Validate()
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
