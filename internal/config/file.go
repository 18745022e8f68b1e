package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultColorsAddr  = ":5000"
	DefaultViewAddr    = ":8080"
	DefaultCPUInterval = time.Second
	DefaultEventsTopic = "netbind.colors"
)

// FileConfig is the content of netbind.yml.
type FileConfig struct {
	LogLevel string       `yaml:"log_level,omitempty"`
	Colors   ColorsConfig `yaml:"colors"`
	View     ViewConfig   `yaml:"view"`
}

type ColorsConfig struct {
	Addr     string       `yaml:"addr,omitempty"`
	SeedFile string       `yaml:"seed_file,omitempty"`
	Events   EventsConfig `yaml:"events,omitempty"`
}

// EventsConfig configures the Kafka color change feed.
type EventsConfig struct {
	Enabled           bool          `yaml:"enabled,omitempty"`
	Topic             string        `yaml:"topic,omitempty"`
	Partitions        int32         `yaml:"partitions,omitempty"`
	ReplicationFactor int16         `yaml:"replication_factor,omitempty"`
	Cluster           ClusterConfig `yaml:"cluster,omitempty"`
}

type ViewConfig struct {
	Addr        string        `yaml:"addr,omitempty"`
	ViewFile    string        `yaml:"view_file,omitempty"`
	CPUInterval time.Duration `yaml:"cpu_interval,omitempty"`
}

// Defaults returns the configuration used for anything the file leaves out.
func Defaults() FileConfig {
	return FileConfig{
		LogLevel: "info",
		Colors: ColorsConfig{
			Addr: DefaultColorsAddr,
			Events: EventsConfig{
				Topic:             DefaultEventsTopic,
				Partitions:        1,
				ReplicationFactor: 1,
			},
		},
		View: ViewConfig{
			Addr:        DefaultViewAddr,
			CPUInterval: DefaultCPUInterval,
		},
	}
}

// ReadConfig reads path over Defaults.
func ReadConfig(path string) (FileConfig, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func WriteConfig(path string, cfg FileConfig) error {
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// ApplyEnv overrides cfg with the NETBIND_* environment variables.
func ApplyEnv(cfg *FileConfig) error {
	if v := os.Getenv("NETBIND_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NETBIND_COLORS_ADDR"); v != "" {
		cfg.Colors.Addr = v
	}
	if v := os.Getenv("NETBIND_VIEW_ADDR"); v != "" {
		cfg.View.Addr = v
	}
	if v := os.Getenv("NETBIND_CPU_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NETBIND_CPU_INTERVAL: %w", err)
		}
		cfg.View.CPUInterval = d
	}
	return nil
}

// Validate reports settings that cannot work.
func (c FileConfig) Validate() error {
	if c.View.CPUInterval <= 0 {
		return fmt.Errorf("view.cpu_interval must be positive, got %s", c.View.CPUInterval)
	}
	ev := c.Colors.Events
	if ev.Enabled {
		if len(ev.Cluster.Brokers) == 0 {
			return fmt.Errorf("colors.events.cluster.brokers is required when events are enabled")
		}
		if ev.Topic == "" {
			return fmt.Errorf("colors.events.topic is required when events are enabled")
		}
	}
	return nil
}
