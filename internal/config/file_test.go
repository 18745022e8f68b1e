package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Run("full config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "netbind.yml")
		yamlContent := `log_level: debug
colors:
  addr: ":5050"
  seed_file: ./colors.json
  events:
    enabled: true
    topic: colors.changes
    partitions: 3
    replication_factor: 2
    cluster:
      brokers:
        - localhost:9092
      client_id: netbind
      sasl:
        mechanism: SCRAM-SHA-256
        username: admin
        password: secret
view:
  addr: "127.0.0.1:9000"
  view_file: ./main.html
  cpu_interval: 250ms
`
		require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

		cfg, err := ReadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, ":5050", cfg.Colors.Addr)
		assert.Equal(t, "./colors.json", cfg.Colors.SeedFile)
		assert.True(t, cfg.Colors.Events.Enabled)
		assert.Equal(t, "colors.changes", cfg.Colors.Events.Topic)
		assert.EqualValues(t, 3, cfg.Colors.Events.Partitions)
		assert.EqualValues(t, 2, cfg.Colors.Events.ReplicationFactor)
		assert.Equal(t, []string{"localhost:9092"}, cfg.Colors.Events.Cluster.Brokers)
		require.NotNil(t, cfg.Colors.Events.Cluster.SASL)
		assert.Equal(t, "admin", cfg.Colors.Events.Cluster.SASL.Username)
		assert.Equal(t, "127.0.0.1:9000", cfg.View.Addr)
		assert.Equal(t, 250*time.Millisecond, cfg.View.CPUInterval)
		require.NoError(t, cfg.Validate())
	})

	t.Run("stub file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "netbind.yml")
		require.NoError(t, os.WriteFile(path, []byte("# netbind configuration\n"), 0644))

		cfg, err := ReadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "netbind.yml")
		require.NoError(t, os.WriteFile(path, []byte("view:\n  addr: \":9999\"\n"), 0644))

		cfg, err := ReadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.View.Addr)
		assert.Equal(t, DefaultCPUInterval, cfg.View.CPUInterval)
		assert.Equal(t, DefaultColorsAddr, cfg.Colors.Addr)
		assert.Equal(t, DefaultEventsTopic, cfg.Colors.Events.Topic)
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "netbind.yml")
		require.NoError(t, os.WriteFile(path, []byte("view: [unclosed"), 0644))
		_, err := ReadConfig(path)
		require.Error(t, err)
	})
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netbind.yml")
	cfg := Defaults()
	cfg.LogLevel = "warn"
	cfg.View.CPUInterval = 2 * time.Second
	cfg.Colors.Events.Cluster.Brokers = []string{"kafka:9092"}

	require.NoError(t, WriteConfig(path, cfg))
	got, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	require.Error(t, WriteConfig(filepath.Join(t.TempDir(), "no", "such", "dir", "x.yml"), cfg))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NETBIND_LOG_LEVEL", "error")
	t.Setenv("NETBIND_COLORS_ADDR", ":6000")
	t.Setenv("NETBIND_VIEW_ADDR", ":7000")
	t.Setenv("NETBIND_CPU_INTERVAL", "3s")

	cfg := Defaults()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, ":6000", cfg.Colors.Addr)
	assert.Equal(t, ":7000", cfg.View.Addr)
	assert.Equal(t, 3*time.Second, cfg.View.CPUInterval)

	t.Setenv("NETBIND_CPU_INTERVAL", "soon")
	require.Error(t, ApplyEnv(&cfg))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Defaults().Validate())

	cfg := Defaults()
	cfg.View.CPUInterval = 0
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Colors.Events.Enabled = true
	require.Error(t, cfg.Validate(), "brokers required")

	cfg.Colors.Events.Cluster.Brokers = []string{"localhost:9092"}
	cfg.Colors.Events.Topic = ""
	require.Error(t, cfg.Validate(), "topic required")
}
