package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)

	cfg, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, 8050, cfg.Server.Port)
	assert.Equal(t, ":8050", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "data.csv", cfg.Data.TimeSeries)
	assert.Empty(t, cfg.Data.Tips)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_SERVER_PORT", "9090")
	t.Setenv("DASHBOARD_DATA_FILE", "/srv/profit.csv")
	t.Setenv("DASHBOARD_LOGGING_FORMAT", "console")

	v, err := Load("")
	require.NoError(t, err)
	cfg, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/profit.csv", cfg.Data.TimeSeries)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 8123
data:
  file: sales.xlsx
  tips: tips.csv
logging:
  level: debug
`), 0o600))

	v, err := Load(path)
	require.NoError(t, err)
	cfg, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8123", cfg.Server.Addr())
	assert.Equal(t, "sales.xlsx", cfg.Data.TimeSeries)
	assert.Equal(t, "tips.csv", cfg.Data.Tips)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDecodeValidates(t *testing.T) {
	cases := map[string]func(v *viper.Viper){
		"port":     func(v *viper.Viper) { v.Set("server.port", 0) },
		"file":     func(v *viper.Viper) { v.Set("data.file", "") },
		"level":    func(v *viper.Viper) { v.Set("logging.level", "banana") },
		"format":   func(v *viper.Viper) { v.Set("logging.format", "xml") },
		"shutdown": func(v *viper.Viper) { v.Set("server.shutdown_timeout", "0s") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := Load("")
			require.NoError(t, err)
			mutate(v)
			_, err = Decode(v)
			assert.Error(t, err)
		})
	}
}
