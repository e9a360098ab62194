package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, &config{
		ServiceURL: defaultServiceURL,
		Output:     encodeColumn,
		Timeout:    30 * time.Second,
	}, cfg)
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "devctl")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devctl.yaml"), []byte(`
service_url: https://devices.example.com
output: json
timeout: 5s
insecure_skip_tls_verify: true
`), 0o600))

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, &config{
		ServiceURL:            "https://devices.example.com",
		Output:                encodeJsonPretty,
		Timeout:               5 * time.Second,
		InsecureSkipTLSVerify: true,
	}, cfg)

	t.Setenv("DEVCTL_OUTPUT", encodeNoHeader)
	t.Setenv("DEVCTL_TIMEOUT", "1m")
	cfg, err = loadConfig("")
	require.NoError(t, err)
	require.Equal(t, encodeNoHeader, cfg.Output)
	require.Equal(t, time.Minute, cfg.Timeout)
	require.Equal(t, "https://devices.example.com", cfg.ServiceURL)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "ctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_url: http://10.0.0.1:8080\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.1:8080", cfg.ServiceURL)
	require.Equal(t, encodeColumn, cfg.Output)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "load config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("service_url: [\n"), 0o600))
	_, err = loadConfig(bad)
	require.ErrorContains(t, err, "load config")
}
