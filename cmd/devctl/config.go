package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultServiceURL = "http://localhost:8080"

type config struct {
	ServiceURL            string        `mapstructure:"service_url"`
	Output                string        `mapstructure:"output"`
	Timeout               time.Duration `mapstructure:"timeout"`
	InsecureSkipTLSVerify bool          `mapstructure:"insecure_skip_tls_verify"`
}

// loadConfig reads path, or devctl.yaml from the user config directory when
// path is empty.  DEVCTL_* environment variables override the file.
func loadConfig(path string) (*config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("devctl")
		v.AddConfigPath("$HOME/.config/devctl")
	}
	v.SetEnvPrefix("devctl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// only a missing default config file is fine
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_url", defaultServiceURL)
	v.SetDefault("output", encodeColumn)
	v.SetDefault("timeout", "30s")
	v.SetDefault("insecure_skip_tls_verify", false)
}
