package phclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/robocorp/robocorp-planhat/internal/constants"
	"github.com/robocorp/robocorp-planhat/pkg/planhat"
)

// FileConfig is the on-disk client configuration. Every field can also
// be supplied through a PLANHAT_* environment variable, which wins over
// the file.
type FileConfig struct {
	APIEndpoint       string `mapstructure:"api_endpoint"       yaml:"api_endpoint,omitempty"`
	AnalyticsEndpoint string `mapstructure:"analytics_endpoint" yaml:"analytics_endpoint,omitempty"`
	APIKey            string `mapstructure:"api_key"            yaml:"api_key,omitempty"`
	TenantUUID        string `mapstructure:"tenant_uuid"        yaml:"tenant_uuid,omitempty"`
	UserAgent         string `mapstructure:"user_agent"         yaml:"user_agent,omitempty"`
	Debug             bool   `mapstructure:"debug"              yaml:"debug,omitempty"`
	RetryMax          int    `mapstructure:"retry_max"          yaml:"retry_max,omitempty"`
	RetryWaitMin      string `mapstructure:"retry_wait_min"     yaml:"retry_wait_min,omitempty"`
	RetryWaitMax      string `mapstructure:"retry_wait_max"     yaml:"retry_wait_max,omitempty"`
	DisableCache      bool   `mapstructure:"disable_cache"      yaml:"disable_cache,omitempty"`
}

// LoadConfig reads configuration from the given file, or from
// planhat.yaml in the working directory and ~/.planhat when path is
// empty. Environment variables with the PLANHAT_ prefix override file
// values, so PLANHAT_API_KEY alone is a complete configuration.
func LoadConfig(path string) (*planhat.Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("planhat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".planhat"))
		}
	}

	v.SetEnvPrefix("PLANHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindEnvKeys(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var fileConfig FileConfig

	err = v.Unmarshal(&fileConfig)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return fileConfig.toConfig()
}

// bindEnvKeys registers every key so AutomaticEnv resolves it without the
// key appearing in a config file first.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"api_endpoint", "analytics_endpoint", "api_key", "tenant_uuid",
		"user_agent", "debug", "retry_max", "retry_wait_min",
		"retry_wait_max", "disable_cache",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func (c *FileConfig) toConfig() (*planhat.Config, error) {
	config := &planhat.Config{
		APIEndpoint:       c.APIEndpoint,
		AnalyticsEndpoint: c.AnalyticsEndpoint,
		APIKey:            c.APIKey,
		TenantUUID:        c.TenantUUID,
		UserAgent:         c.UserAgent,
		Debug:             c.Debug,
		RetryMax:          c.RetryMax,
		DisableCache:      c.DisableCache,
	}

	var err error

	config.RetryWaitMin, err = parseWait(c.RetryWaitMin)
	if err != nil {
		return nil, fmt.Errorf("parsing retry_wait_min: %w", err)
	}

	config.RetryWaitMax, err = parseWait(c.RetryWaitMax)
	if err != nil {
		return nil, fmt.Errorf("parsing retry_wait_max: %w", err)
	}

	return config, nil
}

func parseWait(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	return time.ParseDuration(value)
}

// SaveConfig writes configuration to a YAML file, creating the parent
// directory when needed. The file is written owner-only, as it holds the
// API key.
func SaveConfig(path string, config *FileConfig) error {
	if config == nil {
		return planhat.ErrConfigRequired
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
