package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/shaclmaker/shaclmaker/internal/converter/shapes"
	"github.com/shaclmaker/shaclmaker/internal/converter/vocab"
)

// Config represents the shaclmaker configuration
type Config struct {
	Namespaces NamespacesConfig `mapstructure:"namespaces"`
	Output     OutputConfig     `mapstructure:"output"`
}

// NamespacesConfig holds the IRI bases that shapes are minted under
type NamespacesConfig struct {
	Data   string `mapstructure:"data"`
	Schema string `mapstructure:"schema"`
}

// OutputConfig controls where documents are written
type OutputConfig struct {
	Dir              string `mapstructure:"dir"`
	KeepIntermediate bool   `mapstructure:"keep_intermediate"`
}

// Load loads the configuration from shaclmaker.yml or shaclmaker.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("namespaces.data", vocab.DataNamespace)
	v.SetDefault("namespaces.schema", vocab.SchemaNamespace)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.keep_intermediate", false)

	// Set config name and paths
	v.SetConfigName("shaclmaker")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if err := shapes.ValidateNamespace(cfg.Namespaces.Data); err != nil {
		return fmt.Errorf("namespaces.data: %w", err)
	}
	if err := shapes.ValidateNamespace(cfg.Namespaces.Schema); err != nil {
		return fmt.Errorf("namespaces.schema: %w", err)
	}
	return nil
}
