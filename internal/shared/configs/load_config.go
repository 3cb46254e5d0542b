package configs

import (
	"fmt"
	"strings"

	"dynamic-routing/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SR_STORAGE_BACKEND=redis.
const EnvPrefix = "SR"

// LoadConfig reads configuration from file, applies environment overrides and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	// SR_STORAGE_REDIS_ADDR -> storage.redis.addr
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.NewWithTagNames("mapstructure")
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %s", validators.Describe(err))
	}
	if field := cfg.Storage.missingBackendField(); field != "" {
		return nil, fmt.Errorf("config validation failed: %s (required for backend %s)", field, cfg.Storage.Backend)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.request_timeout", 5)
	v.SetDefault("log.level", "info")

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.memory.shards", 64)
	v.SetDefault("storage.redis.addr", "")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key_prefix", "success-rate:window:")
	v.SetDefault("storage.redis.ttl_seconds", 0)
	v.SetDefault("storage.redis.pool_size", 0)
	v.SetDefault("storage.sqlite.path", "")
	v.SetDefault("storage.file.root_dir", "")

	v.SetDefault("update.max_attempts", 5)
	v.SetDefault("update.base_backoff_ms", 5)
	v.SetDefault("update.max_backoff_ms", 250)
	v.SetDefault("update.max_parallel_labels", 16)
}
