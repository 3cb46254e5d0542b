package configs

import "time"

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Update  UpdateConfig  `mapstructure:"update" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	RequestTimeout    int `mapstructure:"request_timeout" validate:"min=0"`              // seconds, 0 disables
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// StorageConfig selects the window store backend. Only the section of the selected
// backend is read, and only that section must be complete (see missingBackendField).
type StorageConfig struct {
	Backend string              `mapstructure:"backend" validate:"required,oneof=memory redis sqlite file"`
	Memory  MemoryStorageConfig `mapstructure:"memory"`
	Redis   RedisStorageConfig  `mapstructure:"redis"`
	SQLite  SQLiteStorageConfig `mapstructure:"sqlite"`
	File    FileStorageConfig   `mapstructure:"file"`
}

// missingBackendField returns the config path of the first required field the selected
// backend lacks, or "" when it is complete.
func (c StorageConfig) missingBackendField() string {
	switch {
	case c.Backend == "redis" && c.Redis.Addr == "":
		return "storage.redis.addr"
	case c.Backend == "sqlite" && c.SQLite.Path == "":
		return "storage.sqlite.path"
	case c.Backend == "file" && c.File.RootDir == "":
		return "storage.file.root_dir"
	}
	return ""
}

type MemoryStorageConfig struct {
	Shards int `mapstructure:"shards" validate:"min=0"`
}

type RedisStorageConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db" validate:"min=0"`
	KeyPrefix  string `mapstructure:"key_prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"min=0"` // 0 keeps windows forever
	PoolSize   int    `mapstructure:"pool_size" validate:"min=0"`
}

// TTL returns the key expiry applied on every write.
func (c RedisStorageConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type SQLiteStorageConfig struct {
	Path string `mapstructure:"path"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir"`
}

// UpdateConfig bounds the optimistic update loop and the per-request label fan-out.
type UpdateConfig struct {
	MaxAttempts       int `mapstructure:"max_attempts" validate:"required,min=1"`
	BaseBackoffMs     int `mapstructure:"base_backoff_ms" validate:"min=0"`
	MaxBackoffMs      int `mapstructure:"max_backoff_ms" validate:"min=0"`
	MaxParallelLabels int `mapstructure:"max_parallel_labels" validate:"required,min=1"`
}

func (c UpdateConfig) BaseBackoff() time.Duration {
	return time.Duration(c.BaseBackoffMs) * time.Millisecond
}

func (c UpdateConfig) MaxBackoff() time.Duration {
	return time.Duration(c.MaxBackoffMs) * time.Millisecond
}
