// Package config loads and saves efxvdb.toml.
//
// Load reads the file with viper, so every key can be overridden from the
// environment with an EFXVDB_ prefix and dots replaced by underscores:
//
//	EFXVDB_CACHE_BACKEND=redis EFXVDB_EXPORT_SEED=42 efxvdb export top.json
//
// A missing file is not an error; the defaults apply.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/matzehuels/efxvdb/pkg/cache"
	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/errors"
	vdbio "github.com/matzehuels/efxvdb/pkg/io"
	"github.com/matzehuels/efxvdb/pkg/vdb"
)

// FileName is the config file looked up in the working directory and in
// the user config directory.
const FileName = "efxvdb.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EFXVDB"

// Config is the effective configuration.
type Config struct {
	Library   string       `toml:"library" mapstructure:"library"`
	ScopeType string       `toml:"scope_type" mapstructure:"scope_type"`
	Cipher    CipherConfig `toml:"cipher" mapstructure:"cipher"`
	Export    ExportConfig `toml:"export" mapstructure:"export"`
	Cache     CacheConfig  `toml:"cache" mapstructure:"cache"`

	// Path is the file the values were read from, empty for defaults.
	Path string `toml:"-" mapstructure:"-"`
}

// CipherConfig selects how duplicate cipher entries resolve.
type CipherConfig struct {
	Duplicates string `toml:"duplicates" mapstructure:"duplicates"`
}

// ExportConfig holds export defaults. Seed 0 means unseeded file ids.
type ExportConfig struct {
	Seed          uint64 `toml:"seed" mapstructure:"seed"`
	MultBypass    bool   `toml:"mult_bypass" mapstructure:"mult_bypass"`
	StrictLengths bool   `toml:"strict_lengths" mapstructure:"strict_lengths"`
	Jobs          int    `toml:"jobs" mapstructure:"jobs"`
}

// CacheConfig configures the container cache.
type CacheConfig struct {
	Backend       string `toml:"backend" mapstructure:"backend"`
	Dir           string `toml:"dir,omitempty" mapstructure:"dir"`
	TTL           string `toml:"ttl" mapstructure:"ttl"`
	Namespace     string `toml:"namespace,omitempty" mapstructure:"namespace"`
	RedisAddr     string `toml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string `toml:"redis_password,omitempty" mapstructure:"redis_password"`
	RedisDB       int    `toml:"redis_db" mapstructure:"redis_db"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Library:   vdb.DefaultLibrary,
		ScopeType: vdb.DefaultScopeType,
		Cipher:    CipherConfig{Duplicates: cipher.FirstWins.String()},
		Export:    ExportConfig{Jobs: 4},
		Cache: CacheConfig{
			Backend:   cache.BackendFile,
			TTL:       cache.TTLContainer.String(),
			RedisAddr: "localhost:6379",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("library", d.Library)
	v.SetDefault("scope_type", d.ScopeType)
	v.SetDefault("cipher.duplicates", d.Cipher.Duplicates)
	v.SetDefault("export.seed", d.Export.Seed)
	v.SetDefault("export.mult_bypass", d.Export.MultBypass)
	v.SetDefault("export.strict_lengths", d.Export.StrictLengths)
	v.SetDefault("export.jobs", d.Export.Jobs)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.namespace", d.Cache.Namespace)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", d.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", d.Cache.RedisDB)
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "efxvdb", FileName)
}

// Load reads path, or when path is empty, efxvdb.toml from the working
// directory and then the user config directory. An explicit path that does
// not exist is FILE_NOT_FOUND.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg.Path = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enumerated or parsed value.
func (c *Config) Validate() error {
	if c.Library == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "library must not be empty")
	}
	if c.ScopeType == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "scope_type must not be empty")
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.Export.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export.jobs must not be negative, got %d", c.Export.Jobs)
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q is not one of none, file, redis", c.Cache.Backend)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	return nil
}

// Policy parses cipher.duplicates.
func (c *Config) Policy() (cipher.DuplicatePolicy, error) {
	return cipher.ParsePolicy(c.Cipher.Duplicates)
}

// TTL parses cache.ttl. An empty value is cache.TTLContainer.
func (c *Config) TTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.TTLContainer, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl")
	}
	if ttl <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be positive, got %s", ttl)
	}
	return ttl, nil
}

// CacheOptions converts the cache section for cache.Open. The namespace
// is applied by Keyer, not here.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   "efxvdb:",
		},
	}
}

// Keyer returns the cache keyer, scoped by cache.namespace when set.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Namespace+":")
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Save writes c to path, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(path))
	}
	return vdbio.WriteFileAtomic(path, data, 0o644)
}
