package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"pkg.frost.gg/frostline/cache"
	"pkg.frost.gg/frostline/internal/config/hook"
	"pkg.frost.gg/frostline/model"
)

type Config struct {
	Discord struct {
		Auth   string
		Guilds []model.Snowflake
	}

	// Cache holds per-partition LRU capacities; zero means unbounded.
	Cache struct {
		Messages int
		Members  int
	}

	Logging struct {
		Level zapcore.Level
	}

	Api struct {
		Port uint16
	}
}

func Read() (*Config, error) {
	v := viper.New()
	configureEnv(v)
	configureLocation(v)
	return readUnmarshalConfig(v)
}

func configureEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix("conf")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func configureLocation(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
}

func readUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	c := &Config{}
	if err := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		hook.Snowflake(), hook.Level(),
	))); err != nil {
		return nil, err
	}
	return c, nil
}

// CacheBuilder translates the configured capacities into storage strategy
// bindings for the entity store.
func (c *Config) CacheBuilder() *cache.Builder {
	b := cache.NewBuilder()
	if c.Cache.Messages > 0 {
		b.WithStrategy(cache.Messages, cache.LRU(c.Cache.Messages))
	}
	if c.Cache.Members > 0 {
		b.WithStrategy(cache.Members, cache.LRU(c.Cache.Members))
	}
	return b
}
