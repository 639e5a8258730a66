package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pipeline/core/config"
)

type defaultsConfig struct {
	Addr    string        `env:"CONFIG_TEST_ADDR" envDefault:"localhost:8080"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"15s"`
}

type envConfig struct {
	Name  string `env:"CONFIG_TEST_NAME"`
	Limit int    `env:"CONFIG_TEST_LIMIT" envDefault:"10"`
}

type cachedConfig struct {
	Value string `env:"CONFIG_TEST_CACHED"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED_SECRET,required"`
}

type invalidConfig struct {
	Port int `env:"CONFIG_TEST_INVALID_PORT"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "localhost:8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_TEST_NAME", "pipeline")
	t.Setenv("CONFIG_TEST_LIMIT", "42")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "pipeline", cfg.Name)
	assert.Equal(t, 42, cfg.Limit)
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("CONFIG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CONFIG_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoadErrors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[envConfig](nil), config.ErrNilConfig)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParseConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_INVALID_PORT", "not-a-number")

		var cfg invalidConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParseConfig)
	})
}

func TestMustLoadPanics(t *testing.T) {
	type mustConfig struct {
		Key string `env:"CONFIG_TEST_MUST_KEY,required"`
	}

	assert.Panics(t, func() {
		var cfg mustConfig
		config.MustLoad(&cfg)
	})
}
