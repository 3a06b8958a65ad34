package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigBuilder_MergePriority verifies that earlier sources win for
// non-zero fields while zero fields are filled in from later sources
// (mergo semantics: merge does not overwrite already-set values).
func TestConfigBuilder_MergePriority(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Server: Server{HTTPAddress: "localhost:8080"},
		},
		&StructuredConfig{
			Server:  Server{HTTPAddress: "localhost:9999", RequestTimeout: 30 * time.Second},
			Storage: Storage{DB: DB{DSN: "postgres://localhost/marketsync"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress, "first source must win")
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout, "gaps filled from later sources")
	assert.Equal(t, "postgres://localhost/marketsync", cfg.Storage.DB.DSN)
}

// TestConfigBuilder_PropagatesError verifies that an error recorded by a
// source step fails the final build.
func TestConfigBuilder_PropagatesError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestConfigBuilder_ValidationRejectsNegativeLimits verifies the merged
// config is validated before being returned.
func TestConfigBuilder_ValidationRejectsNegativeLimits(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Server: Server{RateLimit: RateLimit{AuthLimit: -1}},
	})

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}
