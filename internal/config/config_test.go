package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		cfg, err := LoadConfig(".")
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)

		assert.True(t, cfg.Server.RateLimit.Enabled)
		assert.Equal(t, 10.0, cfg.Server.RateLimit.RPS)
		assert.Equal(t, 20, cfg.Server.RateLimit.Burst)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)

		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.Equal(t, "0 0 1 * *", cfg.Batch.InterestSchedule)
		assert.Equal(t, 5*time.Minute, cfg.Batch.InterestTimeout)

		assert.False(t, cfg.RabbitMQ.Enabled)
		assert.Equal(t, "localhost", cfg.RabbitMQ.Host)
		assert.Equal(t, 5672, cfg.RabbitMQ.Port)
		assert.Equal(t, "retail-bank", cfg.RabbitMQ.ExchangeName)
	})
}
