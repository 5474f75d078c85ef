package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("QKD_SEED", "42")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, http://example.org,")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)

	req.Equal("INFO", config.LogLevel)
	req.Equal(5000, config.Port)
	req.Equal(16, config.QKDBits)
	req.Equal(4096, config.MaxQKDBits)
	req.Equal(16, config.QKDKeyLength)
	req.Equal(2*time.Second, config.SinkTimeout)
	req.Equal(200*time.Millisecond, config.RestartInterval)
	req.Equal(5*time.Second, config.MetricInterval)
	req.Equal(10, config.LowCapacityThreshold)
	seed, err := config.Seed()
	req.NoError(err)
	req.NotNil(seed)
	req.Equal(uint64(42), *seed)
	req.Empty(config.BlugeFilepath)
	req.Equal([]string{"http://localhost:3000", "http://example.org"}, config.AllowedOrigins())
	req.NoError(config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	req := require.New(t)
	valid := Config{QKDBits: 16, MaxQKDBits: 64, QKDKeyLength: 16, BufferSize: 1, ConnectionBufferSize: 1, MaxMessageLength: 10}
	req.NoError(valid.Validate())

	invalid := valid
	invalid.QKDKeyLength = -1
	req.Error(invalid.Validate())

	// Given a default agreement larger than the rekey cap
	invalid = valid
	invalid.QKDBits = 128
	req.Error(invalid.Validate())

	invalid = valid
	invalid.BufferSize = 0
	req.Error(invalid.Validate())

	invalid = valid
	invalid.MaxMessageLength = 0
	req.Error(invalid.Validate())

	invalid = valid
	invalid.QKDSeed = "-3"
	req.Error(invalid.Validate())

	// Given no seed, the process-wide generator is used
	seed, err := valid.Seed()
	req.NoError(err)
	req.Nil(seed)
}
