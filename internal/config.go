package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,default=5000"`
	GRPCHealthPort       int           `env:"GRPC_HEALTH_PORT,default=5001"`
	DebugPort            int           `env:"DEBUG_PORT,default=8081"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH"`
	ExportFilepath       string        `env:"EXPORT_FILEPATH,default=blockchain_log.txt"`
	GraphFilepath        string        `env:"GRAPH_FILEPATH,default=blockchain_graph.dot"`
	QKDBits              int           `env:"QKD_BITS,default=16"`
	MaxQKDBits           int           `env:"MAX_QKD_BITS,default=4096"`
	QKDKeyLength         int           `env:"QKD_KEY_LENGTH,default=16"`
	QKDSeed              string        `env:"QKD_SEED"`
	BufferSize           int           `env:"BUFFER_SIZE,default=100"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=16"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=10"`
	MaxMessageLength     int           `env:"MAX_MESSAGE_LENGTH,default=1000"`
	SearchLimit          int           `env:"SEARCH_LIMIT,default=50"`
	CORSAllowedOrigins   string        `env:"CORS_ALLOWED_ORIGINS,default=*"`
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// Seed is the fixed seed of the random source, nil when QKD_SEED is unset.
func (c Config) Seed() (*uint64, error) {
	if c.QKDSeed == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(c.QKDSeed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("QKD_SEED must be an unsigned integer: %w", err)
	}
	return &seed, nil
}

func (c Config) Validate() error {
	if c.QKDKeyLength < 0 {
		return fmt.Errorf("QKD_KEY_LENGTH must not be negative, got %d", c.QKDKeyLength)
	}
	if c.QKDBits <= 0 || c.QKDBits > c.MaxQKDBits {
		return fmt.Errorf("QKD_BITS must be between 1 and MAX_QKD_BITS (%d), got %d", c.MaxQKDBits, c.QKDBits)
	}
	if c.BufferSize <= 0 || c.ConnectionBufferSize <= 0 {
		return fmt.Errorf("BUFFER_SIZE and CONNECTION_BUFFER_SIZE must be positive")
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", c.MaxMessageLength)
	}
	_, err := c.Seed()
	return err
}
