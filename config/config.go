// Package config carries the buffer geometry keys of the proxy
// configuration file. Geometry is read once at process start and fed to
// mbuf.NewPool; nothing here is tunable per connection or per buffer.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/github101/twemproxy/mbuf"
)

// Config mirrors the mbuf section of the proxy's YAML configuration.
// Zero values mean the stock geometry, so an empty file is a valid one.
type Config struct {
	// MbufSize is the total chunk size S in bytes.
	MbufSize int `json:"mbuf_size"`
	// MbufHeaderSize is the bookkeeping share H of each chunk. There is no
	// reason to change it outside tests.
	MbufHeaderSize int `json:"mbuf_header_size"`
}

// Default returns the stock geometry.
func Default() Config {
	return Config{
		MbufSize:       mbuf.DefaultChunkSize,
		MbufHeaderSize: mbuf.DefaultHeaderSize,
	}
}

// Load reads path as YAML (or JSON, which is valid YAML), fills missing
// keys with defaults and validates the result. Unknown keys are rejected
// rather than ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Pool converts to the pool geometry.
func (c Config) Pool() mbuf.Config {
	return mbuf.Config{
		ChunkSize:  c.MbufSize,
		HeaderSize: c.MbufHeaderSize,
	}
}

// Validate applies the startup bounds to the geometry.
func (c Config) Validate() error {
	return mbuf.VerifyConfig(c.Pool())
}
