// Package config loads proxy runtime configuration from YAML.
//
// A file only needs to name the values it changes; everything else comes
// from the embedded defaults:
//
//	replyTo: "mqtt://broker/replies/proxy-1"
//	logLevel: debug
//	messagingQos:
//	  ttl: 30s
//	  customHeaders:
//	    tenant: home
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/mash-proxy/pkg/qos"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Configuration errors.
var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Config is the proxy runtime configuration.
type Config struct {
	// ParticipantID is the local participant id used as request origin.
	ParticipantID string `yaml:"participantId"`

	// ReplyTo is the serialized reply address of this process. Empty means
	// the address is configured later at runtime.
	ReplyTo string `yaml:"replyTo"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	// ProtocolLogPath enables the CBOR protocol event log when set.
	ProtocolLogPath string `yaml:"protocolLogPath"`

	// MetricsNamespace prefixes all prometheus metrics.
	MetricsNamespace string `yaml:"metricsNamespace"`

	// MessagingQos is the process-wide QoS layer applied below owner,
	// attribute and call QoS.
	MessagingQos qos.MessagingQos `yaml:"messagingQos"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return c
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes data on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.MessagingQos.Validate(); err != nil {
		return fmt.Errorf("%w: messagingQos: %w", ErrInvalidConfig, err)
	}
	if c.MetricsNamespace == "" {
		return fmt.Errorf("%w: empty metrics namespace", ErrInvalidConfig)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return l, nil
}
