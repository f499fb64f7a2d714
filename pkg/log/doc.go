// Package log provides structured message capture for the messaging layer.
//
// This package defines the Logger interface and Event types for recording
// every message the local participant sends or receives. It is separate from
// operational logging (slog): message capture provides a machine-readable
// trace for debugging routing and reply correlation.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	sender := messaging.NewSender(transport, resolver,
//	    messaging.WithProtocolLogger(log.NewSlogAdapter(slog.Default())))
//
//	// For production: write to binary file
//	fileLogger, _ := log.NewFileLogger("/var/log/proxy/messages.mlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fileLogger)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys. Reader
// iterates them with optional filtering.
package log
