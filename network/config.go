package network

import "time"

// Config holds snapshot hub configuration
type Config struct {
	// Address to bind, empty disables the hub
	Address string

	// Connection limits
	MaxClients int

	// Timing
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration // Must be shorter than PongTimeout
	BroadcastPeriod time.Duration // Minimum gap between snapshot frames

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	MaxMessageSize  int64
}

// DefaultConfig returns defaults for a local spectator hub
func DefaultConfig() *Config {
	return &Config{
		Address:         ":7777",
		MaxClients:      16,
		WriteTimeout:    5 * time.Second,
		PongTimeout:     60 * time.Second,
		PingInterval:    54 * time.Second,
		BroadcastPeriod: 100 * time.Millisecond,
		ReadBufferSize:  1024,
		WriteBufferSize: 16 * 1024,
		SendQueueSize:   64,
		MaxMessageSize:  512,
	}
}

// DebugConfig returns defaults bound to addr
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}
