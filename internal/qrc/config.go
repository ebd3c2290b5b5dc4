package qrc

import (
	"time"

	"github.com/avtools/qrcctl/internal/protocol/frame"
)

// DefaultPort is the QRC control port on a core.
const DefaultPort = 1710

// DefaultIdleTicks is the keepalive countdown: with the default one-second
// tick, a NoOp goes out after 29 idle ticks, inside the core's 60s idle
// disconnect window.
const DefaultIdleTicks = 29

// Config defines connection and keepalive timing for a Core client.
type Config struct {
	// DialTimeout bounds the TCP connect.
	DialTimeout time.Duration
	// PollInterval is the read deadline used by the I/O loop to alternate
	// between reading and one unit of outbound work.
	PollInterval time.Duration
	// WriteTimeout bounds a single outbound frame write.
	WriteTimeout time.Duration
	// TickInterval is the heartbeat monitor tick.
	TickInterval time.Duration
	// IdleTicks is the countdown reset value; traffic resets it, and a NoOp
	// is requested when it reaches zero.
	IdleTicks int
	// SendQueueSize is the outbound request queue capacity.
	SendQueueSize int
	// ReadBufferBytes is the per-read chunk size.
	ReadBufferBytes int
	// MaxFrameBytes bounds the frame accumulator.
	MaxFrameBytes int
}

func DefaultConfig() Config {
	return Config{
		DialTimeout:     5 * time.Second,
		PollInterval:    50 * time.Millisecond,
		WriteTimeout:    5 * time.Second,
		TickInterval:    time.Second,
		IdleTicks:       DefaultIdleTicks,
		SendQueueSize:   16,
		ReadBufferBytes: 4096,
		MaxFrameBytes:   frame.DefaultMaxFrameBytes,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.DialTimeout <= 0 {
		c.DialTimeout = def.DialTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.IdleTicks <= 0 {
		c.IdleTicks = def.IdleTicks
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = def.SendQueueSize
	}
	if c.ReadBufferBytes <= 0 {
		c.ReadBufferBytes = def.ReadBufferBytes
	}
	if c.MaxFrameBytes <= 0 {
		c.MaxFrameBytes = def.MaxFrameBytes
	}
	return c
}
