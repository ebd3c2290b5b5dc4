package qrc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/avtools/qrcctl/internal/observability"
	"github.com/avtools/qrcctl/internal/protocol"
)

// inbound is one delivery from the I/O loop to the blocked caller: either a
// parsed response envelope or a transport/protocol failure.
type inbound struct {
	resp protocol.Response
	err  error
}

// EventHandler receives raw unsolicited status frames. It runs on the I/O
// loop goroutine and must not block.
type EventHandler func(raw []byte)

// Core is a client for one QRC core. It owns the TCP socket exclusively: all
// reads and writes happen on the I/O loop goroutine, and callers interact
// through the outbound queue and the single response slot.
//
// At most one request is in flight at a time; concurrent callers serialize on
// the call-admission lock and are served in submission order.
type Core struct {
	cfg  Config
	addr string

	mu     sync.Mutex // guards connect/close transitions
	conn   net.Conn
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	connected   atomic.Bool
	loopRunning atomic.Bool

	callMu sync.Mutex
	nextID atomic.Uint64
	sendQ  chan protocol.Request
	respCh chan inbound

	pingRequested atomic.Bool
	countdownMu   sync.Mutex
	countdown     int

	eventHandler EventHandler

	Control     ControlMethods
	Component   ComponentMethods
	ChangeGroup ChangeGroupMethods
	Mixer       MixerMethods
	LoopPlayer  LoopPlayerMethods
	Snapshot    SnapshotMethods
}

// NewCore creates a client for the core at addr ("host:port"). A bare host
// gets the default QRC port.
func NewCore(addr string, cfg Config) (*Core, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, ErrAddressRequired
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, fmt.Sprintf("%d", DefaultPort))
	}
	c := &Core{
		cfg:  cfg.WithDefaults(),
		addr: addr,
	}
	c.Control = ControlMethods{core: c}
	c.Component = ComponentMethods{core: c}
	c.ChangeGroup = ChangeGroupMethods{core: c}
	c.Mixer = MixerMethods{core: c}
	c.LoopPlayer = LoopPlayerMethods{core: c}
	c.Snapshot = SnapshotMethods{core: c}
	return c, nil
}

// Addr returns the resolved core address.
func (c *Core) Addr() string {
	return c.addr
}

// SetEventHandler installs the sink for unsolicited status frames. Must be
// called before Connect. A nil handler logs events and drops them.
func (c *Core) SetEventHandler(h EventHandler) *Core {
	c.eventHandler = h
	return c
}

// IsConnected reports whether a live connection exists.
func (c *Core) IsConnected() bool {
	return c.connected.Load()
}

// Connect dials the core and starts the I/O loop and heartbeat monitor.
// It returns once both workers are running; no protocol handshake is awaited.
// A live connection makes this fail with ErrAlreadyConnected.
func (c *Core) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected.Load() {
		return ErrAlreadyConnected
	}

	dialer := net.Dialer{Timeout: c.cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrTransport, c.addr, err)
	}

	c.conn = conn
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.sendQ = make(chan protocol.Request, c.cfg.SendQueueSize)
	c.respCh = make(chan inbound, 1)
	c.pingRequested.Store(false)
	c.resetCountdown()
	c.connected.Store(true)
	c.loopRunning.Store(true)

	c.wg.Add(2)
	go c.ioLoop(conn, c.ctx)
	go c.heartbeatLoop(c.ctx)

	log.Info().Str("addr", c.addr).Msg("qrc: connected")
	return nil
}

// Close raises the shutdown flag, waits for the I/O loop to drain pending
// outbound requests and exit, then closes the socket. Closing an already
// closed client is a no-op.
func (c *Core) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected.Load() {
		return nil
	}
	c.cancel()
	c.wg.Wait()
	err := c.conn.Close()
	c.conn = nil
	c.connected.Store(false)
	log.Info().Str("addr", c.addr).Msg("qrc: closed connection")
	if err != nil {
		return fmt.Errorf("%w: close: %v", ErrTransport, err)
	}
	return nil
}

// Call submits one request and blocks until its correlated response arrives,
// the context ends, or the connection goes away. Remote error envelopes are
// translated through the error-code table and returned as *protocol.RemoteError.
//
// A response carrying a different id means the session is desynchronized;
// the call fails with ErrCorrelation and the connection is forced closed.
func (c *Core) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if !c.loopRunning.Load() {
		return nil, ErrNotConnected
	}

	c.callMu.Lock()
	defer c.callMu.Unlock()

	id := c.nextID.Add(1)
	req := protocol.NewRequest(id, method, params)

	select {
	case c.sendQ <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, ErrConnectionClosed
	}

	select {
	case in := <-c.respCh:
		if in.err != nil {
			return nil, in.err
		}
		return c.concludeCall(id, in.resp)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, ErrConnectionClosed
	}
}

func (c *Core) concludeCall(id uint64, resp protocol.Response) (json.RawMessage, error) {
	if resp.ID != id {
		log.Error().Uint64("want", id).Uint64("got", resp.ID).Msg("qrc: session desynchronized, forcing close")
		go func() { _ = c.Close() }()
		return nil, fmt.Errorf("%w: want id %d, got %d", ErrCorrelation, id, resp.ID)
	}
	if resp.Error != nil {
		observability.RecordRemoteError(resp.Error.Code)
		return nil, protocol.TranslateError(resp.Error)
	}
	return resp.Result, nil
}

// Logon authenticates the session. Required before most commands on cores
// with access control enabled.
func (c *Core) Logon(ctx context.Context, user, password string) (json.RawMessage, error) {
	return c.Call(ctx, "Logon", map[string]any{"User": user, "Password": password})
}

// StatusGet returns the core's engine status.
func (c *Core) StatusGet(ctx context.Context) (json.RawMessage, error) {
	return c.Call(ctx, "StatusGet", map[string]any{})
}

// NoOp requests an immediate keepalive ping on the next I/O loop pass.
func (c *Core) NoOp() error {
	if !c.loopRunning.Load() {
		return ErrNotConnected
	}
	c.pingRequested.Store(true)
	c.resetCountdown()
	return nil
}
