package qrc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avtools/qrcctl/internal/observability"
	"github.com/avtools/qrcctl/internal/protocol"
	"github.com/avtools/qrcctl/internal/protocol/frame"
)

// ioLoop is the single socket owner. Each iteration attempts a deadline-bound
// read; inbound bytes are reframed and dispatched, and a read timeout is the
// window for one unit of outbound work (a queued request, else a pending
// heartbeat). The loop exits once shutdown is requested and the outbound
// queue is empty, so queued requests are flushed before teardown.
func (c *Core) ioLoop(conn net.Conn, ctx context.Context) {
	defer func() {
		c.loopRunning.Store(false)
		c.wg.Done()
	}()

	var acc []byte
	chunk := make([]byte, c.cfg.ReadBufferBytes)
	for {
		if ctx.Err() != nil && len(c.sendQ) == 0 {
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(c.cfg.PollInterval))
		n, err := conn.Read(chunk)
		if n > 0 {
			acc = append(acc, chunk[:n]...)
			var frames [][]byte
			frames, acc = frame.Extract(acc)
			for _, f := range frames {
				c.dispatch(f)
			}
			if limitErr := frame.CheckLimit(acc, c.cfg.MaxFrameBytes); limitErr != nil {
				c.deliver(inbound{err: fmt.Errorf("%w: %v", ErrProtocol, limitErr)})
				c.cancel()
				return
			}
		}
		if err == nil {
			continue
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			if werr := c.writeOne(conn); werr != nil {
				c.deliver(inbound{err: werr})
				c.cancel()
				return
			}
			continue
		}

		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			log.Warn().Str("addr", c.addr).Msg("qrc: peer closed connection")
		} else {
			log.Error().Err(err).Str("addr", c.addr).Msg("qrc: read failure")
		}
		c.deliver(inbound{err: fmt.Errorf("%w: read: %v", ErrTransport, err)})
		c.cancel()
		return
	}
}

// writeOne performs at most one unit of outbound work: a queued request takes
// priority over a pending heartbeat. Application traffic and heartbeats both
// reset the idle countdown.
func (c *Core) writeOne(conn net.Conn) error {
	select {
	case req := <-c.sendQ:
		raw, err := protocol.EncodeRequest(req)
		if err != nil {
			// Encoding failures surface to the blocked caller; the
			// connection itself is fine.
			c.deliver(inbound{err: err})
			return nil
		}
		if err := c.writeFrame(conn, raw); err != nil {
			return err
		}
		c.resetCountdown()
		observability.RecordRequestSent(req.Method)
		log.Debug().Uint64("id", req.ID).Str("method", req.Method).Msg("qrc: request sent")
	default:
		if c.pingRequested.CompareAndSwap(true, false) {
			raw, err := protocol.Heartbeat()
			if err != nil {
				return err
			}
			if err := c.writeFrame(conn, raw); err != nil {
				return err
			}
			c.resetCountdown()
			observability.RecordHeartbeat()
			log.Debug().Msg("qrc: NoOp keepalive sent")
		}
	}
	return nil
}

func (c *Core) writeFrame(conn net.Conn, msg []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	if _, err := conn.Write(frame.Encode(msg)); err != nil {
		return fmt.Errorf("%w: write: %v", ErrTransport, err)
	}
	observability.RecordFrameSent()
	return nil
}

// dispatch classifies one complete inbound frame. Event frames go to the
// injected sink and are never correlated; everything else is parsed and
// pushed into the response slot for the blocked caller.
func (c *Core) dispatch(raw []byte) {
	observability.RecordFrameReceived()
	if protocol.IsEventFrame(raw) {
		observability.RecordEvent()
		if c.eventHandler != nil {
			c.eventHandler(raw)
			return
		}
		log.Info().RawJSON("event", raw).Msg("qrc: engine status")
		return
	}

	resp, err := protocol.DecodeResponse(raw)
	if err != nil {
		c.deliver(inbound{err: fmt.Errorf("%w: %v", ErrProtocol, err)})
		return
	}
	c.deliver(inbound{resp: resp})
}

// deliver pushes into the capacity-one response slot. With the one-in-flight
// invariant the slot is always free; a full slot means the peer sent an
// unsolicited correlated response, which is dropped.
func (c *Core) deliver(in inbound) {
	select {
	case c.respCh <- in:
	default:
		log.Warn().Msg("qrc: response slot full, dropping inbound message")
	}
}

func (c *Core) resetCountdown() {
	c.countdownMu.Lock()
	c.countdown = c.cfg.IdleTicks
	c.countdownMu.Unlock()
}
