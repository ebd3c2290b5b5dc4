package qrc

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// heartbeatLoop decrements the idle countdown once per tick under the
// countdown lock. At zero it raises the ping flag for the I/O loop and
// resets; any application traffic also resets it, so a NoOp goes out only
// when the session has been idle for a full countdown period. The monitor
// stops on shutdown or once the I/O loop has exited.
func (c *Core) heartbeatLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.loopRunning.Load() {
				return
			}
			c.countdownMu.Lock()
			if c.countdown <= 0 {
				c.countdown = c.cfg.IdleTicks
				c.countdownMu.Unlock()
				c.pingRequested.Store(true)
				log.Debug().Msg("qrc: idle countdown expired, keepalive requested")
				continue
			}
			c.countdown--
			c.countdownMu.Unlock()
		}
	}
}
