// Package qrc implements a client for the QRC control protocol: a persistent
// TCP session carrying null-delimited JSON-RPC 2.0 messages to and from a
// Q-SYS core.
//
// The engine is two background goroutines per connection. The I/O loop owns
// the socket: it reframes the inbound byte stream, dispatches unsolicited
// status broadcasts, hands correlated responses to the blocked caller, and
// writes queued requests and keepalive pings. The heartbeat monitor counts
// idle ticks and requests a NoOp before the core's idle timeout can drop the
// session.
//
// Call is synchronous for the caller and admits one request at a time;
// concurrent callers are served in submission order. There is no automatic
// reconnection: a lost connection surfaces as an error and the owner must
// Close and Connect again.
package qrc
