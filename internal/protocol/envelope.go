// Package protocol defines the QRC JSON-RPC 2.0 wire envelopes and the
// translation of numeric protocol error codes into domain errors.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const Version = "2.0"

// MethodNoOp is the heartbeat method; it carries no id and gets no response.
const MethodNoOp = "NoOp"

// eventMarker identifies unsolicited core status broadcasts. They are never
// correlated to a request id.
var eventMarker = []byte("EngineStatus")

var (
	ErrInvalidEnvelope = errors.New("protocol: invalid envelope")
	ErrMalformedFrame  = errors.New("protocol: malformed frame")
)

// Request is one outbound JSON-RPC envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// Notification is an id-less outbound envelope; used only for the heartbeat.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// Response is one inbound JSON-RPC envelope: either Result or Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the raw wire error object.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func NewRequest(id uint64, method string, params any) Request {
	if params == nil {
		params = map[string]any{}
	}
	return Request{JSONRPC: Version, ID: id, Method: method, Params: params}
}

func (r Request) Validate() error {
	if r.JSONRPC != Version {
		return fmt.Errorf("%w: jsonrpc version %q", ErrInvalidEnvelope, r.JSONRPC)
	}
	if r.Method == "" {
		return fmt.Errorf("%w: missing method", ErrInvalidEnvelope)
	}
	return nil
}

// EncodeRequest serializes a request to its wire JSON form, without the
// frame delimiter.
func EncodeRequest(req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(req)
}

// Heartbeat returns the wire form of the no-op keepalive message.
func Heartbeat() ([]byte, error) {
	return json.Marshal(Notification{JSONRPC: Version, Method: MethodNoOp, Params: map[string]any{}})
}

// IsEventFrame reports whether a raw frame is an unsolicited status broadcast.
func IsEventFrame(raw []byte) bool {
	return bytes.Contains(raw, eventMarker)
}

// DecodeResponse parses one response frame. A frame that is not valid JSON or
// carries neither result nor error is a malformed frame.
func DecodeResponse(raw []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if resp.Result == nil && resp.Error == nil {
		return Response{}, fmt.Errorf("%w: neither result nor error present", ErrMalformedFrame)
	}
	return resp, nil
}
