package protocol

import "fmt"

// RemoteError is a structured domain error translated from a numeric QRC
// protocol error code. Known reports whether the code appears in the
// documented table; unknown codes still surface, carrying only the code.
type RemoteError struct {
	Code    int
	Message string
	Known   bool
}

func (e *RemoteError) Error() string {
	if !e.Known {
		return fmt.Sprintf("qrc: unknown protocol error code %d", e.Code)
	}
	return fmt.Sprintf("qrc: remote error %d: %s", e.Code, e.Message)
}

// remoteErrorText is the documented QRC error code table: the JSON-RPC
// standard range, the redundant-core standby code, and the vendor codes 2..10.
var remoteErrorText = map[int]string{
	-32700: "Parse error. Invalid JSON was received by the server.",
	-32600: "Invalid request. The JSON sent is not a valid Request object.",
	-32601: "Method not found.",
	-32602: "Invalid params.",
	-32603: "Server error.",
	-32604: "Core is on Standby. This code is returned when a QRC command is received while the Core is not the active Core in a redundant Core configuration.",
	2:      "Invalid Page Request ID",
	3:      "Bad Page Request - could not create the requested Page Request",
	4:      "Missing file",
	5:      "Change Groups exhausted",
	6:      "Unknown change group",
	7:      "Unknown component name",
	8:      "Unknown control",
	9:      "Illegal mixer channel index",
	10:     "Logon required",
}

// TranslateCode maps a protocol error code to its domain error.
func TranslateCode(code int) *RemoteError {
	if msg, ok := remoteErrorText[code]; ok {
		return &RemoteError{Code: code, Message: msg, Known: true}
	}
	return &RemoteError{Code: code, Known: false}
}

// TranslateError routes a wire error object through the code table. The
// server-provided message is secondary; the table text is authoritative for
// documented codes.
func TranslateError(rpcErr *RPCError) *RemoteError {
	if rpcErr == nil {
		return nil
	}
	out := TranslateCode(rpcErr.Code)
	if !out.Known && rpcErr.Message != "" {
		out.Message = rpcErr.Message
	}
	return out
}
