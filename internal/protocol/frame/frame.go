package frame

import (
	"bytes"
	"errors"
)

// Delimiter terminates every QRC wire message. The stream is a sequence of
// JSON documents, each followed by a single null byte.
const Delimiter byte = 0x00

// DefaultMaxFrameBytes bounds how far the accumulator may grow without a
// delimiter before the stream is considered corrupt.
const DefaultMaxFrameBytes = 8 * 1024 * 1024

var ErrFrameTooLarge = errors.New("frame: message exceeds size limit without delimiter")

// Encode serializes one outbound message to wire bytes by appending the
// delimiter. The input slice may be reused.
func Encode(msg []byte) []byte {
	out := make([]byte, 0, len(msg)+1)
	out = append(out, msg...)
	return append(out, Delimiter)
}

// Extract splits an accumulating buffer into complete frames. Every fully
// delimited segment is one frame; any bytes after the last delimiter are
// returned as the remaining buffer and must be carried into the next read.
// Empty segments (back-to-back delimiters) are dropped.
func Extract(buf []byte) ([][]byte, []byte) {
	if !bytes.Contains(buf, []byte{Delimiter}) {
		return nil, buf
	}
	segments := bytes.Split(buf, []byte{Delimiter})
	rest := segments[len(segments)-1]
	frames := make([][]byte, 0, len(segments)-1)
	for _, seg := range segments[:len(segments)-1] {
		if len(seg) == 0 {
			continue
		}
		out := make([]byte, len(seg))
		copy(out, seg)
		frames = append(frames, out)
	}
	return frames, rest
}

// CheckLimit reports ErrFrameTooLarge when an undelimited buffer has grown
// past max. A max of zero applies DefaultMaxFrameBytes.
func CheckLimit(buf []byte, max int) error {
	if max <= 0 {
		max = DefaultMaxFrameBytes
	}
	if len(buf) > max {
		return ErrFrameTooLarge
	}
	return nil
}
