package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
)

// MessageType identifies a live-channel message.
type MessageType string

const (
	MessageSync    MessageType = "sync"    // Full rendered markup
	MessageChanges MessageType = "changes" // Batch of change records
	MessagePing    MessageType = "ping"    // Liveness probe
	MessagePong    MessageType = "pong"    // Liveness response
	MessageAck     MessageType = "ack"     // Client acknowledges a sequence
	MessageClose   MessageType = "close"   // Orderly shutdown
)

// Limits. A decoded message beyond these bounds is rejected before any of
// its content is processed.
const (
	// MaxMessageSize is the maximum encoded message size in bytes.
	MaxMessageSize = 1 << 20

	// MaxBatchLen is the maximum number of change records per message.
	MaxBatchLen = 4096
)

// Message errors.
var (
	ErrMessageTooLarge = errors.New("protocol: message too large")
	ErrBatchTooLong    = errors.New("protocol: change batch too long")
	ErrUnknownType     = errors.New("protocol: unknown message type")
)

// Message is one live-channel envelope. Seq is a per-session monotonic
// sequence for server-to-client messages; Ack echoes the highest sequence
// a client has applied.
type Message struct {
	T       MessageType `json:"t"`
	Seq     uint64      `json:"seq,omitempty"`
	HTML    string      `json:"html,omitempty"`
	Changes []Change    `json:"changes,omitempty"`
	Ack     uint64      `json:"ack,omitempty"`
	Reason  string      `json:"reason,omitempty"`
}

// valid reports whether t is a known message type.
func (t MessageType) valid() bool {
	switch t {
	case MessageSync, MessageChanges, MessagePing, MessagePong, MessageAck, MessageClose:
		return true
	}
	return false
}

// Encode serializes a message, enforcing size and batch limits.
func Encode(m *Message) ([]byte, error) {
	if !m.T.valid() {
		return nil, ErrUnknownType
	}
	if len(m.Changes) > MaxBatchLen {
		return nil, ErrBatchTooLong
	}
	data, err := marshalJSON(m)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	return data, nil
}

// marshalJSON encodes without HTML escaping: change records carry rendered
// markup and the client needs it verbatim.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a message, enforcing size and batch limits.
func Decode(data []byte) (*Message, error) {
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if !m.T.valid() {
		return nil, ErrUnknownType
	}
	if len(m.Changes) > MaxBatchLen {
		return nil, ErrBatchTooLong
	}
	return &m, nil
}
