package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// sessionID distinguishes ids minted by this process; seq orders them.
var (
	sessionID = uuid.NewString()
	seq       uint64
)

// nextSeq returns a monotonically increasing creation counter.
func nextSeq() uint64 {
	return atomic.AddUint64(&seq, 1)
}

// NewStrokeID mints a unique stroke id.
func NewStrokeID() string {
	return "stroke-" + uuid.NewString()
}

// NewShapeID mints a unique shape id.
func NewShapeID() string {
	return "shape-" + uuid.NewString()
}

// SessionID identifies the running board, e.g. in bridge handshakes.
func SessionID() string {
	return sessionID
}
