package core

import "ledswitch/protocol"

// Heartbeat is the main loop's counter. It wraps at 2^32 and that is not
// an error.
type Heartbeat struct {
	count uint32
	line  []byte
}

// NewHeartbeat starts counting at start.
func NewHeartbeat(start uint32) *Heartbeat {
	return &Heartbeat{
		count: start,
		line:  make([]byte, 0, len(protocol.HeartbeatPrefix)+10),
	}
}

// Count returns the value the next Beat will emit.
func (h *Heartbeat) Count() uint32 {
	return h.count
}

// Beat emits one heartbeat line and advances the counter.
func (h *Heartbeat) Beat() {
	h.line = protocol.AppendHeartbeat(h.line[:0], h.count)
	TraceLine(h.line)
	h.count++
}
