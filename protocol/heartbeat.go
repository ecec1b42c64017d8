package protocol

import (
	"errors"
	"fmt"
)

// HeartbeatPrefix starts every heartbeat line; the counter follows in decimal.
const HeartbeatPrefix = "Hello, world! "

var (
	// ErrHeartbeatGap means one or more heartbeats were lost in transit.
	ErrHeartbeatGap = errors.New("heartbeat gap")
	// ErrHeartbeatRestart means the counter went backwards, usually a reset.
	ErrHeartbeatRestart = errors.New("heartbeat restart")
)

// AppendHeartbeat appends the heartbeat line for counter n to buf.
// It does not allocate when buf has room for the prefix and ten digits.
func AppendHeartbeat(buf []byte, n uint32) []byte {
	buf = append(buf, HeartbeatPrefix...)

	var digits [10]byte
	pos := len(digits)
	for {
		pos--
		digits[pos] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(buf, digits[pos:]...)
}

// ParseHeartbeat extracts the counter from a heartbeat line.
func ParseHeartbeat(line string) (uint32, bool) {
	if len(line) <= len(HeartbeatPrefix) || line[:len(HeartbeatPrefix)] != HeartbeatPrefix {
		return 0, false
	}

	var n uint64
	for _, c := range line[len(HeartbeatPrefix):] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint64(c-'0')
		if n > 0xFFFFFFFF {
			return 0, false
		}
	}
	return uint32(n), true
}

// HeartbeatChecker verifies that consecutive counters advance by one,
// wrapping from 0xFFFFFFFF to 0.
type HeartbeatChecker struct {
	last uint32
	seen bool

	Count    uint64 // Heartbeats observed
	Lost     uint64 // Heartbeats skipped over by gaps
	Restarts uint64 // Times the counter went backwards or repeated
}

// Observe records counter n. The first value is always accepted.
func (c *HeartbeatChecker) Observe(n uint32) error {
	c.Count++
	if !c.seen {
		c.seen = true
		c.last = n
		return nil
	}

	prev := c.last
	c.last = n

	delta := n - prev
	switch {
	case delta == 1:
		return nil
	case delta != 0 && delta < 1<<31:
		c.Lost += uint64(delta - 1)
		return fmt.Errorf("%w: %d -> %d, %d lost", ErrHeartbeatGap, prev, n, delta-1)
	default:
		c.Restarts++
		return fmt.Errorf("%w: %d -> %d", ErrHeartbeatRestart, prev, n)
	}
}

// Last returns the most recent counter and whether any was observed.
func (c *HeartbeatChecker) Last() (uint32, bool) {
	return c.last, c.seen
}
