// Package monitor reads an SWO trace stream, prints the firmware's text
// lines and checks heartbeat continuity.
package monitor

import (
	"errors"
	"fmt"
	"io"

	"ledswitch/protocol"
)

// readChunk is the size of a single read from the trace source
const readChunk = 256

// Event is one decoded line with the checker's verdict on it.
type Event struct {
	Port      uint8
	Line      string
	Heartbeat bool   // Line parsed as a heartbeat
	Count     uint32 // Heartbeat counter when Heartbeat is set
	Err       error  // Continuity error (gap or restart), if any
}

// Summary is what a monitor run observed.
type Summary struct {
	Lines      uint64
	Heartbeats uint64
	Lost       uint64
	Restarts   uint64
	Decoder    protocol.DecoderStats
}

// Monitor decodes an SWO byte stream.
type Monitor struct {
	src       io.Reader
	decoder   *protocol.Decoder
	assembler *protocol.LineAssembler
	checker   protocol.HeartbeatChecker
	onEvent   func(Event)
	lines     uint64

	// Follow keeps reading past io.EOF. A serial port with a read timeout
	// reports EOF when the line is idle, not when the trace has ended.
	Follow bool
}

// New creates a monitor reading src and reporting each line from the
// stimulus ports set in portMask to onEvent.
func New(src io.Reader, portMask uint32, onEvent func(Event)) *Monitor {
	m := &Monitor{
		src:     src,
		onEvent: onEvent,
	}
	m.assembler = protocol.NewLineAssembler(portMask, m.line)
	m.decoder = protocol.NewDecoder(m.assembler.Packet)
	return m
}

func (m *Monitor) line(port uint8, line string) {
	m.lines++
	ev := Event{Port: port, Line: line}

	if port == protocol.TracePort {
		if n, ok := protocol.ParseHeartbeat(line); ok {
			ev.Heartbeat = true
			ev.Count = n
			ev.Err = m.checker.Observe(n)
		}
	}

	if m.onEvent != nil {
		m.onEvent(ev)
	}
}

// Run reads until stop is closed, the source reports EOF (unless Follow is
// set) or a read fails. Read errors other than EOF are returned wrapped.
func (m *Monitor) Run(stop <-chan struct{}) error {
	buf := make([]byte, readChunk)
	for {
		select {
		case <-stop:
			m.assembler.Flush()
			return nil
		default:
		}

		n, err := m.src.Read(buf)
		if n > 0 {
			m.decoder.Write(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if m.Follow {
					continue
				}
				m.assembler.Flush()
				return nil
			}
			m.assembler.Flush()
			return fmt.Errorf("trace read failed: %w", err)
		}
	}
}

// Summary returns the counters accumulated so far.
func (m *Monitor) Summary() Summary {
	return Summary{
		Lines:      m.lines,
		Heartbeats: m.checker.Count,
		Lost:       m.checker.Lost,
		Restarts:   m.checker.Restarts,
		Decoder:    m.decoder.Stats,
	}
}

// PortMask builds a stimulus port mask from port numbers.
func PortMask(ports ...uint8) uint32 {
	var mask uint32
	for _, p := range ports {
		mask |= 1 << (p & (protocol.ITMPortCount - 1))
	}
	return mask
}
