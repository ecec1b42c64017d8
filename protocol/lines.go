package protocol

// LineMax bounds a trace line; longer lines are emitted in pieces.
const LineMax = 256

// LineHandler receives one complete trace line without its terminator.
type LineHandler func(port uint8, line string)

// LineAssembler rebuilds text lines from stimulus port packets. Each port
// has its own buffer so interleaved ports do not mix.
type LineAssembler struct {
	ports   uint32 // Bitmask of ports to assemble
	buffers [ITMPortCount][]byte
	handler LineHandler
}

// NewLineAssembler assembles lines for the ports set in mask.
func NewLineAssembler(mask uint32, handler LineHandler) *LineAssembler {
	return &LineAssembler{ports: mask, handler: handler}
}

// Packet is a PacketHandler.
func (a *LineAssembler) Packet(p Packet) {
	if a.ports&(1<<p.Port) == 0 {
		return
	}

	buf := a.buffers[p.Port]
	for _, c := range p.Data {
		switch c {
		case '\n':
			a.emit(p.Port, buf)
			buf = buf[:0]
		case '\r':
			// Dropped; CRLF and LF both end a line
		default:
			buf = append(buf, c)
			if len(buf) >= LineMax {
				a.emit(p.Port, buf)
				buf = buf[:0]
			}
		}
	}
	a.buffers[p.Port] = buf
}

// Flush emits any partial lines.
func (a *LineAssembler) Flush() {
	for port := range a.buffers {
		if len(a.buffers[port]) > 0 {
			a.emit(uint8(port), a.buffers[port])
			a.buffers[port] = a.buffers[port][:0]
		}
	}
}

func (a *LineAssembler) emit(port uint8, line []byte) {
	if a.handler != nil {
		a.handler(port, string(line))
	}
}
