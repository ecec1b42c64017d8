package protocol

// ITM (Instrumentation Trace Macrocell) packet stream as emitted on SWO.
//
// Header byte layout (ARMv7-M ARM, appendix D4):
//
//	0x00            sync (zero run terminated by 0x80)
//	0x70            overflow
//	cttt0000        local timestamp, continuation while bit 7 set
//	0x94, 0xB4      global timestamp, continuation while bit 7 set
//	cxxx1s00        extension, continuation while bit 7 set
//	aaaaa0ss        software source packet, port a, size ss
//	aaaaa1ss        hardware source packet, skipped
const (
	itmSync       = 0x00
	itmSyncEnd    = 0x80
	itmOverflow   = 0x70
	itmGTS1       = 0x94
	itmGTS2       = 0xB4
	itmCont       = 0x80
	itmSizeMask   = 0x03
	itmHWSource   = 0x04
	itmExtMask    = 0x0B
	itmExtension  = 0x08
	itmPortShift  = 3
	ITMPortCount  = 32
	ITMMaxPayload = 4
)

// Packet is one decoded software source packet.
type Packet struct {
	Port uint8
	Data []byte // Valid until the handler returns
}

// PacketHandler receives decoded software source packets.
type PacketHandler func(Packet)

// DecoderStats counts what the decoder saw besides payload.
type DecoderStats struct {
	Packets   uint64 // Software source packets delivered
	Syncs     uint64 // Sync sequences completed
	Overflows uint64 // Overflow packets (trace data lost upstream)
	Skipped   uint64 // Timestamp, extension, hardware source and reserved packets
}

type decoderState uint8

const (
	stateHeader decoderState = iota
	statePayload
	stateContinuation
	stateDiscard
)

// Decoder turns a raw SWO byte stream into software source packets.
// Input may be split at any byte boundary across Write calls.
type Decoder struct {
	state   decoderState
	header  byte
	need    int
	have    int
	zeros   int
	payload [ITMMaxPayload]byte
	handler PacketHandler

	Stats DecoderStats
}

// NewDecoder creates a decoder delivering packets to handler.
func NewDecoder(handler PacketHandler) *Decoder {
	return &Decoder{handler: handler}
}

// Write feeds raw trace bytes. It never fails.
func (d *Decoder) Write(p []byte) (int, error) {
	for _, b := range p {
		d.feed(b)
	}
	return len(p), nil
}

func (d *Decoder) feed(b byte) {
	switch d.state {
	case statePayload:
		d.payload[d.have] = b
		d.have++
		if d.have == d.need {
			d.state = stateHeader
			d.deliver()
		}
		return
	case stateDiscard:
		d.have++
		if d.have == d.need {
			d.state = stateHeader
		}
		return
	case stateContinuation:
		if b&itmCont == 0 {
			d.state = stateHeader
		}
		return
	}

	// Header
	if b == itmSync {
		d.zeros++
		return
	}
	if d.zeros > 0 && b == itmSyncEnd {
		d.zeros = 0
		d.Stats.Syncs++
		return
	}
	d.zeros = 0

	switch {
	case b == itmOverflow:
		d.Stats.Overflows++
	case b == itmGTS1 || b == itmGTS2:
		d.Stats.Skipped++
		d.state = stateContinuation
	case b&0x0F == 0:
		// Local timestamp
		d.Stats.Skipped++
		if b&itmCont != 0 {
			d.state = stateContinuation
		}
	case b&itmExtMask == itmExtension:
		d.Stats.Skipped++
		if b&itmCont != 0 {
			d.state = stateContinuation
		}
	case b&itmSizeMask != 0:
		d.header = b
		d.need = payloadSize(b)
		d.have = 0
		if b&itmHWSource != 0 {
			d.Stats.Skipped++
			d.state = stateDiscard
		} else {
			d.state = statePayload
		}
	default:
		d.Stats.Skipped++
	}
}

func (d *Decoder) deliver() {
	d.Stats.Packets++
	if d.handler != nil {
		d.handler(Packet{
			Port: d.header >> itmPortShift,
			Data: d.payload[:d.need],
		})
	}
}

func payloadSize(header byte) int {
	switch header & itmSizeMask {
	case 1:
		return 1
	case 2:
		return 2
	default:
		return 4
	}
}

// AppendStimulus appends the software source packet a stimulus port write
// of len(data) bytes produces. len(data) must be 1, 2 or 4 and port below
// ITMPortCount.
func AppendStimulus(buf []byte, port uint8, data []byte) []byte {
	var size byte
	switch len(data) {
	case 1:
		size = 1
	case 2:
		size = 2
	case 4:
		size = 3
	default:
		panic("itm: stimulus payload must be 1, 2 or 4 bytes")
	}
	buf = append(buf, (port&(ITMPortCount-1))<<itmPortShift|size)
	return append(buf, data...)
}
