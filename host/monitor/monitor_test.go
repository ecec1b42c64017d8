package monitor

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"ledswitch/protocol"
)

func swoText(port uint8, text string) []byte {
	var out []byte
	for i := 0; i < len(text); i++ {
		out = protocol.AppendStimulus(out, port, []byte{text[i]})
	}
	return out
}

func TestMonitorHeartbeats(t *testing.T) {
	var stream []byte
	stream = append(stream, 0, 0, 0, 0, 0, 0x80)
	stream = append(stream, swoText(0, "[SETUP] MODER_E=0x40000000\n")...)
	for n := uint32(10); n < 15; n++ {
		stream = append(stream, swoText(0, string(protocol.AppendHeartbeat(nil, n))+"\n")...)
	}

	var events []Event
	m := New(iotest.OneByteReader(bytes.NewReader(stream)), PortMask(0), func(ev Event) {
		events = append(events, ev)
	})
	if err := m.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(events) != 6 {
		t.Fatalf("Expected 6 lines, got %d", len(events))
	}
	if events[0].Heartbeat || events[0].Line != "[SETUP] MODER_E=0x40000000" {
		t.Errorf("First event %+v", events[0])
	}
	for i, ev := range events[1:] {
		if !ev.Heartbeat || ev.Count != uint32(10+i) || ev.Err != nil {
			t.Errorf("event %d: %+v", i+1, ev)
		}
	}

	s := m.Summary()
	if s.Lines != 6 || s.Heartbeats != 5 || s.Lost != 0 || s.Decoder.Syncs != 1 {
		t.Errorf("Unexpected summary %+v", s)
	}
}

func TestMonitorReportsGap(t *testing.T) {
	var stream []byte
	for _, n := range []uint32{1, 2, 6} {
		stream = append(stream, swoText(0, string(protocol.AppendHeartbeat(nil, n))+"\n")...)
	}

	var errs []error
	m := New(bytes.NewReader(stream), PortMask(0), func(ev Event) {
		if ev.Err != nil {
			errs = append(errs, ev.Err)
		}
	})
	if err := m.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(errs) != 1 || !errors.Is(errs[0], protocol.ErrHeartbeatGap) {
		t.Errorf("Expected one gap error, got %v", errs)
	}
	if m.Summary().Lost != 3 {
		t.Errorf("Lost=%d, want 3", m.Summary().Lost)
	}
}

func TestMonitorFiltersPorts(t *testing.T) {
	stream := append(swoText(1, "other\n"), swoText(0, "mine\n")...)

	var lines []string
	m := New(bytes.NewReader(stream), PortMask(0), func(ev Event) {
		lines = append(lines, ev.Line)
	})
	m.Run(nil)

	if len(lines) != 1 || lines[0] != "mine" {
		t.Errorf("Got %q", lines)
	}
}

func TestMonitorFlushesPartialLineAtEOF(t *testing.T) {
	var lines []string
	m := New(bytes.NewReader(swoText(0, "no newline")), PortMask(0), func(ev Event) {
		lines = append(lines, ev.Line)
	})
	m.Run(nil)

	if len(lines) != 1 || lines[0] != "no newline" {
		t.Errorf("Got %q", lines)
	}
}

func TestMonitorReadError(t *testing.T) {
	boom := errors.New("boom")
	m := New(iotest.ErrReader(boom), PortMask(0), nil)

	if err := m.Run(nil); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped read error, got %v", err)
	}
}

// idleReader reports EOF like a serial port read timeout until stop.
type idleReader struct {
	data  []byte
	reads int
	stop  chan struct{}
}

func (r *idleReader) Read(p []byte) (int, error) {
	r.reads++
	if r.reads == 3 {
		close(r.stop)
	}
	if len(r.data) > 0 && r.reads == 2 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	return 0, io.EOF
}

func TestMonitorFollowSurvivesIdle(t *testing.T) {
	r := &idleReader{data: swoText(0, "late\n"), stop: make(chan struct{})}

	var lines []string
	m := New(r, PortMask(0), func(ev Event) { lines = append(lines, ev.Line) })
	m.Follow = true

	if err := m.Run(r.stop); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(lines) != 1 || lines[0] != "late" {
		t.Errorf("Got %q", lines)
	}
}

func TestPortMask(t *testing.T) {
	if got := PortMask(0, 3, 31); got != 1|1<<3|1<<31 {
		t.Errorf("PortMask = %#x", got)
	}
}
