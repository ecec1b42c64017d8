package core

import (
	"testing"

	"ledswitch/protocol"
)

func captureTrace(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	SetTraceWriter(func(b []byte) { lines = append(lines, string(b)) })
	t.Cleanup(func() { SetTraceWriter(func([]byte) {}) })
	return &lines
}

func TestHeartbeatCountsUp(t *testing.T) {
	lines := captureTrace(t)

	hb := NewHeartbeat(0)
	for i := 0; i < 3; i++ {
		hb.Beat()
	}

	want := []string{"Hello, world! 0", "Hello, world! 1", "Hello, world! 2"}
	if len(*lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %q", len(want), len(*lines), *lines)
	}
	for i := range want {
		if (*lines)[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, (*lines)[i], want[i])
		}
	}
	if hb.Count() != 3 {
		t.Errorf("Count=%d, want 3", hb.Count())
	}
}

func TestHeartbeatWraps(t *testing.T) {
	lines := captureTrace(t)

	hb := NewHeartbeat(0xFFFFFFFE)
	hb.Beat()
	hb.Beat()
	hb.Beat()

	want := []string{"Hello, world! 4294967294", "Hello, world! 4294967295", "Hello, world! 0"}
	for i := range want {
		if (*lines)[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, (*lines)[i], want[i])
		}
	}
}

func TestHeartbeatOverITM(t *testing.T) {
	sim, p := newSim(t)
	SetTraceWriter(p.ITM.WriteLine)

	hb := NewHeartbeat(41)
	hb.Beat()
	hb.Beat()

	var got []string
	asm := protocol.NewLineAssembler(1<<protocol.TracePort, func(port uint8, line string) {
		got = append(got, line)
	})
	dec := protocol.NewDecoder(asm.Packet)
	dec.Write(sim.SWO())

	if len(got) != 2 || got[0] != "Hello, world! 41" || got[1] != "Hello, world! 42" {
		t.Errorf("Decoded %q", got)
	}
	if dec.Stats.Packets != uint64(len(sim.SWO())/2) {
		t.Errorf("Expected one 1-byte packet per character, got %d packets for %d bytes",
			dec.Stats.Packets, len(sim.SWO()))
	}
}

func TestITMWithoutDebuggerDropsOutput(t *testing.T) {
	sim, p := newSim(t)
	sim.Poke(itmTCRAddr, 0)

	p.ITM.WriteLine([]byte("lost"))

	if len(sim.SWO()) != 0 {
		t.Errorf("Expected no trace output, got %q", sim.SWO())
	}
	for _, w := range sim.Writes() {
		if w.Addr == itmStim0Addr {
			t.Fatal("Stimulus port written with ITM disabled")
		}
	}
}

func TestBootDebugLine(t *testing.T) {
	_, p := newSim(t)
	lines := captureTrace(t)
	SetDebugEnabled(true)

	Boot(p)

	if len(*lines) != 1 {
		t.Fatalf("Expected one setup line, got %q", *lines)
	}
	want := "[SETUP] MODER_E=0x40000000 IMR=0x00000001 ISER0=0x00000040"
	if (*lines)[0] != want {
		t.Errorf("Setup line %q, want %q", (*lines)[0], want)
	}
}

func TestBootQuietByDefault(t *testing.T) {
	_, p := newSim(t)
	lines := captureTrace(t)

	Boot(p)

	if len(*lines) != 0 {
		t.Errorf("Expected no output, got %q", *lines)
	}
}

func TestHex32(t *testing.T) {
	tests := map[uint32]string{
		0:          "0x00000000",
		0x40:       "0x00000040",
		0xDEADBEEF: "0xdeadbeef",
	}
	for v, want := range tests {
		if got := hex32(v); got != want {
			t.Errorf("hex32(%#x)=%q, want %q", v, got, want)
		}
	}
}
