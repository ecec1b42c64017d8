package protocol

import (
	"errors"
	"testing"
)

func TestAppendHeartbeat(t *testing.T) {
	tests := map[uint32]string{
		0:          "Hello, world! 0",
		9:          "Hello, world! 9",
		10:         "Hello, world! 10",
		1234567:    "Hello, world! 1234567",
		4294967295: "Hello, world! 4294967295",
	}
	for n, want := range tests {
		if got := string(AppendHeartbeat(nil, n)); got != want {
			t.Errorf("AppendHeartbeat(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestAppendHeartbeatNoAlloc(t *testing.T) {
	buf := make([]byte, 0, len(HeartbeatPrefix)+10)
	allocs := testing.AllocsPerRun(100, func() {
		buf = AppendHeartbeat(buf[:0], 4294967295)
	})
	if allocs != 0 {
		t.Errorf("AppendHeartbeat allocated %.0f times", allocs)
	}
}

func TestParseHeartbeat(t *testing.T) {
	tests := []struct {
		line string
		n    uint32
		ok   bool
	}{
		{"Hello, world! 0", 0, true},
		{"Hello, world! 4294967295", 4294967295, true},
		{"Hello, world! 4294967296", 0, false},
		{"Hello, world! ", 0, false},
		{"Hello, world! 12a", 0, false},
		{"[SETUP] MODER_E=0x40000000", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		n, ok := ParseHeartbeat(tt.line)
		if n != tt.n || ok != tt.ok {
			t.Errorf("ParseHeartbeat(%q) = %d, %v; want %d, %v", tt.line, n, ok, tt.n, tt.ok)
		}
	}
}

func TestHeartbeatCheckerSequence(t *testing.T) {
	var c HeartbeatChecker
	for _, n := range []uint32{7, 8, 9, 10} {
		if err := c.Observe(n); err != nil {
			t.Fatalf("Observe(%d): %v", n, err)
		}
	}
	if c.Count != 4 || c.Lost != 0 || c.Restarts != 0 {
		t.Errorf("Unexpected counters %+v", c)
	}
	if last, ok := c.Last(); !ok || last != 10 {
		t.Errorf("Last() = %d, %v", last, ok)
	}
}

func TestHeartbeatCheckerWraparound(t *testing.T) {
	var c HeartbeatChecker
	for _, n := range []uint32{0xFFFFFFFE, 0xFFFFFFFF, 0, 1} {
		if err := c.Observe(n); err != nil {
			t.Fatalf("Observe(%d): %v", n, err)
		}
	}
}

func TestHeartbeatCheckerGap(t *testing.T) {
	var c HeartbeatChecker
	c.Observe(100)

	err := c.Observe(104)
	if !errors.Is(err, ErrHeartbeatGap) {
		t.Fatalf("Expected gap error, got %v", err)
	}
	if c.Lost != 3 {
		t.Errorf("Lost=%d, want 3", c.Lost)
	}

	// Gap across the wrap point
	c.Observe(0xFFFFFFFF)
	c.Observe(1)
	if c.Lost != 4 {
		t.Errorf("Lost=%d after wrapping gap, want 4", c.Lost)
	}
}

func TestHeartbeatCheckerRestart(t *testing.T) {
	var c HeartbeatChecker
	c.Observe(5000)

	if err := c.Observe(0); !errors.Is(err, ErrHeartbeatRestart) {
		t.Errorf("Expected restart error, got %v", err)
	}
	if err := c.Observe(0); !errors.Is(err, ErrHeartbeatRestart) {
		t.Errorf("Expected restart error on repeat, got %v", err)
	}
	if c.Restarts != 2 {
		t.Errorf("Restarts=%d, want 2", c.Restarts)
	}
	if err := c.Observe(1); err != nil {
		t.Errorf("Sequence should resume after restart: %v", err)
	}
}
