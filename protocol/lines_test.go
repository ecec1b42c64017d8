package protocol

import "testing"

type portLine struct {
	port uint8
	line string
}

func TestLineAssembler(t *testing.T) {
	var got []portLine
	a := NewLineAssembler(1<<0|1<<3, func(port uint8, line string) {
		got = append(got, portLine{port, line})
	})

	a.Packet(Packet{Port: 0, Data: []byte("ab")})
	a.Packet(Packet{Port: 3, Data: []byte("x\r\n")})
	a.Packet(Packet{Port: 7, Data: []byte("ignored\n")})
	a.Packet(Packet{Port: 0, Data: []byte("c\nd")})
	a.Flush()

	want := []portLine{{3, "x"}, {0, "abc"}, {0, "d"}}
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLineAssemblerLongLine(t *testing.T) {
	var got []string
	a := NewLineAssembler(1, func(_ uint8, line string) { got = append(got, line) })

	long := make([]byte, LineMax+10)
	for i := range long {
		long[i] = 'z'
	}
	a.Packet(Packet{Port: 0, Data: long})
	a.Packet(Packet{Port: 0, Data: []byte("\n")})

	if len(got) != 2 || len(got[0]) != LineMax || len(got[1]) != 10 {
		t.Errorf("Unexpected split: %d lines", len(got))
	}
}
