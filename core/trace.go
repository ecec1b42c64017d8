package core

var newline = []byte{'\n'}

// Enabled reports whether the debugger turned on ITM and stimulus port 0.
// Without a debugger attached both read zero and the FIFO never reports
// ready, so writes must be skipped rather than waited on.
func (m *ITM) Enabled() bool {
	return m.TCR.Read()&itmTCRITMENA != 0 && m.TER.Read()&itmTERPort0 != 0
}

// Write sends b byte by byte on stimulus port 0, spinning on FIFO ready.
func (m *ITM) Write(b []byte) {
	if !m.Enabled() {
		return
	}
	for _, c := range b {
		for !m.Stim0.Ready() {
		}
		m.Stim0.WriteByte(c)
	}
}

// WriteLine sends b followed by a newline.
func (m *ITM) WriteLine(b []byte) {
	m.Write(b)
	m.Write(newline)
}
