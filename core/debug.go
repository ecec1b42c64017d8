package core

// TraceWriter writes one line of text to the debug trace channel.
// The slice is only valid for the duration of the call.
type TraceWriter func([]byte)

var (
	// traceWriter is installed once by platform code and never closed
	traceWriter TraceWriter = func([]byte) {} // No-op by default

	// debugEnabled gates DebugPrintln; the heartbeat is always written
	debugEnabled bool = false
)

// SetTraceWriter sets the platform-specific trace output function.
func SetTraceWriter(w TraceWriter) {
	traceWriter = w
}

// SetDebugEnabled enables or disables diagnostic lines.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether diagnostic lines are written
func IsDebugEnabled() bool {
	return debugEnabled
}

// TraceLine writes a line unconditionally.
func TraceLine(line []byte) {
	if traceWriter != nil {
		traceWriter(line)
	}
}

// DebugPrintln writes a diagnostic line when debug output is enabled.
func DebugPrintln(msg string) {
	if debugEnabled && traceWriter != nil {
		traceWriter([]byte(msg))
	}
}
