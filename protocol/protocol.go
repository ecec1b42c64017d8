// Package protocol implements the trace wire formats shared by the firmware
// and the host tools: ITM packets on SWO and the heartbeat line.
package protocol

// Version represents the ledswitch firmware version
const Version = "0.1.0"

// TracePort is the ITM stimulus port carrying all firmware text output.
const TracePort = 0
