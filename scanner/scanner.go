// Package scanner implements the concurrent TCP connect-scan engine: a shared
// job queue, a fixed pool of workers performing timeout-bounded connection
// attempts, and a collector that accumulates the classified outcomes.
package scanner

// Protocol identifies the transport used for a connection attempt.
type Protocol string

// ProtocolTCP is the only protocol the engine currently supports.
const ProtocolTCP Protocol = "tcp"

// PortState classifies the outcome of a single connection attempt.
type PortState string

const (
	// StateOpen means the TCP handshake completed successfully.
	StateOpen PortState = "open"
	// StateClosed means the target actively refused the connection before
	// the timeout (RST, unreachable, or failed name resolution).
	StateClosed PortState = "closed"
	// StateFiltered means no response arrived within the timeout window,
	// which usually indicates a firewall silently dropping packets.
	StateFiltered PortState = "filtered"
)

// Job represents a single port scanning task. Jobs are immutable once
// created and are consumed exactly once by whichever worker dequeues them.
type Job struct {
	Protocol Protocol
	Port     int
	Host     string
}

// ScanResult represents the outcome of one connection attempt. Exactly one
// result is recorded per attempted job; results are never mutated after
// being appended to the collector.
type ScanResult struct {
	Host     string    `json:"host"`
	Port     int       `json:"port"`
	Protocol Protocol  `json:"protocol"`
	State    PortState `json:"state"`
	Service  string    `json:"service,omitempty"`
}
