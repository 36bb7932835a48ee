package netconf

import "net"

// Interface is the mutable per-link state the engine owns across
// reconciliations. The Previous* fields record what this engine applied
// last time, not what the kernel currently holds; the link may carry
// addresses and routes added by other actors.
type Interface struct {
	Name     string
	HWAddr   net.HardwareAddr
	InfoFile string

	// MTU is the link's native MTU, restored when a lease stops
	// supplying one.
	MTU int

	PreviousMTU     int
	PreviousAddress net.IP
	PreviousNetmask net.IP
	PreviousRoutes  []Route
}
