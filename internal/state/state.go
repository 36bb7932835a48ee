package state

import (
	"net"
)

// Route is one remembered routing table entry, stored as the same
// destination/netmask/gateway triple the engine works with.
type Route struct {
	Destination net.IP
	Netmask     net.IP
	Gateway     net.IP
}

// Record holds what the engine last applied for one interface. Persisting it
// lets a restarted daemon sweep its own stale routes instead of leaking them.
type Record struct {
	Address net.IP
	Netmask net.IP
	MTU     int
	Routes  []Route
}

type Store interface {
	Save(ifname string, rec *Record) error
	Load(ifname string) (*Record, error)
	Delete(ifname string) error
	Close() error
}
