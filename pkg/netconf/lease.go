package netconf

import (
	"fmt"
	"net"
)

// Route is a single routing table entry granted by a lease. A destination
// and netmask of all zeroes is the default route.
type Route struct {
	Destination net.IP
	Netmask     net.IP
	Gateway     net.IP
}

func (r Route) Equal(o Route) bool {
	return ipEqual(r.Destination, o.Destination) &&
		ipEqual(r.Netmask, o.Netmask) &&
		ipEqual(r.Gateway, o.Gateway)
}

func (r Route) IsDefault() bool {
	return ipZero(r.Destination) && ipZero(r.Netmask)
}

func (r Route) String() string {
	return fmt.Sprintf("%s,%s,%s", ipString(r.Destination), ipString(r.Netmask), ipString(r.Gateway))
}

// FQDN carries DHCP option 81 as received.
type FQDN struct {
	Flags  uint8
	RCode1 uint8
	RCode2 uint8
	Name   string
}

// Lease is an immutable snapshot of the parameters granted by one DHCP
// transaction. An unset Address means the lease was lost or released.
type Lease struct {
	Address   net.IP
	Netmask   net.IP
	Broadcast net.IP
	MTU       int
	Routes    []Route

	DNSServers []net.IP
	DNSDomain  string
	DNSSearch  string

	NTPServers []net.IP
	NISDomain  string
	NISServers []net.IP

	Hostname string
	FQDN     *FQDN
	RootPath string

	ServerID   net.IP
	ServerName string

	LeaseTime   uint32
	RenewalTime uint32
	RebindTime  uint32
}

// Released reports whether this snapshot represents losing the lease rather
// than holding one.
func (l *Lease) Released() bool {
	return ipZero(l.Address)
}

func ipZero(ip net.IP) bool {
	return len(ip) == 0 || ip.Equal(net.IPv4zero)
}

func ipEqual(a, b net.IP) bool {
	if len(a) == 0 || len(b) == 0 {
		return ipZero(a) == ipZero(b)
	}
	return a.Equal(b)
}

func ipString(ip net.IP) string {
	if len(ip) == 0 {
		return "0.0.0.0"
	}
	return ip.String()
}

func joinIPs(addrs []net.IP) string {
	out := ""
	for i, a := range addrs {
		if i > 0 {
			out += " "
		}
		out += a.String()
	}
	return out
}

// networkOf masks addr down to its subnet address.
func networkOf(addr, netmask net.IP) net.IP {
	a := addr.To4()
	m := netmask.To4()
	if a == nil || m == nil {
		return net.IPv4zero
	}
	return net.IPv4(a[0]&m[0], a[1]&m[1], a[2]&m[2], a[3]&m[3])
}
