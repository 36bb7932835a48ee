package netconf

import (
	"net"
	"strings"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/insomniacslk/dhcp/rfc1035label"
)

// fqdnEncoded is the E bit of option 81: the name is DNS wire format
// rather than plain ASCII.
const fqdnEncoded = 0x04

// LeaseFromACK flattens a DHCPACK into the engine's lease snapshot.
// Classless static routes take precedence over the router option per
// RFC 3442; plain routers become default routes.
func LeaseFromACK(ack *dhcpv4.DHCPv4) *Lease {
	l := &Lease{
		Address:    ack.YourIPAddr,
		Hostname:   ack.HostName(),
		DNSServers: ack.DNS(),
		DNSDomain:  ack.DomainName(),
		NTPServers: ack.NTPServers(),
		RootPath:   ack.RootPath(),
		ServerID:   ack.ServerIdentifier(),
		ServerName: ack.ServerHostName,
	}

	if mask := ack.SubnetMask(); mask != nil {
		l.Netmask = net.IP(mask)
	}
	if bc := ack.BroadcastAddress(); bc != nil {
		l.Broadcast = bc
	}
	if mtu, err := dhcpv4.GetUint16(dhcpv4.OptionInterfaceMTU, ack.Options); err == nil {
		l.MTU = int(mtu)
	}

	for _, r := range ack.ClasslessStaticRoute() {
		if r.Dest == nil {
			continue
		}
		l.Routes = append(l.Routes, Route{
			Destination: r.Dest.IP,
			Netmask:     net.IP(r.Dest.Mask),
			Gateway:     r.Router,
		})
	}
	if len(l.Routes) == 0 {
		for _, gw := range ack.Router() {
			l.Routes = append(l.Routes, Route{
				Destination: net.IPv4zero,
				Netmask:     net.IPv4zero,
				Gateway:     gw,
			})
		}
	}

	if search := ack.DomainSearch(); search != nil {
		l.DNSSearch = strings.Join(search.Labels, " ")
	}

	l.NISDomain = dhcpv4.GetString(dhcpv4.OptionNetworkInformationServiceDomain, ack.Options)
	l.NISServers = dhcpv4.GetIPs(dhcpv4.OptionNetworkInformationServers, ack.Options)

	if v := ack.Options.Get(dhcpv4.OptionFQDN); len(v) >= 3 {
		f := &FQDN{Flags: v[0], RCode1: v[1], RCode2: v[2]}
		rest := v[3:]
		if f.Flags&fqdnEncoded != 0 {
			if labels, err := rfc1035label.FromBytes(rest); err == nil && len(labels.Labels) > 0 {
				f.Name = labels.Labels[0]
			}
		} else {
			f.Name = string(rest)
		}
		l.FQDN = f
	}

	l.LeaseTime = uint32(ack.IPAddressLeaseTime(0) / time.Second)
	l.RenewalTime = uint32(ack.IPAddressRenewalTime(0) / time.Second)
	l.RebindTime = uint32(ack.IPAddressRebindingTime(0) / time.Second)

	return l
}
