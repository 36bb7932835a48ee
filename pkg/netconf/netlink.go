package netconf

import (
	"net"

	"github.com/vishvananda/netlink"
)

// NetlinkOps implements NetOps against the kernel's routing and address
// tables.
type NetlinkOps struct{}

func (NetlinkOps) AddAddress(ifname string, addr, netmask, broadcast net.IP) error {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return err
	}

	nladdr := &netlink.Addr{
		IPNet: &net.IPNet{IP: addr, Mask: net.IPMask(netmask.To4())},
	}
	if !ipZero(broadcast) {
		nladdr.Broadcast = broadcast
	}
	return netlink.AddrAdd(link, nladdr)
}

func (NetlinkOps) DelAddress(ifname string, addr, netmask net.IP) error {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return err
	}

	nladdr := &netlink.Addr{
		IPNet: &net.IPNet{IP: addr, Mask: net.IPMask(netmask.To4())},
	}
	return netlink.AddrDel(link, nladdr)
}

func (NetlinkOps) AddRoute(ifname string, dest, netmask, gateway net.IP, metric int) error {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return err
	}
	return netlink.RouteAdd(nlRoute(link, dest, netmask, gateway, metric))
}

func (NetlinkOps) DelRoute(ifname string, dest, netmask, gateway net.IP, metric int) error {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return err
	}
	return netlink.RouteDel(nlRoute(link, dest, netmask, gateway, metric))
}

func (NetlinkOps) SetMTU(ifname string, mtu int) error {
	link, err := netlink.LinkByName(ifname)
	if err != nil {
		return err
	}
	return netlink.LinkSetMTU(link, mtu)
}

func nlRoute(link netlink.Link, dest, netmask, gateway net.IP, metric int) *netlink.Route {
	route := &netlink.Route{
		LinkIndex: link.Attrs().Index,
		Dst:       &net.IPNet{IP: dest.To4(), Mask: net.IPMask(netmask.To4())},
		Priority:  metric,
	}
	if !ipZero(gateway) {
		route.Gw = gateway
	}
	return route
}
