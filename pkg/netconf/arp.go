package netconf

import (
	"fmt"
	"net"
	"time"

	"github.com/j-keck/arping"
	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/metrics"
)

// AddressInUse probes whether another host already answers for ip on the
// given interface.
func AddressInUse(iface *net.Interface, ip net.IP, timeout time.Duration) (bool, error) {
	ip4 := ip.To4()

	if ip4 == nil {
		return false, fmt.Errorf("ARP probe only valid for IPv4, got: %v", ip)
	}

	arping.SetTimeout(timeout)
	_, _, err := arping.PingOverIface(ip4, *iface)
	switch err {
	case nil:
		// got a reply, somebody has the address
		return true, nil
	case arping.ErrTimeout:
		return false, nil
	default:
		return false, err
	}
}

// probeAddress warns when the leased address is already claimed on the
// link. The server handed it to us regardless, so this never blocks the
// reconciliation; the warning is for the operator.
func (e *Engine) probeAddress(iface *Interface, addr net.IP) {
	netif, err := net.InterfaceByName(iface.Name)
	if err != nil {
		log.Warnf("[ARP] could not look up interface %s: %v", iface.Name, err)
		return
	}

	inUse, err := AddressInUse(netif, addr, 2*time.Second)
	if err != nil {
		log.Warnf("[ARP] probe for %s failed: %v", addr, err)
		return
	}
	if inUse {
		log.Warnf("[ARP] %s is already in use on %s", addr, iface.Name)
		if e.metricsEnabled {
			metrics.ARPConflicts.Inc()
		}
	}
}
