package netconf

import (
	"errors"
	"fmt"
	"net"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/metrics"
)

// Reconcile brings the host's address, route and name-service state into
// agreement with lease, mutating iface in place. It is a best-effort,
// at-least-once sequence: only a failure to apply the primary address is
// fatal, everything else is logged and absorbed. The caller must not run
// two reconciliations for the same interface concurrently.
func (e *Engine) Reconcile(iface *Interface, lease *Lease) error {
	if iface == nil || lease == nil {
		return errors.New("nil interface or lease")
	}

	start := time.Now()

	// Always sweep first: the link may hold more than one address, so
	// routes we added for a previous lease can outlive it.
	e.removeStaleRoutes(iface, lease)

	if lease.Released() {
		e.teardown(iface)
		e.observe("released", start)
		return nil
	}

	if e.opts.MTU {
		e.applyMTU(iface, lease)
	}

	if e.opts.ARPCheck && !ipEqual(lease.Address, iface.PreviousAddress) {
		e.probeAddress(iface, lease.Address)
	}

	if err := e.net.AddAddress(iface.Name, lease.Address, lease.Netmask, lease.Broadcast); err != nil && !IsExist(err) {
		log.Errorf("[ADDR] could not add %s/%s to %s: %v", lease.Address, lease.Netmask, iface.Name, err)
		e.observe("error", start)
		return fmt.Errorf("add address %s/%s: %v", lease.Address, lease.Netmask, err)
	}

	addrChanged := !ipEqual(lease.Address, iface.PreviousAddress)

	if addrChanged && !ipZero(iface.PreviousAddress) {
		if err := e.net.DelAddress(iface.Name, iface.PreviousAddress, iface.PreviousNetmask); err != nil {
			log.Warnf("[ADDR] could not remove old address %s from %s: %v", iface.PreviousAddress, iface.Name, err)
		}
	}

	// The kernel adds the subnet route itself when the address comes up,
	// but without our metric. Re-add it with the metric and drop the
	// metric-less duplicate. Host routes have no subnet route to fix.
	if addrChanged && e.opts.Metric > 0 && !lease.Netmask.Equal(net.IPv4bcast) {
		subnet := networkOf(lease.Address, lease.Netmask)
		if err := e.net.AddRoute(iface.Name, subnet, lease.Netmask, net.IPv4zero, e.opts.Metric); err != nil && !IsExist(err) {
			log.Warnf("[ROUTE] could not re-add subnet route %s/%s: %v", subnet, lease.Netmask, err)
		}
		if err := e.net.DelRoute(iface.Name, subnet, lease.Netmask, net.IPv4zero, 0); err != nil {
			log.Warnf("[ROUTE] could not remove unmetered subnet route %s/%s: %v", subnet, lease.Netmask, err)
		}
	}

	iface.PreviousRoutes = e.applyRoutes(iface, lease)

	if e.opts.DNS && len(lease.DNSServers) > 0 {
		e.writeResolv(iface.Name, lease)
	} else {
		log.Debugf("[DNS] no dns information to write")
	}

	if e.opts.NTP && len(lease.NTPServers) > 0 {
		e.writeNTP(iface.Name, lease)
	}

	if e.opts.NIS && (len(lease.NISServers) > 0 || lease.NISDomain != "") {
		e.writeNIS(iface.Name, lease)
	}

	// Resolver state is in place now, so a reverse lookup can work.
	e.applyHostname(lease)

	e.writeInfo(iface, lease)

	if !ipEqual(lease.Address, iface.PreviousAddress) || !ipEqual(lease.Netmask, iface.PreviousNetmask) {
		iface.PreviousAddress = lease.Address
		iface.PreviousNetmask = lease.Netmask
		if e.metricsEnabled {
			metrics.AddressChanges.Inc()
		}
		e.runScript(iface, "new")
	} else {
		e.runScript(iface, "up")
	}

	e.observe("ok", start)
	return nil
}

// removeStaleRoutes deletes every route we added for the previous lease that
// the new one no longer grants. Routes present in both leases are left
// untouched so they never flap.
func (e *Engine) removeStaleRoutes(iface *Interface, lease *Lease) {
	for _, old := range iface.PreviousRoutes {
		if ipZero(old.Destination) && !e.opts.Gateway {
			continue
		}

		kept := false
		if !lease.Released() {
			for _, nr := range lease.Routes {
				if nr.Equal(old) {
					kept = true
					break
				}
			}
		}
		if kept {
			continue
		}

		if err := e.net.DelRoute(iface.Name, old.Destination, old.Netmask, old.Gateway, e.opts.Metric); err != nil {
			log.Warnf("[ROUTE] could not remove %s from %s: %v", old, iface.Name, err)
			continue
		}
		if e.metricsEnabled {
			metrics.RouteRemovals.Inc()
		}
	}
}

// teardown handles a released or expired lease: forget our routes, restore
// the native MTU and drop the address we configured.
func (e *Engine) teardown(iface *Interface) {
	iface.PreviousRoutes = nil

	if iface.MTU != 0 && iface.PreviousMTU != iface.MTU {
		if err := e.net.SetMTU(iface.Name, iface.MTU); err != nil {
			log.Warnf("[MTU] could not restore MTU %d on %s: %v", iface.MTU, iface.Name, err)
		}
		iface.PreviousMTU = iface.MTU
	}

	if ipZero(iface.PreviousAddress) {
		return
	}

	if err := e.net.DelAddress(iface.Name, iface.PreviousAddress, iface.PreviousNetmask); err != nil {
		log.Warnf("[ADDR] could not remove %s from %s: %v", iface.PreviousAddress, iface.Name, err)
	}
	iface.PreviousAddress = nil
	iface.PreviousNetmask = nil

	e.restoreResolv(iface.Name)

	e.runScript(iface, "down")
}

func (e *Engine) applyMTU(iface *Interface, lease *Lease) {
	mtu := iface.MTU
	if lease.MTU != 0 {
		mtu = lease.MTU
	}

	if mtu == 0 || mtu == iface.PreviousMTU {
		return
	}

	if err := e.net.SetMTU(iface.Name, mtu); err != nil {
		log.Warnf("[MTU] could not set MTU %d on %s: %v", mtu, iface.Name, err)
		return
	}
	iface.PreviousMTU = mtu
}

// applyRoutes installs the lease's routes and returns the set to remember.
// A route we already own from the previous lease survived the stale sweep
// and is still in place, so it is remembered without touching the kernel;
// re-adding it would be an idempotent repeat at best and a flap at worst.
func (e *Engine) applyRoutes(iface *Interface, lease *Lease) []Route {
	var remembered []Route

	for _, r := range lease.Routes {
		if r.IsDefault() && !e.opts.Gateway {
			continue
		}

		owned := false
		for _, old := range iface.PreviousRoutes {
			if old.Equal(r) {
				owned = true
				break
			}
		}
		if owned {
			remembered = append(remembered, r)
			continue
		}

		if err := e.net.AddRoute(iface.Name, r.Destination, r.Netmask, r.Gateway, e.opts.Metric); err != nil {
			log.Warnf("[ROUTE] could not add %s on %s: %v", r, iface.Name, err)
			continue
		}
		if e.metricsEnabled {
			metrics.RouteAdds.Inc()
		}

		remembered = append(remembered, r)
	}

	return remembered
}

func (e *Engine) observe(outcome string, start time.Time) {
	if !e.metricsEnabled {
		return
	}
	metrics.Reconciliations.WithLabelValues(outcome).Inc()
	metrics.ReconcileLatency.Observe(time.Since(start).Seconds())
}
