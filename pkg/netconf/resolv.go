package netconf

import (
	"bytes"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/metrics"
)

// writeResolv publishes the lease's name servers, either through the
// resolvconf helper when the host has one (it owns merging contributions
// from multiple interfaces) or by overwriting the resolver file directly.
func (e *Engine) writeResolv(ifname string, lease *Lease) {
	content := renderResolv(ifname, lease)

	if e.resolvconfPresent() {
		log.Debugf("[DNS] sending DNS information to resolvconf")
		if err := e.spawn.SpawnInput(content, e.paths.Resolvconf, "-a", ifname); err != nil {
			if e.metricsEnabled {
				metrics.SpawnFailures.Inc()
			}
			return
		}
	} else {
		log.Debugf("[DNS] writing %s", e.paths.ResolvFile)
		if err := os.WriteFile(e.paths.ResolvFile, content, 0644); err != nil {
			log.Errorf("[DNS] write %s: %v", e.paths.ResolvFile, err)
			return
		}
	}

	if e.metricsEnabled {
		metrics.ConfigWrites.WithLabelValues("resolv").Inc()
	}

	// The stdlib resolver notices resolv.conf changes on its own, no
	// re-init call is needed here.
}

// restoreResolv withdraws this interface's contribution on lease loss.
// Only the resolvconf path has an explicit teardown; in direct-file mode
// the next write simply overwrites.
func (e *Engine) restoreResolv(ifname string) {
	if !e.resolvconfPresent() {
		return
	}

	log.Debugf("[DNS] removing information from resolvconf")
	e.spawnService(e.paths.Resolvconf, "-d", ifname)
}

func (e *Engine) resolvconfPresent() bool {
	if e.paths.Resolvconf == "" {
		return false
	}
	_, err := os.Stat(e.paths.Resolvconf)
	return err == nil
}

func renderResolv(ifname string, lease *Lease) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Generated by dhclientd for interface %s\n", ifname)
	if lease.DNSSearch != "" {
		fmt.Fprintf(&b, "search %s\n", lease.DNSSearch)
	} else if lease.DNSDomain != "" {
		fmt.Fprintf(&b, "search %s\n", lease.DNSDomain)
	}
	for _, ns := range lease.DNSServers {
		fmt.Fprintf(&b, "nameserver %s\n", ns)
	}

	return b.Bytes()
}
