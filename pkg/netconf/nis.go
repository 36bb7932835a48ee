package netconf

import (
	"bytes"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/metrics"
)

// writeNIS rewrites the directory service configuration and restarts its
// daemon. Unlike NTP this is unconditional: the binding daemon tolerates
// restarts cheaply and the file is tiny.
func (e *Engine) writeNIS(ifname string, lease *Lease) {
	log.Debugf("[NIS] writing %s", e.paths.NISFile)

	if lease.NISDomain != "" {
		if err := setDomainname(lease.NISDomain); err != nil {
			log.Warnf("[NIS] setdomainname %s: %v", lease.NISDomain, err)
		}
	}

	if err := os.WriteFile(e.paths.NISFile, renderNIS(ifname, lease), 0644); err != nil {
		log.Errorf("[NIS] write %s: %v", e.paths.NISFile, err)
		return
	}

	if e.metricsEnabled {
		metrics.ConfigWrites.WithLabelValues("nis").Inc()
	}

	e.spawnService(e.paths.NISService, e.paths.NISRestartArgs...)
}

func renderNIS(ifname string, lease *Lease) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Generated by dhclientd for interface %s\n", ifname)

	prefix := ""
	if lease.NISDomain != "" {
		if len(lease.NISServers) > 0 {
			prefix = fmt.Sprintf("domain %s server", lease.NISDomain)
		} else {
			fmt.Fprintf(&b, "domain %s broadcast\n", lease.NISDomain)
		}
	} else {
		prefix = "ypserver"
	}

	for _, s := range lease.NISServers {
		fmt.Fprintf(&b, "%s %s\n", prefix, s)
	}

	return b.Bytes()
}
