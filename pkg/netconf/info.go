package netconf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/metrics"
)

// writeInfo dumps the lease as shell variable assignments so the lifecycle
// hook can source it. Optional values are simply omitted when the lease
// does not carry them.
func (e *Engine) writeInfo(iface *Interface, lease *Lease) {
	log.Debugf("[INFO] writing %s", iface.InfoFile)

	var b bytes.Buffer

	fmt.Fprintf(&b, "IPADDR='%s'\n", ipString(lease.Address))
	fmt.Fprintf(&b, "NETMASK='%s'\n", ipString(lease.Netmask))
	fmt.Fprintf(&b, "BROADCAST='%s'\n", ipString(lease.Broadcast))
	if lease.MTU > 0 {
		fmt.Fprintf(&b, "MTU='%d'\n", lease.MTU)
	}

	if len(lease.Routes) > 0 {
		parts := make([]string, len(lease.Routes))
		for i, r := range lease.Routes {
			parts[i] = r.String()
		}
		fmt.Fprintf(&b, "ROUTES='%s'\n", strings.Join(parts, " "))
	}

	if lease.Hostname != "" {
		fmt.Fprintf(&b, "HOSTNAME='%s'\n", quoteShell(lease.Hostname))
	}
	if lease.DNSDomain != "" {
		fmt.Fprintf(&b, "DNSDOMAIN='%s'\n", quoteShell(lease.DNSDomain))
	}
	if lease.DNSSearch != "" {
		fmt.Fprintf(&b, "DNSSEARCH='%s'\n", quoteShell(lease.DNSSearch))
	}
	if len(lease.DNSServers) > 0 {
		fmt.Fprintf(&b, "DNSSERVERS='%s'\n", joinIPs(lease.DNSServers))
	}

	if lease.FQDN != nil {
		fmt.Fprintf(&b, "FQDNFLAGS='%d'\n", lease.FQDN.Flags)
		fmt.Fprintf(&b, "FQDNRCODE1='%d'\n", lease.FQDN.RCode1)
		fmt.Fprintf(&b, "FQDNRCODE2='%d'\n", lease.FQDN.RCode2)
		fmt.Fprintf(&b, "FQDNHOSTNAME='%s'\n", quoteShell(lease.FQDN.Name))
	}

	if len(lease.NTPServers) > 0 {
		fmt.Fprintf(&b, "NTPSERVERS='%s'\n", joinIPs(lease.NTPServers))
	}
	if lease.NISDomain != "" {
		fmt.Fprintf(&b, "NISDOMAIN='%s'\n", quoteShell(lease.NISDomain))
	}
	if len(lease.NISServers) > 0 {
		fmt.Fprintf(&b, "NISSERVERS='%s'\n", joinIPs(lease.NISServers))
	}
	if lease.RootPath != "" {
		fmt.Fprintf(&b, "ROOTPATH='%s'\n", quoteShell(lease.RootPath))
	}

	fmt.Fprintf(&b, "DHCPSID='%s'\n", ipString(lease.ServerID))
	fmt.Fprintf(&b, "DHCPSNAME='%s'\n", quoteShell(lease.ServerName))
	fmt.Fprintf(&b, "LEASETIME='%d'\n", lease.LeaseTime)
	fmt.Fprintf(&b, "RENEWALTIME='%d'\n", lease.RenewalTime)
	fmt.Fprintf(&b, "REBINDTIME='%d'\n", lease.RebindTime)
	fmt.Fprintf(&b, "INTERFACE='%s'\n", iface.Name)
	fmt.Fprintf(&b, "CLASSID='%s'\n", quoteShell(e.opts.ClassID))
	if e.opts.ClientID != "" {
		fmt.Fprintf(&b, "CLIENTID='%s'\n", quoteShell(e.opts.ClientID))
	} else {
		fmt.Fprintf(&b, "CLIENTID='%s'\n", iface.HWAddr)
	}
	fmt.Fprintf(&b, "DHCPCHADDR='%s'\n", iface.HWAddr)

	if err := os.WriteFile(iface.InfoFile, b.Bytes(), 0644); err != nil {
		log.Errorf("[INFO] write %s: %v", iface.InfoFile, err)
		return
	}

	if e.metricsEnabled {
		metrics.ConfigWrites.WithLabelValues("info").Inc()
	}
}

// quoteShell escapes embedded single quotes so values survive a shell
// source: ' becomes '\''.
func quoteShell(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
