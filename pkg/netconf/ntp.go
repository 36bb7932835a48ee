package netconf

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/metrics"
)

// writeNTP regenerates the time service configuration. Some hosts run one
// of two different time daemons and we cannot tell which, so both
// configured file flavors are maintained; each service restarts at most
// once, and the second only when it is a different binary.
func (e *Engine) writeNTP(ifname string, lease *Lease) {
	restartNTP := false
	restartOpenNTP := false

	if e.paths.NTPFile != "" {
		if changed, err := e.writeNTPFile(e.paths.NTPFile, true, ifname, lease); err == nil && changed {
			restartNTP = true
		}
	}

	if e.paths.OpenNTPFile != "" {
		if changed, err := e.writeNTPFile(e.paths.OpenNTPFile, false, ifname, lease); err == nil && changed {
			restartOpenNTP = true
		}
	}

	if restartNTP {
		e.spawnService(e.paths.NTPService, e.paths.NTPRestartArgs...)
	}
	if restartOpenNTP && (e.paths.OpenNTPService != e.paths.NTPService || !restartNTP) {
		e.spawnService(e.paths.OpenNTPService, e.paths.OpenNTPRestartArgs...)
	}
}

// writeNTPFile rewrites file when it is missing at least one of the
// lease's servers. The time daemon has to restart to pick up a changed
// config, so an unchanged file reports no rewrite at all. The trusted
// flavor carries restrict lines plus drift and log file directives.
func (e *Engine) writeNTPFile(file string, trusted bool, ifname string, lease *Lease) (bool, error) {
	update, err := ntpNeedsUpdate(file, lease.NTPServers)
	if err != nil {
		log.Errorf("[NTP] open %s: %v", file, err)
		return false, err
	}
	if !update {
		log.Debugf("[NTP] %s already configured, skipping", file)
		if e.metricsEnabled {
			metrics.RestartsSuppressed.Inc()
		}
		return false, nil
	}

	log.Debugf("[NTP] writing %s", file)

	var b bytes.Buffer
	fmt.Fprintf(&b, "# Generated by dhclientd for interface %s\n", ifname)
	if trusted {
		b.WriteString("restrict default noquery notrust nomodify\n")
		b.WriteString("restrict 127.0.0.1\n")
	}
	for _, s := range lease.NTPServers {
		if trusted {
			fmt.Fprintf(&b, "restrict %s nomodify notrap noquery\n", s)
		}
		fmt.Fprintf(&b, "server %s\n", s)
	}
	if trusted {
		fmt.Fprintf(&b, "driftfile %s\n", e.paths.NTPDriftFile)
		fmt.Fprintf(&b, "logfile %s\n", e.paths.NTPLogFile)
	}

	if err := os.WriteFile(file, b.Bytes(), 0644); err != nil {
		log.Errorf("[NTP] write %s: %v", file, err)
		return false, err
	}

	if e.metricsEnabled {
		metrics.ConfigWrites.WithLabelValues("ntp").Inc()
	}
	return true, nil
}

// ntpNeedsUpdate reports whether file lacks a "server" directive for any of
// the given addresses. A missing file always needs the write; any other
// open error is returned to the caller.
func ntpNeedsUpdate(file string, servers []net.IP) (bool, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	defer f.Close()

	tomatch := len(servers)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && tomatch > 0 {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "server" {
			continue
		}
		for _, s := range servers {
			if fields[1] == s.String() {
				tomatch--
				break
			}
		}
	}

	return tomatch > 0, nil
}
