package netconf

import (
	"net"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// applyHostname derives a hostname from the lease and applies it when
// policy asks for one, or when the current hostname is clearly nobody's
// choice (unset or a placeholder).
func (e *Engine) applyHostname(lease *Lease) {
	var candidate string
	if e.opts.Hostname && lease.Hostname == "" {
		candidate = lookupHostname(lease.Address)
	}

	current, err := os.Hostname()
	if err != nil {
		log.Warnf("[HOST] gethostname: %v", err)
		current = ""
	}

	if !e.opts.Hostname && current != "" && current != "(none)" && current != "localhost" {
		return
	}

	if lease.Hostname != "" {
		candidate = lease.Hostname
	}
	if candidate == "" {
		return
	}

	log.Infof("[HOST] setting hostname to `%s'", candidate)
	if err := setHostname(candidate); err != nil {
		log.Warnf("[HOST] sethostname %s: %v", candidate, err)
	}
}

// lookupHostname reverse resolves addr and returns the first name, cut at
// the first whitespace or control character.
func lookupHostname(addr net.IP) string {
	if ipZero(addr) {
		return ""
	}

	names, err := net.LookupAddr(addr.String())
	if err != nil || len(names) == 0 {
		return ""
	}

	return trimHostname(strings.TrimSuffix(names[0], "."))
}

func trimHostname(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] <= ' ' {
			return name[:i]
		}
	}
	return name
}
