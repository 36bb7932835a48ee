package netconf

// Options is the read-only policy for reconciliation, supplied by the
// operator rather than the lease.
type Options struct {
	Gateway  bool
	MTU      bool
	DNS      bool
	NTP      bool
	NIS      bool
	Hostname bool
	ARPCheck bool

	Metric   int
	Script   string
	ClassID  string
	ClientID string
}

// Paths are the deploy-time locations of downstream configuration files and
// the commands that own them.
type Paths struct {
	ResolvFile string
	Resolvconf string

	NTPFile        string
	NTPService     string
	NTPRestartArgs []string
	NTPDriftFile   string
	NTPLogFile     string

	OpenNTPFile        string
	OpenNTPService     string
	OpenNTPRestartArgs []string

	NISFile        string
	NISService     string
	NISRestartArgs []string
}

// Engine reconciles the host's network configuration with DHCP leases.
type Engine struct {
	opts  Options
	paths Paths
	net   NetOps
	spawn Spawner

	metricsEnabled bool
}

func NewEngine(opts Options, paths Paths, netops NetOps, spawn Spawner) *Engine {
	return &Engine{
		opts:  opts,
		paths: paths,
		net:   netops,
		spawn: spawn,
	}
}
