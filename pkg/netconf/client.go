package netconf

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4/nclient4"
	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/config"
	"github.com/okonji/dhclientd/internal/logging"
	"github.com/okonji/dhclientd/internal/metrics"
	"github.com/okonji/dhclientd/internal/state"
)

const (
	acquireTimeout = 30 * time.Second
	retryInterval  = 10 * time.Second
	minRenewalWait = 30 * time.Second
)

// Client ties the reconciliation engine to one interface: it acquires
// leases, reconciles on every lease event and persists the interface state
// between runs.
type Client struct {
	Config *config.Config
	Engine *Engine
	Store  state.Store
	Iface  *Interface
}

func InitClient(cfg *config.Config) (*Client, error) {
	err := logging.SetupLogging(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}

	netif, err := net.InterfaceByName(cfg.Client.Interface)
	if err != nil {
		return nil, fmt.Errorf("[ERROR] Could not find interface %s: %v", cfg.Client.Interface, err)
	}

	if err := os.MkdirAll(cfg.Paths.InfoDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create info directory: %v", err)
	}

	store, err := state.NewBoltStore(cfg.Paths.StateDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %v", err)
	}

	iface := &Interface{
		Name:        netif.Name,
		HWAddr:      netif.HardwareAddr,
		InfoFile:    filepath.Join(cfg.Paths.InfoDir, "dhclientd-"+netif.Name+".info"),
		MTU:         netif.MTU,
		PreviousMTU: netif.MTU,
	}

	rec, err := store.Load(netif.Name)
	if err != nil {
		log.Warnf("[INIT] could not load saved state for %s: %v", netif.Name, err)
	} else if rec != nil {
		iface.PreviousAddress = rec.Address
		iface.PreviousNetmask = rec.Netmask
		if rec.MTU != 0 {
			iface.PreviousMTU = rec.MTU
		}
		for _, r := range rec.Routes {
			iface.PreviousRoutes = append(iface.PreviousRoutes, Route{
				Destination: r.Destination,
				Netmask:     r.Netmask,
				Gateway:     r.Gateway,
			})
		}
		log.Infof("[INIT] restored state for %s: address %s, %d routes",
			netif.Name, ipString(rec.Address), len(rec.Routes))
	}

	engine := NewEngine(optionsFromConfig(cfg), pathsFromConfig(cfg), NetlinkOps{}, DetachedSpawner{})
	engine.metricsEnabled = cfg.Metrics.Enabled

	if cfg.Metrics.Enabled {
		if err := metrics.StartMetricsServer(cfg.Metrics.ListenAddress); err != nil {
			log.Warnf("Could not start metrics server: %v", err)
		} else {
			log.Infof("[INIT] Metrics server listening on %s", cfg.Metrics.ListenAddress)
		}
	}

	return &Client{
		Config: cfg,
		Engine: engine,
		Store:  store,
		Iface:  iface,
	}, nil
}

// Run acquires and renews leases until interrupted, reconciling the host on
// every lease event. On shutdown it releases the lease and reconciles once
// more so the release teardown path runs.
func (c *Client) Run() error {
	defer c.Store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var current *nclient4.Lease

	for {
		lease, nl, err := c.acquire(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Errorf("[DHCP] lease acquisition failed: %v", err)
			select {
			case <-time.After(retryInterval):
				continue
			case <-ctx.Done():
				return c.shutdown(current)
			}
		}
		current = nl

		log.Infof("[DHCP] lease obtained on %s: %s/%s for %ds",
			c.Iface.Name, lease.Address, ipString(lease.Netmask), lease.LeaseTime)

		if err := c.Engine.Reconcile(c.Iface, lease); err != nil {
			log.Errorf("[RECONCILE] %v", err)
		} else {
			c.saveState()
		}

		select {
		case <-time.After(renewalWait(lease)):
			log.Infof("[DHCP] renewal time reached on %s", c.Iface.Name)
		case <-ctx.Done():
			return c.shutdown(current)
		}
	}

	return c.shutdown(current)
}

// acquire performs one DORA exchange. The protocol state machine,
// retransmission included, lives in nclient4.
func (c *Client) acquire(ctx context.Context) (*Lease, *nclient4.Lease, error) {
	client, err := nclient4.New(c.Config.Client.Interface)
	if err != nil {
		return nil, nil, fmt.Errorf("create DHCP client: %v", err)
	}
	defer client.Close()

	exCtx, cancel := context.WithTimeout(ctx, acquireTimeout)
	defer cancel()

	nl, err := client.Request(exCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("DHCP request: %v", err)
	}

	return LeaseFromACK(nl.ACK), nl, nil
}

// shutdown releases the held lease and runs the teardown reconciliation.
func (c *Client) shutdown(nl *nclient4.Lease) error {
	if nl != nil {
		client, err := nclient4.New(c.Config.Client.Interface)
		if err != nil {
			log.Warnf("[DHCP] could not create client for release: %v", err)
		} else {
			if err := client.Release(nl); err != nil {
				log.Warnf("[DHCP] release: %v", err)
			}
			client.Close()
		}
	}

	if err := c.Engine.Reconcile(c.Iface, &Lease{}); err != nil {
		log.Errorf("[RECONCILE] teardown: %v", err)
	}
	c.saveState()

	log.Infof("[INFO] Client shutting down")
	return nil
}

func (c *Client) saveState() {
	rec := &state.Record{
		Address: c.Iface.PreviousAddress,
		Netmask: c.Iface.PreviousNetmask,
		MTU:     c.Iface.PreviousMTU,
	}
	for _, r := range c.Iface.PreviousRoutes {
		rec.Routes = append(rec.Routes, state.Route{
			Destination: r.Destination,
			Netmask:     r.Netmask,
			Gateway:     r.Gateway,
		})
	}

	if err := c.Store.Save(c.Iface.Name, rec); err != nil {
		log.Warnf("[STATE] could not save state for %s: %v", c.Iface.Name, err)
	}
}

// renewalWait picks how long to hold the lease before renewing: T1 when the
// server supplied one, half the lease time otherwise, floored so a broken
// server cannot make us hammer it.
func renewalWait(lease *Lease) time.Duration {
	t1 := time.Duration(lease.RenewalTime) * time.Second
	if t1 == 0 {
		t1 = time.Duration(lease.LeaseTime) * time.Second / 2
	}
	if t1 < minRenewalWait {
		t1 = minRenewalWait
	}
	return t1
}

func optionsFromConfig(cfg *config.Config) Options {
	script := cfg.Client.Script
	if script == "" {
		script = DefaultScript
	}

	return Options{
		Gateway:  cfg.Client.Gateway,
		MTU:      cfg.Client.MTU,
		DNS:      cfg.Client.DNS,
		NTP:      cfg.Client.NTP,
		NIS:      cfg.Client.NIS,
		Hostname: cfg.Client.Hostname,
		ARPCheck: cfg.Client.ARPCheck,
		Metric:   cfg.Client.Metric,
		Script:   script,
		ClassID:  cfg.Client.ClassID,
		ClientID: cfg.Client.ClientID,
	}
}

func pathsFromConfig(cfg *config.Config) Paths {
	return Paths{
		ResolvFile:         cfg.Paths.ResolvFile,
		Resolvconf:         cfg.Paths.Resolvconf,
		NTPFile:            cfg.Paths.NTPFile,
		NTPService:         cfg.Paths.NTPService,
		NTPRestartArgs:     strings.Fields(cfg.Paths.NTPRestartArgs),
		NTPDriftFile:       cfg.Paths.NTPDriftFile,
		NTPLogFile:         cfg.Paths.NTPLogFile,
		OpenNTPFile:        cfg.Paths.OpenNTPFile,
		OpenNTPService:     cfg.Paths.OpenNTPService,
		OpenNTPRestartArgs: strings.Fields(cfg.Paths.OpenNTPRestartArgs),
		NISFile:            cfg.Paths.NISFile,
		NISService:         cfg.Paths.NISService,
		NISRestartArgs:     strings.Fields(cfg.Paths.NISRestartArgs),
	}
}
