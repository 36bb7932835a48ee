package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Reconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhclientd_reconciliations_total",
			Help: "Total number of lease reconciliations by outcome",
		},
		[]string{"outcome"},
	)

	ReconcileLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dhclientd_reconcile_duration_seconds",
			Help:    "Latency of one lease reconciliation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RouteAdds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dhclientd_route_adds_total",
		Help: "Number of routes added to the kernel",
	})

	RouteRemovals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dhclientd_route_removals_total",
		Help: "Number of stale routes removed from the kernel",
	})

	AddressChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dhclientd_address_changes_total",
		Help: "Number of times the lease address changed on an interface",
	})

	ConfigWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhclientd_config_writes_total",
			Help: "Number of downstream configuration files written",
		},
		[]string{"file"},
	)

	RestartsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dhclientd_ntp_restarts_suppressed_total",
		Help: "Number of NTP config rewrites skipped because the file already had every server",
	})

	HookExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dhclientd_hook_executions_total",
			Help: "Number of lifecycle hook invocations by verb",
		},
		[]string{"verb"},
	)

	SpawnFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dhclientd_spawn_failures_total",
		Help: "Number of helper processes that could not be started",
	})

	ARPConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dhclientd_arp_conflicts_total",
		Help: "Number of leased addresses already answering on the link",
	})
)

func StartMetricsServer(listenAddr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Metrics server error: %v\n", err)
		}
	}()
	return nil
}
