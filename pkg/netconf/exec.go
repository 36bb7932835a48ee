package netconf

import (
	"bytes"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/okonji/dhclientd/internal/metrics"
)

// DefaultScript is the lifecycle hook run unless the configuration points
// elsewhere. A missing default script is silently skipped; a missing custom
// one is logged.
const DefaultScript = "/usr/local/libexec/dhclientd-hook"

// Spawner launches detached helper processes. Children are fire and
// forget: their exit status is never reported back to the engine.
type Spawner interface {
	Spawn(path string, args ...string) error
	SpawnInput(input []byte, path string, args ...string) error
}

// DetachedSpawner starts children without waiting on them, reaping each in
// a goroutine so finished helpers do not linger as zombies.
type DetachedSpawner struct{}

func (DetachedSpawner) Spawn(path string, args ...string) error {
	return start(exec.Command(path, args...))
}

func (DetachedSpawner) SpawnInput(input []byte, path string, args ...string) error {
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(input)
	return start(cmd)
}

func start(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		log.Errorf("error executing %q: %v", cmd.Path, err)
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// spawnService runs a service restart or helper command, absorbing any
// launch failure.
func (e *Engine) spawnService(path string, args ...string) {
	if path == "" {
		return
	}
	if err := e.spawn.Spawn(path, args...); err != nil {
		if e.metricsEnabled {
			metrics.SpawnFailures.Inc()
		}
	}
}

// runScript fires the lifecycle hook with the interface's info file and one
// of the verbs "new", "up" or "down".
func (e *Engine) runScript(iface *Interface, verb string) {
	script := e.opts.Script
	if script == "" || verb == "" {
		return
	}

	if _, err := os.Stat(script); err != nil {
		if script != DefaultScript {
			log.Errorf("`%s': %v", script, err)
		}
		return
	}

	log.Debugf("[HOOK] exec \"%s %s %s\"", script, iface.InfoFile, verb)
	if err := e.spawn.Spawn(script, iface.InfoFile, verb); err != nil {
		if e.metricsEnabled {
			metrics.SpawnFailures.Inc()
		}
		return
	}
	if e.metricsEnabled {
		metrics.HookExecutions.WithLabelValues(verb).Inc()
	}
}
