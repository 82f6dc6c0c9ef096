package bridge

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/VanDung-dev/NamedCache/cache"
	"github.com/VanDung-dev/NamedCache/config"
	"github.com/VanDung-dev/NamedCache/metrics"
)

// Open builds an Adapter from cfg: a fresh store, and metrics plus a /metrics
// server when cfg.Metrics.Enabled. A nil cfg means config.Default().
func Open(cfg *config.Config) (*Adapter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics(cfg.Metrics.Namespace)
	}

	a := NewAdapter(cache.New(cfg.StoreOptions()), m)
	if m != nil {
		a.server = metrics.NewMetricsServer(cfg.Metrics.Address, m)
		a.server.StartAsync(func(err error) {
			glog.Errorf("metrics server on %s stopped: %v", cfg.Metrics.Address, err)
		})
		glog.Infof("metrics served on %s", cfg.Metrics.Address)
	}
	return a, nil
}

// Close stops the metrics server, if any. The store is left intact.
func (a *Adapter) Close() error {
	if a.server == nil {
		return nil
	}
	err := a.server.Stop()
	a.server = nil
	return err
}

// Recover is deferred by exported entry points so that no panic crosses the
// boundary. The entry point returns its zero or preset result instead.
func Recover(op string) {
	if r := recover(); r != nil {
		glog.Errorf("%s: recovered from panic: %v", op, r)
	}
}
