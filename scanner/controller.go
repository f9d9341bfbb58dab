package scanner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/messersm/pyscan/logging"
)

// drainPollInterval is how often the controller checks for queue drain while
// waiting, so that external cancellation is observed promptly between polls.
const drainPollInterval = 100 * time.Millisecond

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid scan configuration")

// Config holds the parameters for one scan run. All knobs are explicit;
// there are no process-wide defaults.
type Config struct {
	Hosts     []string
	Ports     []int
	Protocols []Protocol // empty means TCP only
	Timeout   time.Duration
	Workers   int

	// Dial overrides the connection dialer. Nil means net.DialTimeout.
	Dial DialFunc
}

// Validate rejects malformed configuration before any worker starts.
func (c Config) Validate() error {
	if len(c.Hosts) == 0 {
		return fmt.Errorf("%w: no hosts given", ErrInvalidConfig)
	}
	for _, h := range c.Hosts {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("%w: empty host", ErrInvalidConfig)
		}
	}
	if len(c.Ports) == 0 {
		return fmt.Errorf("%w: no ports given", ErrInvalidConfig)
	}
	for _, p := range c.Ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("%w: port %d out of range 1-65535", ErrInvalidConfig, p)
		}
	}
	for _, proto := range c.Protocols {
		if proto != ProtocolTCP {
			return fmt.Errorf("%w: unsupported protocol %q", ErrInvalidConfig, proto)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: worker count must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Controller orchestrates a single scan run: it fills the job queue with
// the cartesian product of protocols, ports, and hosts, starts the worker
// pool, polls for queue drain, then stops the pool and hands off results.
type Controller struct {
	cfg       Config
	protocols []Protocol
	queue     *JobQueue
	collector *Collector
}

// NewController validates the configuration and prepares a run. A non-nil
// error means no goroutine was started and no scan will happen.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	protocols := cfg.Protocols
	if len(protocols) == 0 {
		protocols = []Protocol{ProtocolTCP}
	}
	total := len(protocols) * len(cfg.Ports) * len(cfg.Hosts)
	return &Controller{
		cfg:       cfg,
		protocols: protocols,
		queue:     NewJobQueue(),
		collector: NewCollector(total),
	}, nil
}

// Total reports how many jobs the run will process.
func (ctl *Controller) Total() int {
	return len(ctl.protocols) * len(ctl.cfg.Ports) * len(ctl.cfg.Hosts)
}

// Completed reports how many results have been collected so far. Safe to
// call from another goroutine while Run is in progress.
func (ctl *Controller) Completed() int {
	return ctl.collector.Len()
}

// Run executes the scan and returns the collected results sorted by host,
// port, and protocol. Cancelling the context stops the run early; the
// results gathered up to that point are still returned, together with the
// context's error.
func (ctl *Controller) Run(ctx context.Context) ([]ScanResult, error) {
	logger := logging.Logger()

	// Filling: duplicates in the input intentionally produce duplicate jobs.
	for _, proto := range ctl.protocols {
		for _, port := range ctl.cfg.Ports {
			for _, host := range ctl.cfg.Hosts {
				ctl.queue.Push(Job{Protocol: proto, Port: port, Host: host})
			}
		}
	}

	pool := StartPool(ctl.queue, ctl.collector, ctl.cfg.Workers, ctl.cfg.Timeout, ctl.cfg.Dial)

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	var runErr error
drain:
	for {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break drain
		case <-ticker.C:
			if ctl.queue.Empty() || pool.Alive() == 0 {
				break drain
			}
		}
	}

	// Stopping bounds shutdown to roughly one timeout period: workers finish
	// their in-flight attempt, then observe the stop flag and exit.
	pool.StopAll()

	if faults := pool.Faults(); faults > 0 {
		logger.Warn("scan finished with unclassified errors", "count", faults)
	}

	results := ctl.collector.Results()
	sortResults(results)
	return results, runErr
}

// Run is a convenience wrapper for callers that do not need mid-run
// progress inspection.
func Run(ctx context.Context, cfg Config) ([]ScanResult, error) {
	ctl, err := NewController(cfg)
	if err != nil {
		return nil, err
	}
	return ctl.Run(ctx)
}

func sortResults(results []ScanResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Host != results[j].Host {
			return results[i].Host < results[j].Host
		}
		if results[i].Port != results[j].Port {
			return results[i].Port < results[j].Port
		}
		return results[i].Protocol < results[j].Protocol
	})
}
