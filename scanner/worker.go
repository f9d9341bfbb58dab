package scanner

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/messersm/pyscan/logging"
)

// DialFunc opens a connection to address with the given timeout. The pool
// uses net.DialTimeout unless a replacement is injected.
type DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// Worker repeatedly pulls a job from the shared queue, performs one
// connection attempt, and records the classified outcome. It terminates on
// its own when the queue drains and cooperatively when its stop flag is set.
type Worker struct {
	queue     *JobQueue
	collector *Collector
	timeout   time.Duration
	dial      DialFunc
	faults    *atomic.Int64
	stop      atomic.Bool
}

// Stop requests cooperative termination. The worker honors the request at
// the top of its loop; an attempt already blocked in a connect call is
// allowed to finish, which bounds shutdown latency to one timeout period.
func (w *Worker) Stop() {
	w.stop.Store(true)
}

func (w *Worker) run() {
	logger := logging.Logger()
	for {
		if w.stop.Load() {
			return
		}
		job, ok := w.queue.Pop()
		if !ok {
			// Queue drained; normal termination for this worker.
			return
		}
		state, err := w.attempt(job)
		if err != nil {
			// An error that is neither a timeout nor a recognized
			// connection failure must not be recorded as any state.
			// It is fatal for this worker only.
			w.faults.Add(1)
			logger.Error("unclassified connect error",
				"host", job.Host, "port", job.Port, "error", err)
			return
		}
		res := ScanResult{
			Host:     job.Host,
			Port:     job.Port,
			Protocol: job.Protocol,
			State:    state,
		}
		if state == StateOpen {
			res.Service = ServiceName(job.Port)
		}
		w.collector.Append(res)
	}
}

// attempt performs one connection attempt and classifies the outcome.
func (w *Worker) attempt(job Job) (PortState, error) {
	address := net.JoinHostPort(job.Host, strconv.Itoa(job.Port))
	conn, err := w.dial(string(job.Protocol), address, w.timeout)
	if err == nil {
		_ = conn.Close()
		return StateOpen, nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StateFiltered, nil
	}
	if isConnectionFailure(err) {
		return StateClosed, nil
	}
	return "", err
}

// isConnectionFailure reports whether the target actively rejected the
// attempt before the timeout. Refusal, reset, the unreachable family, and
// failed name resolution all count as closed; the mapping is enumerated
// here rather than assumed OS-universal.
func isConnectionFailure(err error) bool {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EHOSTUNREACH),
		errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// Windows reports refusal with different wording.
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "actively refused")
}
