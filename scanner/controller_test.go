package scanner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Hosts:   []string{"127.0.0.1"},
		Ports:   []int{80},
		Timeout: time.Second,
		Workers: 1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(*Config){
		"no hosts":     func(c *Config) { c.Hosts = nil },
		"empty host":   func(c *Config) { c.Hosts = []string{" "} },
		"no ports":     func(c *Config) { c.Ports = nil },
		"port zero":    func(c *Config) { c.Ports = []int{0} },
		"port too big": func(c *Config) { c.Ports = []int{65536} },
		"bad protocol": func(c *Config) { c.Protocols = []Protocol{"udp"} },
		"zero timeout": func(c *Config) { c.Timeout = 0 },
		"no workers":   func(c *Config) { c.Workers = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRun_RejectsInvalidConfigBeforeScanning(t *testing.T) {
	_, err := Run(context.Background(), Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
}

func TestRun_OpenAndClosedPorts(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	openPort := l.Addr().(*net.TCPAddr).Port

	// Grab a second port and release it so nothing is listening there.
	l2, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	closedPort := l2.Addr().(*net.TCPAddr).Port
	_ = l2.Close()
	time.Sleep(50 * time.Millisecond)

	results, err := Run(context.Background(), Config{
		Hosts:   []string{"127.0.0.1"},
		Ports:   []int{openPort, closedPort},
		Timeout: time.Second,
		Workers: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	byPort := map[int]PortState{}
	for _, res := range results {
		byPort[res.Port] = res.State
	}
	if byPort[openPort] != StateOpen {
		t.Fatalf("port %d: got %s, want open", openPort, byPort[openPort])
	}
	if byPort[closedPort] != StateClosed {
		t.Fatalf("port %d: got %s, want closed", closedPort, byPort[closedPort])
	}
}

// A complete run produces exactly one result per job, duplicates included.
func TestRun_ResultMultisetMatchesJobs(t *testing.T) {
	results, err := Run(context.Background(), Config{
		Hosts:   []string{"a.example", "b.example"},
		Ports:   []int{1, 2, 2},
		Timeout: time.Second,
		Workers: 4,
		Dial:    refusedDialer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}

	counts := map[string]int{}
	for _, res := range results {
		counts[fmt.Sprintf("%s:%d", res.Host, res.Port)]++
	}
	for _, host := range []string{"a.example", "b.example"} {
		if got := counts[host+":1"]; got != 1 {
			t.Fatalf("host %s port 1: got %d results, want 1", host, got)
		}
		if got := counts[host+":2"]; got != 2 {
			t.Fatalf("host %s port 2: got %d results, want 2", host, got)
		}
	}
}

func TestRun_ResultsSortedByHostPort(t *testing.T) {
	results, err := Run(context.Background(), Config{
		Hosts:   []string{"b.example", "a.example"},
		Ports:   []int{2, 1},
		Timeout: time.Second,
		Workers: 4,
		Dial:    refusedDialer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if prev.Host > cur.Host || (prev.Host == cur.Host && prev.Port > cur.Port) {
			t.Fatalf("results not sorted: %+v before %+v", prev, cur)
		}
	}
}

func TestRun_CancellationReturnsPartialResults(t *testing.T) {
	const timeout = 200 * time.Millisecond

	blocking := func(network, address string, dialTimeout time.Duration) (net.Conn, error) {
		time.Sleep(dialTimeout)
		return nil, timeoutError{}
	}

	ctl, err := NewController(Config{
		Hosts:   []string{"h"},
		Ports:   portRange(1, 100),
		Timeout: timeout,
		Workers: 2,
		Dial:    blocking,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(300 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results, runErr := ctl.Run(ctx)
	elapsed := time.Since(start)

	if !errors.Is(runErr, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", runErr)
	}
	if len(results) >= ctl.Total() {
		t.Fatalf("got %d results, want fewer than %d", len(results), ctl.Total())
	}
	// Shutdown latency is bounded by roughly one timeout period: the cancel
	// at 300ms plus one in-flight attempt plus scheduling slack.
	if elapsed > 300*time.Millisecond+2*timeout+500*time.Millisecond {
		t.Fatalf("run took %v, cancellation not prompt", elapsed)
	}
}

func TestController_ProgressDuringRun(t *testing.T) {
	ctl, err := NewController(Config{
		Hosts:   []string{"h"},
		Ports:   portRange(1, 20),
		Timeout: time.Second,
		Workers: 2,
		Dial:    refusedDialer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctl.Total() != 20 {
		t.Fatalf("got total %d, want 20", ctl.Total())
	}
	if ctl.Completed() != 0 {
		t.Fatalf("got completed %d before run, want 0", ctl.Completed())
	}

	results, err := ctl.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 20 || ctl.Completed() != 20 {
		t.Fatalf("got %d results, completed %d, want 20/20", len(results), ctl.Completed())
	}
}

func portRange(start, end int) []int {
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}
