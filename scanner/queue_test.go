package scanner

import (
	"sync"
	"testing"
)

func TestJobQueue_PushPop(t *testing.T) {
	q := NewJobQueue()
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("pop on empty queue should report no job")
	}

	q.Push(Job{Protocol: ProtocolTCP, Port: 22, Host: "a"})
	q.Push(Job{Protocol: ProtocolTCP, Port: 80, Host: "a"})
	if q.Len() != 2 {
		t.Fatalf("got len %d want 2", q.Len())
	}

	job, ok := q.Pop()
	if !ok || job.Port != 22 {
		t.Fatalf("got %+v ok=%v, want port 22", job, ok)
	}
	job, ok = q.Pop()
	if !ok || job.Port != 80 {
		t.Fatalf("got %+v ok=%v, want port 80", job, ok)
	}
	if !q.Empty() {
		t.Fatal("queue should be empty after popping everything")
	}
}

// Every pushed job must be delivered to exactly one consumer.
func TestJobQueue_ExactlyOnceUnderConcurrency(t *testing.T) {
	const jobs = 1000
	const consumers = 8

	q := NewJobQueue()
	for i := 0; i < jobs; i++ {
		q.Push(Job{Protocol: ProtocolTCP, Port: i + 1, Host: "target"})
	}

	var mu sync.Mutex
	seen := make(map[int]int)

	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				job, ok := q.Pop()
				if !ok {
					return
				}
				mu.Lock()
				seen[job.Port]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != jobs {
		t.Fatalf("got %d distinct jobs, want %d", len(seen), jobs)
	}
	for port, count := range seen {
		if count != 1 {
			t.Fatalf("job for port %d delivered %d times", port, count)
		}
	}
}
