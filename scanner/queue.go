package scanner

import "sync"

// JobQueue is a concurrency-safe container of pending scan jobs. Any number
// of producers and consumers may use it simultaneously; each pushed job is
// delivered to at most one caller of Pop.
type JobQueue struct {
	mu   sync.Mutex
	jobs []Job
}

// NewJobQueue returns an empty queue.
func NewJobQueue() *JobQueue {
	return &JobQueue{}
}

// Push inserts a job unconditionally.
func (q *JobQueue) Push(job Job) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()
}

// Pop removes and returns one pending job. It never blocks; the second
// return value is false when no jobs remain.
func (q *JobQueue) Pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return Job{}, false
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true
}

// Len reports the number of pending jobs. The value is only eventually
// consistent and is intended for drain polling and progress display.
func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Empty reports whether no jobs remain.
func (q *JobQueue) Empty() bool {
	return q.Len() == 0
}
