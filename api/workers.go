package api

import (
	"context"
	"time"

	"github.com/messersm/pyscan/logging"
	"github.com/messersm/pyscan/ports"
	"github.com/messersm/pyscan/scanner"
)

// Defaults applied when a task omits tuning knobs.
const (
	defaultTaskTimeout = time.Second
	defaultTaskWorkers = 100
)

// StartWorkers launches background goroutines that process queued scan tasks.
func StartWorkers(store TaskStore, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go workerLoop(store)
	}
}

func workerLoop(store TaskStore) {
	logger := logging.Logger()
	for {
		taskID, err := store.PopFromQueue()
		if err != nil {
			logger.Error("worker failed to pop task", "error", err)
			time.Sleep(time.Second)
			continue
		}

		task, err := store.GetTask(taskID)
		if err != nil {
			if err == ErrTaskNotFound {
				logger.Warn("worker task disappeared", "task_id", taskID)
				continue
			}
			logger.Error("worker failed to load task", "task_id", taskID, "error", err)
			continue
		}

		task.Status = StatusRunning
		task.Error = ""
		task.Results = nil
		task.CompletedAt = nil
		if err := store.UpdateTask(task); err != nil {
			logger.Error("worker failed to mark task running", "task_id", taskID, "error", err)
			continue
		}

		cfg, err := taskConfig(task)
		if err != nil {
			failTask(task, store, err)
			continue
		}

		results, err := scanner.Run(context.Background(), cfg)
		if err != nil {
			failTask(task, store, err)
			continue
		}

		task.Status = StatusCompleted
		task.Results = results
		now := time.Now().UTC()
		task.CompletedAt = &now

		if err := store.UpdateTask(task); err != nil {
			logger.Error("worker failed to update task", "task_id", task.ID, "error", err)
		}
	}
}

// taskConfig translates a stored task into an engine configuration.
func taskConfig(task *ScanTask) (scanner.Config, error) {
	portList, err := ports.Parse(task.Ports)
	if err != nil {
		return scanner.Config{}, err
	}

	timeout := defaultTaskTimeout
	if task.TimeoutMs > 0 {
		timeout = time.Duration(task.TimeoutMs) * time.Millisecond
	}
	workers := task.Workers
	if workers <= 0 {
		workers = defaultTaskWorkers
	}

	return scanner.Config{
		Hosts:   task.Hosts,
		Ports:   portList,
		Timeout: timeout,
		Workers: workers,
	}, nil
}

func failTask(task *ScanTask, store TaskStore, err error) {
	logger := logging.Logger()
	logger.Error("worker task failed", "task_id", task.ID, "error", err)
	task.Status = StatusFailed
	task.Error = err.Error()
	task.Results = nil
	now := time.Now().UTC()
	task.CompletedAt = &now
	if updateErr := store.UpdateTask(task); updateErr != nil {
		logger.Error("worker failed to persist failed task", "task_id", task.ID, "error", updateErr)
	}
}
