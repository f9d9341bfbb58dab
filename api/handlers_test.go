package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// memStore is an in-memory TaskStore for handler tests.
type memStore struct {
	mu     sync.Mutex
	tasks  map[string]*ScanTask
	queued []string
}

func newMemStore() *memStore {
	return &memStore{tasks: make(map[string]*ScanTask)}
}

func (s *memStore) CreateTask(task *ScanTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *task
	s.tasks[task.ID] = &clone
	return nil
}

func (s *memStore) GetTask(id string) (*ScanTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (s *memStore) UpdateTask(task *ScanTask) error {
	return s.CreateTask(task)
}

func (s *memStore) PushToQueue(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, taskID)
	return nil
}

func (s *memStore) PopFromQueue() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queued) == 0 {
		return "", ErrTaskNotFound
	}
	id := s.queued[0]
	s.queued = s.queued[1:]
	return id, nil
}

func newTestRouter(store TaskStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewServer(store).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestCreateScanHandler_AcceptsAndQueues(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	body := `{"hosts":["127.0.0.1"],"ports":"22,80","timeout_ms":250,"workers":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("got status %d, want 202: %s", rec.Code, rec.Body.String())
	}

	var resp ScanAcceptedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Fatalf("response id %q is not a uuid", resp.ID)
	}
	if resp.Status != StatusPending {
		t.Fatalf("got status %q, want pending", resp.Status)
	}

	task, err := store.GetTask(resp.ID)
	if err != nil {
		t.Fatalf("task not persisted: %v", err)
	}
	if task.Ports != "22,80" || task.TimeoutMs != 250 || task.Workers != 10 {
		t.Fatalf("persisted task mismatch: %+v", task)
	}
	if len(store.queued) != 1 || store.queued[0] != resp.ID {
		t.Fatalf("task not queued: %v", store.queued)
	}
}

func TestCreateScanHandler_RejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(newMemStore())

	cases := map[string]string{
		"no hosts":   `{"hosts":[],"ports":"22"}`,
		"no ports":   `{"hosts":["127.0.0.1"]}`,
		"bad json":   `{`,
		"bad worker": `{"hosts":["127.0.0.1"],"ports":"22","workers":-1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400", rec.Code)
			}
		})
	}
}

func TestGetScanHandler(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	task := &ScanTask{
		ID:        uuid.NewString(),
		Status:    StatusCompleted,
		Hosts:     []string{"127.0.0.1"},
		Ports:     "22",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.CreateTask(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+task.ID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200", rec.Code)
		}
		var got ScanTask
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if got.ID != task.ID || got.Status != StatusCompleted {
			t.Fatalf("got %+v, want %+v", got, task)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("got status %d, want 404", rec.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/scans/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400", rec.Code)
		}
	})
}
