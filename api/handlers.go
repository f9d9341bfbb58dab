package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server bundles dependencies for HTTP handlers.
type Server struct {
	store TaskStore
}

// NewServer creates a new API server instance.
func NewServer(store TaskStore) *Server {
	return &Server{store: store}
}

// RegisterRoutes attaches handlers to the provided Gin router group.
func (s *Server) RegisterRoutes(routes gin.IRoutes) {
	routes.POST("/scans", s.createScanHandler)
	routes.GET("/scans/:id", s.getScanHandler)
}

// @Summary      Create a new scan task
// @Description  Submit a scan definition and let the service execute it asynchronously. The handler validates input, persists the task, and enqueues it for background workers before returning a UUID. Clients poll GET /scans/{id} to observe status transitions (pending, running, completed or failed); port findings are attached only after completion.
// @Tags         Scans
// @Accept       json
// @Produce      json
// @Param        scanRequest  body      CreateScanRequest     true  "Scan request parameters"
// @Success      202          {object}  ScanAcceptedResponse  "Scan accepted; poll GET /scans/{id} to track progress"
// @Failure      400          {object}  ErrorResponse         "Malformed JSON body or failed validation"
// @Failure      401          {object}  ErrorResponse         "Missing or incorrect API key"
// @Failure      429          {object}  ErrorResponse         "Rate limit exceeded for the calling client"
// @Failure      500          {object}  ErrorResponse         "Internal error while persisting or queueing the task"
// @Security     ApiKeyAuth
// @Router       /scans [post]
func (s *Server) createScanHandler(c *gin.Context) {
	var req CreateScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request payload: %v", err)})
		return
	}

	task := &ScanTask{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Hosts:     req.Hosts,
		Ports:     req.Ports,
		TimeoutMs: req.TimeoutMs,
		Workers:   req.Workers,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateTask(task); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to persist task"})
		return
	}

	if err := s.store.PushToQueue(task.ID); err != nil {
		task.Status = StatusFailed
		task.Error = "failed to queue task"
		now := time.Now().UTC()
		task.CompletedAt = &now
		_ = s.store.UpdateTask(task)

		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to queue task"})
		return
	}

	c.JSON(http.StatusAccepted, ScanAcceptedResponse{ID: task.ID, Status: task.Status})
}

// @Summary      Get scan task status and results
// @Description  Fetch the current state of a scan task. While the task is pending or running only metadata is returned; once completed the response carries the full, sorted list of port states.
// @Tags         Scans
// @Produce      json
// @Param        id   path      string        true  "Task ID (UUID)"
// @Success      200  {object}  ScanTask      "Current task state"
// @Failure      400  {object}  ErrorResponse "Task ID is not a valid UUID"
// @Failure      404  {object}  ErrorResponse "No task exists with the given ID"
// @Failure      500  {object}  ErrorResponse "Internal error while loading the task"
// @Security     ApiKeyAuth
// @Router       /scans/{id} [get]
func (s *Server) getScanHandler(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "task id must be a valid uuid"})
		return
	}

	task, err := s.store.GetTask(id)
	if err != nil {
		if err == ErrTaskNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to load task"})
		return
	}

	c.JSON(http.StatusOK, task)
}
