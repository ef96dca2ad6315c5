// Package handlers provides the HTTP request handlers for TaskTrackerService.
//
// The handlers decode and validate requests, call the in-memory task store and
// write JSON responses. Every failure is reported as {"message": "..."} with the
// status code of its apperror.Kind, logged, and counted per endpoint.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"TaskTrackerService/apperror"
	"TaskTrackerService/commands"
	"TaskTrackerService/metrics"
	"TaskTrackerService/models"
	"TaskTrackerService/response"
	"TaskTrackerService/store"
	"TaskTrackerService/validation"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 100 << 10

const (
	endpointList       = "GET /tasks"
	endpointByPriority = "GET /tasks/priority/{level}"
	endpointGet        = "GET /tasks/{id}"
	endpointCreate     = "POST /tasks"
	endpointUpdate     = "PUT /tasks/{id}"
	endpointDelete     = "DELETE /tasks/{id}"
	endpointUnmatched  = "unmatched"
)

var errInvalidBody = apperror.New(apperror.ValidationError, "Invalid request body")

// TaskHandler serves the /tasks endpoints.
type TaskHandler struct {
	store     *store.TaskStore
	validator *validation.Validator
	metrics   *metrics.Metrics
	log       *logrus.Logger
	mux       *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *TaskHandler) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	h.mux.ServeHTTP(res, req)
}

// NewTaskHandler wires the task routes to st.
func NewTaskHandler(st *store.TaskStore, v *validation.Validator, m *metrics.Metrics, log *logrus.Logger) *TaskHandler {
	h := &TaskHandler{
		store:     st,
		validator: v,
		metrics:   m,
		log:       log,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc(endpointList, h.ListTasksHandler)
	h.mux.HandleFunc(endpointByPriority, h.GetTasksByPriorityHandler)
	h.mux.HandleFunc(endpointGet, h.GetTaskHandler)
	h.mux.HandleFunc(endpointCreate, h.CreateTaskHandler)
	h.mux.HandleFunc(endpointUpdate, h.UpdateTaskHandler)
	h.mux.HandleFunc(endpointDelete, h.DeleteTaskHandler)

	// Method-less patterns only match when no method above does.
	h.mux.HandleFunc("/tasks", h.methodNotAllowed(http.MethodGet, http.MethodPost))
	h.mux.HandleFunc("/tasks/{id}", h.methodNotAllowed(http.MethodGet, http.MethodPut, http.MethodDelete))
	h.mux.HandleFunc("/tasks/priority/{level}", h.methodNotAllowed(http.MethodGet))
	h.mux.HandleFunc("/", h.NotFoundHandler)

	h.observeStore()

	return h
}

var _ http.Handler = &TaskHandler{}

// ListTasksHandler returns all tasks, optionally filtered and sorted.
//
// Example request:
// GET /tasks?completed=false&sort=desc
//
// Both parameters are optional; any value other than true/false for completed
// or asc/desc for sort is rejected with 400.
func (h *TaskHandler) ListTasksHandler(res http.ResponseWriter, req *http.Request) {
	h.metrics.EndpointCalls.WithLabelValues(endpointList).Inc()
	query := req.URL.Query()

	completed, err := h.validator.CompletedFilter(query["completed"])
	if err != nil {
		h.fail(res, endpointList, "list tasks", err)
		return
	}
	sort, err := h.validator.SortOrder(query["sort"])
	if err != nil {
		h.fail(res, endpointList, "list tasks", err)
		return
	}

	tasks := h.store.List(models.ListOptions{Completed: completed, Sort: sort})
	h.log.WithFields(logrus.Fields{
		"task operation": "list tasks",
		"request":        endpointList,
		"count":          len(tasks),
	}).Info("Processing request")
	h.write(res, endpointList, http.StatusOK, tasks)
}

// GetTasksByPriorityHandler returns the tasks with the given priority level.
// The level is matched case-insensitively.
//
// Example request:
// GET /tasks/priority/HIGH
func (h *TaskHandler) GetTasksByPriorityHandler(res http.ResponseWriter, req *http.Request) {
	h.metrics.EndpointCalls.WithLabelValues(endpointByPriority).Inc()

	priority, err := h.validator.PriorityLevel(req.PathValue("level"))
	if err != nil {
		h.fail(res, endpointByPriority, "get tasks by priority", err)
		return
	}

	tasks := h.store.ListByPriority(priority)
	h.log.WithFields(logrus.Fields{
		"task operation": "get tasks by priority",
		"request":        endpointByPriority,
		"priority":       priority,
		"count":          len(tasks),
	}).Info("Processing request")
	h.write(res, endpointByPriority, http.StatusOK, tasks)
}

// GetTaskHandler returns a single task.
//
// Example request:
// GET /tasks/1
//
// Example response:
//
//	{
//	  "id": 1,
//	  "title": "Set up environment",
//	  "description": "Install Node.js, npm, and git",
//	  "completed": true,
//	  "priority": "medium",
//	  "createdAt": "2024-04-01T10:00:00Z"
//	}
func (h *TaskHandler) GetTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.metrics.EndpointCalls.WithLabelValues(endpointGet).Inc()

	cmd, err := commands.ParseTaskId(req.PathValue("id"))
	if err != nil {
		h.fail(res, endpointGet, "get task by id", err)
		return
	}
	task, err := h.store.Get(cmd.Id)
	if err != nil {
		h.fail(res, endpointGet, "get task by id", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"task operation": "get task by id",
		"request":        endpointGet,
		"id":             cmd.Id,
	}).Info("Processing request")
	h.write(res, endpointGet, http.StatusOK, task)
}

// CreateTaskHandler creates a task from the request body.
// title and description are required non-blank strings and are stored trimmed.
// completed defaults to false and priority to "medium".
//
// Example request body:
//
//	{
//	  "title": "Write docs",
//	  "description": "Document the API",
//	  "priority": "high"
//	}
//
// The created task is returned with status 201.
func (h *TaskHandler) CreateTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.metrics.EndpointCalls.WithLabelValues(endpointCreate).Inc()

	var cmd commands.CreateTaskCommand
	if err := decodeBody(res, req, &cmd); err != nil {
		h.fail(res, endpointCreate, "create a task", err)
		return
	}
	task, err := h.validator.CreateTask(cmd)
	if err != nil {
		h.fail(res, endpointCreate, "create a task", err)
		return
	}

	task = h.store.Create(task)
	h.observeStore()

	h.log.WithFields(logrus.Fields{
		"task operation": "create a task",
		"request":        endpointCreate,
		"id":             task.Id,
	}).Info("Processing request")
	h.write(res, endpointCreate, http.StatusCreated, task)
}

// UpdateTaskHandler changes the fields present in the request body.
// Fields left out keep their value; id and createdAt never change.
//
// Example request:
// PUT /tasks/1
//
//	{
//	  "completed": true
//	}
func (h *TaskHandler) UpdateTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.metrics.EndpointCalls.WithLabelValues(endpointUpdate).Inc()

	id, err := commands.ParseTaskId(req.PathValue("id"))
	if err != nil {
		h.fail(res, endpointUpdate, "update a task", err)
		return
	}
	var cmd commands.UpdateTaskCommand
	if err := decodeBody(res, req, &cmd); err != nil {
		h.fail(res, endpointUpdate, "update a task", err)
		return
	}
	if _, err := h.store.Get(id.Id); err != nil {
		h.fail(res, endpointUpdate, "update a task", err)
		return
	}
	patch, err := h.validator.UpdateTask(cmd)
	if err != nil {
		h.fail(res, endpointUpdate, "update a task", err)
		return
	}

	task, err := h.store.Update(id.Id, patch)
	if err != nil {
		h.fail(res, endpointUpdate, "update a task", err)
		return
	}
	h.observeStore()

	h.log.WithFields(logrus.Fields{
		"task operation": "update a task",
		"request":        endpointUpdate,
		"id":             task.Id,
		"noop":           cmd.Empty(),
	}).Info("Processing request")
	h.write(res, endpointUpdate, http.StatusOK, task)
}

// DeleteTaskHandler removes a task.
//
// Example request:
// DELETE /tasks/1
//
// Returns:
//
//	{
//	  "message": "Task deleted successfully"
//	}
func (h *TaskHandler) DeleteTaskHandler(res http.ResponseWriter, req *http.Request) {
	h.metrics.EndpointCalls.WithLabelValues(endpointDelete).Inc()

	cmd, err := commands.ParseTaskId(req.PathValue("id"))
	if err != nil {
		h.fail(res, endpointDelete, "delete a task", err)
		return
	}
	if err := h.store.Delete(cmd.Id); err != nil {
		h.fail(res, endpointDelete, "delete a task", err)
		return
	}
	h.observeStore()

	h.log.WithFields(logrus.Fields{
		"task operation": "delete a task",
		"request":        endpointDelete,
		"id":             cmd.Id,
	}).Info("Processing request")
	h.write(res, endpointDelete, http.StatusOK, response.Message{Message: "Task deleted successfully"})
}

// NotFoundHandler answers requests that match no route.
func (h *TaskHandler) NotFoundHandler(res http.ResponseWriter, req *http.Request) {
	h.fail(res, endpointUnmatched, "route request", apperror.ErrRouteNotFound)
}

func (h *TaskHandler) methodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(res http.ResponseWriter, req *http.Request) {
		res.Header().Set("Allow", allow)
		h.fail(res, endpointUnmatched, "route request", apperror.ErrMethodNotAllowed)
	}
}

// decodeBody reads a JSON object into v. An empty body decodes as {};
// anything after the first JSON value makes the body invalid.
func decodeBody(res http.ResponseWriter, req *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(res, req.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidBody
	}
	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

func (h *TaskHandler) observeStore() {
	h.metrics.SetTasks(h.store.Count())
}

func (h *TaskHandler) write(res http.ResponseWriter, endpoint string, status int, v any) {
	if err := response.WriteJSON(res, status, v); err != nil {
		h.metrics.Errors.WithLabelValues(endpoint).Inc()
		h.log.WithFields(logrus.Fields{
			"request": endpoint,
		}).Error(errors.Wrap(err, "could not encode response"))
	}
}

// fail maps err to its status code and writes it as a message body.
// Errors outside the apperror taxonomy are hidden behind a generic message.
func (h *TaskHandler) fail(res http.ResponseWriter, endpoint, operation string, err error) {
	h.metrics.Errors.WithLabelValues(endpoint).Inc()

	kind := apperror.KindOf(err)
	status := kind.Status()
	message := err.Error()

	entry := h.log.WithFields(logrus.Fields{
		"task operation": operation,
		"request":        endpoint,
		"kind":           kind.String(),
	})
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Field != "" {
		entry = entry.WithField("field", appErr.Field)
	}
	if kind == apperror.Internal {
		entry.Errorf("%+v", err)
		message = "Internal server error"
	} else {
		entry.Warn(message)
	}

	if err := response.WriteMessage(res, status, message); err != nil {
		entry.Error(errors.Wrap(err, "could not encode error response"))
	}
}
