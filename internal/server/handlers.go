package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slacklinehq/slackline/pkg/cache"
	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/observability"
	"github.com/slacklinehq/slackline/pkg/practice"
	"github.com/slacklinehq/slackline/pkg/project"
	"github.com/slacklinehq/slackline/pkg/store"
)

// scheduleRequest is the body for POST /api/v1/schedule.
type scheduleRequest struct {
	Tasks     []project.Task     `json:"tasks"`
	Overrides map[string]float64 `json:"overrides,omitempty"`
}

// dragRequest is the body for POST /api/v1/drag.
type dragRequest struct {
	Tasks     []project.Task     `json:"tasks"`
	TaskID    string             `json:"task_id"`
	Start     float64            `json:"start"`
	Overrides map[string]float64 `json:"overrides,omitempty"`
}

// dragResponse carries the propagated overrides and the schedule
// recomputed under them.
type dragResponse struct {
	Overrides map[string]float64 `json:"overrides"`
	Schedule  *cpm.Schedule      `json:"schedule"`
}

// practiceRequest is the body for POST /api/v1/practice.
type practiceRequest struct {
	Tasks     []project.Task     `json:"tasks"`
	Answers   []practice.Answer  `json:"answers"`
	Overrides map[string]float64 `json:"overrides,omitempty"`
}

type practiceResponse struct {
	Correct    bool                `json:"correct"`
	Duration   float64             `json:"duration"`
	Mismatches []practice.Mismatch `json:"mismatches,omitempty"`
}

// createProjectRequest is the body for POST /api/v1/projects.
type createProjectRequest struct {
	Name  string         `json:"name"`
	Tasks []project.Task `json:"tasks"`
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Tasks) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "no tasks provided"))
		return
	}
	s.writeSchedule(w, r, req.Tasks, req.Overrides)
}

// writeSchedule computes (or recalls) the schedule for tasks and writes it.
func (s *Server) writeSchedule(w http.ResponseWriter, r *http.Request, tasks []project.Task, overrides map[string]float64) {
	key := cache.ScheduleKey(tasks, overrides)
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		observability.Cache().OnCacheHit(r.Context(), "schedule")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "schedule")

	start := time.Now()
	observability.Engine().OnComputeStart(r.Context(), len(tasks))
	sched := cpm.Compute(tasks, overrides)
	observability.Engine().OnComputeComplete(r.Context(), len(tasks), len(sched.CriticalPath()), time.Since(start))

	data, err := json.Marshal(sched)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode schedule"))
		return
	}
	if err := s.cache.Set(r.Context(), key, data, cache.DefaultTTL); err != nil {
		s.logger.Debug("cache set failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "schedule", len(data))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Tasks) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "no tasks provided"))
		return
	}

	base := cpm.Compute(req.Tasks, req.Overrides)
	if _, ok := base.ES[req.TaskID]; !ok {
		writeError(w, errors.New(errors.ErrCodeTaskNotFound, "unknown task: %s", req.TaskID))
		return
	}

	overrides := cpm.Propagate(req.TaskID, req.Start, base, req.Tasks, req.Overrides)
	observability.Engine().OnDrag(r.Context(), req.TaskID, len(overrides)-len(req.Overrides))
	writeJSON(w, http.StatusOK, dragResponse{
		Overrides: overrides,
		Schedule:  cpm.Compute(req.Tasks, overrides),
	})
}

func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	var req practiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Tasks) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "no tasks provided"))
		return
	}

	sched := cpm.Compute(req.Tasks, req.Overrides)
	mismatches := practice.Check(sched, req.Answers)
	writeJSON(w, http.StatusOK, practiceResponse{
		Correct:    len(mismatches) == 0,
		Duration:   sched.Duration,
		Mismatches: mismatches,
	})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "list projects"))
		return
	}
	if projects == nil {
		projects = []*project.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p := project.New(req.Name, req.Tasks)
	if err := p.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), p); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "store project"))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	var p project.Project
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := p.Validate(); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), &p); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "store project"))
		return
	}
	writeJSON(w, http.StatusOK, &p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProjectSchedule(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.writeSchedule(w, r, p.Tasks, nil)
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Code:  string(code),
		Error: errors.UserMessage(err),
	})
}

// writeStoreError translates store sentinel errors before the generic path.
func writeStoreError(w http.ResponseWriter, err error) {
	if err == store.ErrNotFound {
		writeError(w, errors.New(errors.ErrCodeProjectNotFound, "project not found"))
		return
	}
	writeError(w, errors.Wrap(errors.ErrCodeStore, err, "project store"))
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTask, errors.ErrCodeInvalidDuration,
		errors.ErrCodeInvalidProject, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidAnswer,
		errors.ErrCodeCycle, errors.ErrCodeUnknownDependency, errors.ErrCodeDuplicateTask:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeProjectNotFound,
		errors.ErrCodeTaskNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
