package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/seo-assistant/internal/tasks"
)

type analyzeRequest struct {
	Keyword string `json:"keyword" validate:"required"`
	Goal    string `json:"goal,omitempty"`
}

type bulkRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1,max=50,dive,required"`
	Goal     string   `json:"goal,omitempty"`
}

type calendarRequest struct {
	Keywords       []string `json:"keywords" validate:"required,min=1,max=100,dive,required"`
	TimeframeWeeks int      `json:"timeframe_weeks" validate:"required,min=1,max=52"`
	Goal           string   `json:"goal,omitempty"`
}

type taskRequest struct {
	Operation string `json:"operation" validate:"required,oneof=analyze brief article"`
	Keyword   string `json:"keyword" validate:"required"`
	Goal      string `json:"goal,omitempty"`
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation, writing the 400 response itself on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return false
	}
	return true
}

// handleAnalyze runs retrieval and context design synchronously.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	rc, err := s.pipeline.AnalyzeKeyword(r.Context(), req.Keyword, req.Goal)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, rc)
}

// handleBrief generates a content brief synchronously.
func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	brief, err := s.pipeline.GenerateBrief(r.Context(), req.Keyword, req.Goal)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, brief)
}

// handleArticle dispatches article generation as a background task and
// returns 202 with the task ID. Articles take minutes; clients poll.
func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	taskID, err := s.taskManager.Dispatch(tasks.OpArticle, req.Keyword, req.Goal)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"task_id": taskID,
		"status":  "queued",
	})
}

// handleCreateTask dispatches any supported operation as a background task.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	taskID, err := s.taskManager.Dispatch(tasks.Operation(req.Operation), req.Keyword, req.Goal)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"task_id": taskID,
		"status":  "queued",
	})
}

// handleGetTask returns the current snapshot of a background task.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.taskManager.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, task)
}

// handleBulk briefs a batch of keywords synchronously.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.coordinator.Process(r.Context(), req.Keywords, req.Goal)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCalendar plans a publishing calendar synchronously.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	var req calendarRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	cal, err := s.planner.Plan(r.Context(), req.Keywords, req.TimeframeWeeks, req.Goal)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, cal)
}

// handleListRuns lists recent generation runs from the database.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	runs, err := s.database.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns a single generation run by ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run id")
		return
	}
	run, err := s.database.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

// handleGetRunArtifact returns the stored artifact for one pipeline step of
// a run, e.g. /runs/{id}/artifacts/content_brief.
func (s *Server) handleGetRunArtifact(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run id")
		return
	}
	content, err := s.database.GetArtifact(r.Context(), runID, r.PathValue("step"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "artifact not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
