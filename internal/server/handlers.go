package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/types"
)

// documentPayload carries document bytes over the wire as base64.
type documentPayload struct {
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content"`
}

type evaluateRequest struct {
	CandidateID  string                `json:"candidate_id"`
	Name         string                `json:"name,omitempty"`
	Email        string                `json:"email,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	ResumeText   string                `json:"resume_text,omitempty"`
	Document     *documentPayload      `json:"document,omitempty"`
	Requirements types.JobRequirements `json:"requirements"`
}

func (r *evaluateRequest) toInput() (*types.CandidateInput, error) {
	input := &types.CandidateInput{
		CandidateID:  r.CandidateID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		ResumeText:   r.ResumeText,
		Requirements: r.Requirements,
	}
	if r.Document != nil {
		data, err := base64.StdEncoding.DecodeString(r.Document.Content)
		if err != nil {
			return nil, &types.ValidationError{Field: "document.content", Message: "must be base64 encoded"}
		}
		input.Document = &types.RawDocument{Data: data, Filename: r.Document.Filename}
	}
	return input, nil
}

// handleEvaluate screens one candidate synchronously.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	decision, err := s.pipeline.Evaluate(r.Context(), input)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, decision)
}

type batchRequest struct {
	Candidates []evaluateRequest `json:"candidates"`
}

type batchResponse struct {
	ID string `json:"id,omitempty"`
	*types.BatchRun
}

// handleEvaluateBatch screens a list of candidates sequentially and
// returns per-candidate outcomes. When a store is configured the run is
// persisted and its id returned.
func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Candidates) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "candidates must not be empty")
		return
	}

	candidates := make([]types.CandidateInput, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		input, err := c.toInput()
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		candidates = append(candidates, *input)
	}

	run := s.pipeline.RunBatch(r.Context(), candidates)

	resp := batchResponse{BatchRun: run}
	if s.db != nil {
		if id, err := s.db.SaveBatchRun(r.Context(), run); err == nil {
			resp.ID = id.String()
		} else {
			s.logger.Warn("saving batch run", zap.Error(err))
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

type fetchRequest struct {
	URL string `json:"url"`
}

type fetchResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Provider    string `json:"provider"`
	Size        int    `json:"size"`
	Content     string `json:"content"`
}

// handleFetch downloads a resume from a cloud share link and returns
// its bytes base64 encoded, ready to feed back into /evaluate.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	result, err := s.downloader.Download(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, fetchResponse{
		Filename:    result.Filename,
		ContentType: result.ContentType,
		Provider:    string(result.Provider),
		Size:        len(result.Content),
		Content:     base64.StdEncoding.EncodeToString(result.Content),
	})
}

// handleGetDecision returns a stored decision by id.
func (s *Server) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "decision store not configured")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid decision id")
		return
	}

	record, err := s.db.GetDecision(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "decision not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleListDecisions returns stored decisions, filtered by query
// parameters candidate_id, job_id, decision, and limit.
func (s *Server) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "decision store not configured")
		return
	}

	filters := db.DecisionFilters{
		CandidateID: r.URL.Query().Get("candidate_id"),
		JobID:       r.URL.Query().Get("job_id"),
		Decision:    r.URL.Query().Get("decision"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filters.Limit = n
	}

	records, err := s.db.ListDecisions(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"decisions": records})
}

// handleGetBatch returns a stored batch run by id.
func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "decision store not configured")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid batch id")
		return
	}

	record, err := s.db.GetBatchRun(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "batch not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}
