package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/callen/resume-analyzer/internal/extract"
	"github.com/callen/resume-analyzer/internal/fetch"
	"github.com/callen/resume-analyzer/internal/store"
	"github.com/callen/resume-analyzer/internal/types"
)

// maxUploadBytes caps resume uploads at 10 MB.
const maxUploadBytes = 10 << 20

var validate = validator.New()

// UploadJSON is the JSON alternative to a multipart resume upload.
type UploadJSON struct {
	Filename       string `json:"filename" validate:"required"`
	ContentBase64  string `json:"content_base64" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
}

// MatchRequest asks for a stored resume to be matched against a job,
// given either as inline text or as a URL to fetch.
type MatchRequest struct {
	JobDescription string `json:"job_description"`
	JobURL         string `json:"job_url" validate:"omitempty,url"`
}

// AnalysisResponse is the full stateless analysis of one uploaded resume.
type AnalysisResponse struct {
	Filename        string                 `json:"filename"`
	Profile         *types.Profile         `json:"profile"`
	ATS             *types.ATSResult       `json:"ats"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Match           *types.MatchResult     `json:"match,omitempty"`
}

// resumeUpload is a resume document read from either upload form.
type resumeUpload struct {
	Filename       string
	Data           []byte
	JobDescription string
}

// readResumeUpload reads a resume from a multipart form (file field) or a
// JSON body (filename + content_base64). On failure it writes the error
// response and returns false.
func (s *Server) readResumeUpload(w http.ResponseWriter, r *http.Request) (*resumeUpload, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
			return nil, false
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Missing file field")
			return nil, false
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to read upload: "+err.Error())
			return nil, false
		}
		if len(data) > maxUploadBytes {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "File exceeds the 10 MB limit")
			return nil, false
		}

		return &resumeUpload{
			Filename:       header.Filename,
			Data:           data,
			JobDescription: r.FormValue("job_description"),
		}, true
	}

	var req UploadJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "filename and content_base64 are required")
		return nil, false
	}

	data, err := base64.StdEncoding.DecodeString(req.ContentBase64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "content_base64 is not valid base64")
		return nil, false
	}
	if len(data) > maxUploadBytes {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "File exceeds the 10 MB limit")
		return nil, false
	}

	return &resumeUpload{
		Filename:       req.Filename,
		Data:           data,
		JobDescription: req.JobDescription,
	}, true
}

// analyzeDocument runs extraction, parsing, and scoring on an upload. On
// failure it writes the error response (415 for unsupported formats, 422 for
// unreadable documents) and returns false.
func (s *Server) analyzeDocument(w http.ResponseWriter, up *resumeUpload) (*types.Profile, *types.ATSResult, bool) {
	text, err := extract.Extract(up.Data, extract.DetectFormat(up.Filename))
	if err != nil {
		var unsupported *extract.UnsupportedFormatError
		var extraction *extract.ExtractionError
		switch {
		case errors.As(err, &unsupported):
			s.errorResponse(w, http.StatusUnsupportedMediaType, err.Error())
		case errors.As(err, &extraction):
			s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.errorResponse(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		}
		return nil, nil, false
	}

	profile := s.parser.Parse(text)
	return profile, s.scorer.Score(profile, text), true
}

// profileFromPath loads the stored profile named by the {id} path value. On
// failure it writes the error response and returns false.
func (s *Server) profileFromPath(w http.ResponseWriter, r *http.Request) (*store.StoredProfile, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return nil, false
	}

	rec, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Resume not found")
			return nil, false
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}

	return rec, true
}

// handleCreateResume ingests a resume document and persists its analysis.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readResumeUpload(w, r)
	if !ok {
		return
	}

	profile, atsResult, ok := s.analyzeDocument(w, up)
	if !ok {
		return
	}

	rec := &store.StoredProfile{
		ID:       uuid.New(),
		Filename: up.Filename,
		Profile:  *profile,
		ATS:      *atsResult,
	}
	if err := s.store.SaveProfile(r.Context(), rec); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, rec)
}

// handleListResumes lists stored resume summaries, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	summaries, err := s.store.ListProfiles(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": summaries,
		"count":   len(summaries),
	})
}

// handleGetResume returns one stored resume record.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.profileFromPath(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDeleteResume removes a stored resume and its match history.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	if err := s.store.DeleteProfile(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Resume not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleATS serves a freshly computed compatibility score for a stored
// resume. The stored copy is only a cache; scores are always recomputed.
func (s *Server) handleATS(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.profileFromPath(w, r)
	if !ok {
		return
	}

	result := s.scorer.Score(&rec.Profile, rec.Profile.RawText)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRecommendations serves improvement suggestions for a stored resume.
// ?enrich=true adds model-generated suggestions when an API key is
// configured, falling back to the rule output on any failure.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.profileFromPath(w, r)
	if !ok {
		return
	}

	atsResult := s.scorer.Score(&rec.Profile, rec.Profile.RawText)

	var recs []types.Recommendation
	if r.URL.Query().Get("enrich") == "true" {
		recs = s.engine.RecommendWithEnrichment(r.Context(), &rec.Profile, atsResult)
	} else {
		recs = s.engine.Recommend(&rec.Profile, atsResult)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// handleMatch matches a stored resume against a job description and records
// the result in the profile's history.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.profileFromPath(w, r)
	if !ok {
		return
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_url must be a valid URL")
		return
	}
	if (req.JobDescription == "") == (req.JobURL == "") {
		s.errorResponse(w, http.StatusBadRequest, "Exactly one of job_description or job_url is required")
		return
	}

	jobText := req.JobDescription
	if req.JobURL != "" {
		posting, err := fetch.JobPosting(r.Context(), req.JobURL, nil)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job posting: "+err.Error())
			return
		}
		jobText = posting.Text
	}

	result := s.matcher.Match(&rec.Profile, jobText)

	record := &store.MatchRecord{
		ID:             uuid.New(),
		ProfileID:      rec.ID,
		JobDescription: jobText,
		Result:         *result,
	}
	if err := s.store.SaveMatch(r.Context(), record); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleListMatches serves a stored resume's match history, newest first.
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	matches, err := s.store.ListMatches(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"matches": matches,
		"count":   len(matches),
	})
}

// handleStats serves aggregates over everything stored.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

// handleAnalyze runs the full pipeline on an uploaded resume without
// persisting anything. An inline job_description adds a match result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readResumeUpload(w, r)
	if !ok {
		return
	}

	profile, atsResult, ok := s.analyzeDocument(w, up)
	if !ok {
		return
	}

	var recs []types.Recommendation
	if r.URL.Query().Get("enrich") == "true" {
		recs = s.engine.RecommendWithEnrichment(r.Context(), profile, atsResult)
	} else {
		recs = s.engine.Recommend(profile, atsResult)
	}

	resp := AnalysisResponse{
		Filename:        up.Filename,
		Profile:         profile,
		ATS:             atsResult,
		Recommendations: recs,
	}
	if up.JobDescription != "" {
		resp.Match = s.matcher.Match(profile, up.JobDescription)
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
