package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

type uploadResponse struct {
	ID           string              `json:"id"`
	OriginalName string              `json:"originalName"`
	FileSize     int64               `json:"fileSize"`
	MimeType     string              `json:"mimeType"`
	Status       domain.ResumeStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func (rt *Router) uploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, codeValidationFailed, "file exceeds the upload size limit")
			return
		}
		writeError(w, http.StatusBadRequest, codeValidationFailed, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "could not read uploaded file")
		return
	}

	principal := principalFromContext(r.Context())
	resume, err := rt.uploader.Upload(r.Context(), principal.UserID, domain.FileUpload{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         int64(len(data)),
		Data:         data,
	})
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordUpload(rt.service, "rejected", 0)
		}
		writeDomainError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordUpload(rt.service, "accepted", resume.FileSize)
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:           resume.ID,
		OriginalName: resume.OriginalName,
		FileSize:     resume.FileSize,
		MimeType:     resume.MimeType,
		Status:       resume.Status,
		CreatedAt:    resume.CreatedAt,
	})
}

type resumeDetailResponse struct {
	domain.Resume
	AnalysisSummary *domain.AnalysisSummary `json:"analysisSummary,omitempty"`
}

func (rt *Router) getResume(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	resume, err := rt.library.Get(r.Context(), r.PathValue("id"), principal.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resumeDetailResponse{
		Resume:          *resume,
		AnalysisSummary: resume.Summary(),
	})
}

type listResponse struct {
	Resumes    []domain.Resume   `json:"resumes"`
	Pagination domain.Pagination `json:"pagination"`
}

func (rt *Router) listResumes(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	filter, ok := parseListFilter(w, r)
	if !ok {
		return
	}
	filter.OwnerID = principal.UserID

	resumes, pagination, err := rt.library.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Resumes: resumes, Pagination: pagination})
}

func parseListFilter(w http.ResponseWriter, r *http.Request) (domain.ListFilter, bool) {
	var filter domain.ListFilter
	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "page must be a positive integer")
			return filter, false
		}
		filter.Page = page
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return filter, false
		}
		filter.Limit = limit
	}
	if raw := query.Get("status"); raw != "" {
		status := domain.ResumeStatus(raw)
		switch status {
		case domain.StatusUploaded, domain.StatusProcessing, domain.StatusCompleted, domain.StatusFailed:
			filter.Status = status
		default:
			writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown status filter")
			return filter, false
		}
	}
	return filter, true
}

func (rt *Router) deleteResume(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	id := r.PathValue("id")
	if err := rt.library.Delete(r.Context(), id, principal.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "message": "resume deleted"})
}

type analyzeRequest struct {
	TargetJob string `json:"targetJob"`
}

type analyzeResponse struct {
	ResumeID     string              `json:"resumeId"`
	Status       domain.ResumeStatus `json:"status"`
	Analysis     domain.Analysis     `json:"analysis"`
	ProcessingMs int64               `json:"processingMs"`
}

func (rt *Router) analyzeResume(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid json body")
		return
	}

	principal := principalFromContext(r.Context())
	id := r.PathValue("id")

	start := time.Now()
	outcome, err := rt.analysis.RequestAnalysis(r.Context(), id, principal.UserID, req.TargetJob)
	if err != nil {
		rt.recordAnalysis("failed", time.Since(start))
		writeDomainError(w, err)
		return
	}
	rt.recordAnalysis("completed", time.Since(start))

	writeJSON(w, http.StatusOK, analyzeResponse{
		ResumeID:     id,
		Status:       domain.StatusCompleted,
		Analysis:     outcome.Analysis,
		ProcessingMs: outcome.ProcessingMs,
	})
}

func (rt *Router) recordAnalysis(status string, duration time.Duration) {
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis(rt.service, status, duration)
	}
}

func (rt *Router) recordSkillsRecognized(count int) {
	if rt.metrics != nil {
		rt.metrics.RecordSkillsRecognized(rt.service, count)
	}
}

type bulletPointsRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

var bulletPointCategories = map[string]bool{
	"experience":   true,
	"skills":       true,
	"achievements": true,
	"education":    true,
}

func (rt *Router) generateBulletPoints(w http.ResponseWriter, r *http.Request) {
	var req bulletPointsRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid json body")
		return
	}
	if !bulletPointCategories[req.Category] {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "category must be one of experience, skills, achievements, education")
		return
	}
	if req.Count == 0 {
		req.Count = 5
	}
	if req.Count < 1 || req.Count > 10 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "count must be between 1 and 10")
		return
	}

	principal := principalFromContext(r.Context())
	points, err := rt.analysis.GenerateBulletPoints(r.Context(), r.PathValue("id"), principal.UserID, req.Category, req.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category":     req.Category,
		"bulletPoints": points,
	})
}

type skillMatchRequest struct {
	TargetJob string `json:"targetJob"`
}

func (rt *Router) matchSkills(w http.ResponseWriter, r *http.Request) {
	var req skillMatchRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid json body")
		return
	}
	if req.TargetJob == "" {
		req.TargetJob = domain.DefaultTargetRole
	}

	principal := principalFromContext(r.Context())
	report, err := rt.analysis.MatchSkills(r.Context(), r.PathValue("id"), principal.UserID, req.TargetJob)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rt.recordSkillsRecognized(len(report.CandidateSkills))
	writeJSON(w, http.StatusOK, map[string]any{
		"targetJob":  req.TargetJob,
		"skillMatch": report,
	})
}

// decodeOptionalJSON tolerates an empty body so callers may omit optional
// request objects entirely.
func decodeOptionalJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
