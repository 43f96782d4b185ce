package domain

import "time"

type ResumeStatus string

const (
	StatusUploaded   ResumeStatus = "uploaded"
	StatusProcessing ResumeStatus = "processing"
	StatusCompleted  ResumeStatus = "completed"
	StatusFailed     ResumeStatus = "failed"
)

// MinNormalizedTextLen is the minimum number of normalized characters
// extraction must yield before a resume record may be created.
const MinNormalizedTextLen = 50

// DefaultTargetRole is used when an analysis request carries no target role.
const DefaultTargetRole = "Software Engineer"

// CodeAnalysisFailed is the stable code persisted on a failed analysis attempt.
const CodeAnalysisFailed = "ANALYSIS_FAILED"

// ProcessingError is the failure detail persisted on a failed record.
// Only the message/code pair is ever exposed to callers.
type ProcessingError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type Resume struct {
	ID            string `json:"id"`
	OwnerID       string `json:"ownerId"`
	OriginalName  string `json:"originalName"`
	StorageName   string `json:"storageName"`
	StoragePath   string `json:"storagePath"`
	FileSize      int64  `json:"fileSize"`
	MimeType      string `json:"mimeType"`
	ExtractedText string `json:"extractedText,omitempty"`

	Status       ResumeStatus     `json:"status"`
	Analysis     *Analysis        `json:"analysis,omitempty"`
	ProcessingMs int64            `json:"processingMs,omitempty"`
	Error        *ProcessingError `json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MarkProcessing re-enters the processing state. Prior analysis results and
// failure details are cleared so that the status/analysis/error invariant
// holds at every observation point.
func (r *Resume) MarkProcessing(now time.Time) {
	r.Status = StatusProcessing
	r.Analysis = nil
	r.ProcessingMs = 0
	r.Error = nil
	r.UpdatedAt = now
}

// Complete records a successful analysis. Only legal from processing.
func (r *Resume) Complete(analysis Analysis, duration time.Duration, now time.Time) error {
	if r.Status != StatusProcessing {
		return WrapError(ErrInvalidInput, "complete analysis", transitionError(r.Status, StatusCompleted))
	}
	r.Status = StatusCompleted
	r.Analysis = &analysis
	r.ProcessingMs = duration.Milliseconds()
	r.Error = nil
	r.UpdatedAt = now
	return nil
}

// Fail records a failed analysis attempt. Only legal from processing.
func (r *Resume) Fail(perr ProcessingError, now time.Time) error {
	if r.Status != StatusProcessing {
		return WrapError(ErrInvalidInput, "fail analysis", transitionError(r.Status, StatusFailed))
	}
	r.Status = StatusFailed
	r.Analysis = nil
	r.ProcessingMs = 0
	r.Error = &perr
	r.UpdatedAt = now
	return nil
}

// WithoutText returns a copy suitable for listing projections: the extracted
// text is dropped for bandwidth and privacy.
func (r Resume) WithoutText() Resume {
	r.ExtractedText = ""
	return r
}

// FileUpload is the transport-agnostic shape of an incoming upload.
type FileUpload struct {
	OriginalName string
	MimeType     string
	Size         int64
	Data         []byte
}

// ListFilter selects resumes for listing. An empty OwnerID means all owners
// (admin surface only).
type ListFilter struct {
	OwnerID string
	Status  ResumeStatus
	Page    int
	Limit   int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// StatusCount is one row of the admin usage statistics.
type StatusCount struct {
	Status ResumeStatus `json:"status"`
	Count  int          `json:"count"`
}

type UsageStats struct {
	Total        int           `json:"total"`
	ByStatus     []StatusCount `json:"byStatus"`
	AvgProcessMs int64         `json:"avgProcessingMs"`
}

// ResumeEvent is published best-effort on lifecycle transitions.
type ResumeEvent struct {
	Type     string       `json:"type"`
	ResumeID string       `json:"resumeId"`
	OwnerID  string       `json:"ownerId"`
	Status   ResumeStatus `json:"status"`
	At       time.Time    `json:"at"`
}

const (
	EventResumeUploaded = "resume.uploaded"
	EventResumeAnalyzed = "resume.analyzed"
	EventResumeFailed   = "resume.failed"
	EventResumeDeleted  = "resume.deleted"
)
