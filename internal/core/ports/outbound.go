package ports

import (
	"context"
	"io"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

// ResumeRepository persists and reads resume records and their lifecycle state.
type ResumeRepository interface {
	Create(ctx context.Context, r *domain.Resume) error
	GetByID(ctx context.Context, id, ownerID string) (*domain.Resume, error)
	// List returns one page plus the total count. Records are ordered
	// newest-created-first and the listing projection excludes extracted text.
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Resume, int, error)
	MarkProcessing(ctx context.Context, id string) error
	SaveAnalysis(ctx context.Context, id string, analysis domain.Analysis, duration time.Duration) error
	SaveFailure(ctx context.Context, id string, perr domain.ProcessingError) error
	Delete(ctx context.Context, id, ownerID string) error
	Stats(ctx context.Context) (domain.UsageStats, error)
}

// ObjectStorage stores uploaded resume files. Stored bytes are never read
// back by the service; analysis runs over the extracted text on the record.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Remove(ctx context.Context, key string) error
	// Path reports the backend-specific location for a key, for the record only.
	Path(key string) string
}

// ExtractedText is the raw output of text extraction before normalization.
type ExtractedText struct {
	Text  string
	Pages int
}

// TextExtractor produces plain text from raw upload bytes.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (ExtractedText, error)
}

// SkillRecognizer finds known skill tokens in normalized text. Pure: no
// failure mode, empty input yields an empty set.
type SkillRecognizer interface {
	Recognize(text string) []string
}

// ResumeAnalyzer delegates to the external analysis provider.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, text, targetRole string) (domain.Analysis, error)
	GenerateBulletPoints(ctx context.Context, text, category string) ([]string, error)
	MatchSkills(ctx context.Context, skills []string, targetRole string) (domain.SkillMatchReport, error)
}

// EventPublisher emits lifecycle events for downstream consumers. Publishing
// is best-effort from the caller's point of view.
type EventPublisher interface {
	PublishResumeEvent(ctx context.Context, event domain.ResumeEvent) error
}
