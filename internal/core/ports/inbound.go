package ports

import (
	"context"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

// ResumeUploader is the inbound contract for upload intake.
type ResumeUploader interface {
	Upload(ctx context.Context, ownerID string, file domain.FileUpload) (*domain.Resume, error)
}

// ResumeAnalysisService is the inbound contract for provider-backed analysis.
type ResumeAnalysisService interface {
	RequestAnalysis(ctx context.Context, id, ownerID, targetRole string) (*domain.AnalysisOutcome, error)
	GenerateBulletPoints(ctx context.Context, id, ownerID, category string, count int) ([]string, error)
	MatchSkills(ctx context.Context, id, ownerID, targetRole string) (*domain.SkillMatchReport, error)
}

// ResumeLibrary is the inbound read/delete model for stored records.
type ResumeLibrary interface {
	Get(ctx context.Context, id, ownerID string) (*domain.Resume, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Resume, domain.Pagination, error)
	Delete(ctx context.Context, id, ownerID string) error
	Stats(ctx context.Context) (domain.UsageStats, error)
}
