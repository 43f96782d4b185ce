package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
	"github.com/akozyrev/resume-insight/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ResumeLibraryUseCase serves reads and deletes over stored records.
type ResumeLibraryUseCase struct {
	repo    ports.ResumeRepository
	storage ports.ObjectStorage
	events  ports.EventPublisher
	logger  *slog.Logger
}

func NewResumeLibraryUseCase(
	repo ports.ResumeRepository,
	storage ports.ObjectStorage,
	events ports.EventPublisher,
	logger *slog.Logger,
) *ResumeLibraryUseCase {
	return &ResumeLibraryUseCase{
		repo:    repo,
		storage: storage,
		events:  events,
		logger:  logger,
	}
}

func (uc *ResumeLibraryUseCase) Get(ctx context.Context, id, ownerID string) (*domain.Resume, error) {
	return uc.repo.GetByID(ctx, id, ownerID)
}

func (uc *ResumeLibraryUseCase) List(ctx context.Context, filter domain.ListFilter) ([]domain.Resume, domain.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	resumes, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	// The listing projection never carries text, whatever the store returned.
	for i := range resumes {
		resumes[i] = resumes[i].WithoutText()
	}

	pages := (total + filter.Limit - 1) / filter.Limit
	return resumes, domain.Pagination{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: pages,
	}, nil
}

// Delete removes the stored file best-effort and then the record. A record
// whose file is already gone can still be deleted.
func (uc *ResumeLibraryUseCase) Delete(ctx context.Context, id, ownerID string) error {
	resume, err := uc.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := uc.storage.Remove(ctx, resume.StorageName); err != nil {
		uc.logger.Warn("stored file not removed", "resume_id", resume.ID, "key", resume.StorageName, "error", err)
	}

	if err := uc.repo.Delete(ctx, resume.ID, ownerID); err != nil {
		return fmt.Errorf("delete resume record: %w", err)
	}

	if uc.events != nil {
		event := domain.ResumeEvent{
			Type:     domain.EventResumeDeleted,
			ResumeID: resume.ID,
			OwnerID:  resume.OwnerID,
			At:       time.Now().UTC(),
		}
		if err := uc.events.PublishResumeEvent(ctx, event); err != nil {
			uc.logger.Warn("resume event not published", "type", event.Type, "resume_id", event.ResumeID, "error", err)
		}
	}
	return nil
}

func (uc *ResumeLibraryUseCase) Stats(ctx context.Context) (domain.UsageStats, error) {
	return uc.repo.Stats(ctx)
}
