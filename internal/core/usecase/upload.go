package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/akozyrev/resume-insight/internal/core/domain"
	"github.com/akozyrev/resume-insight/internal/core/ports"
)

type UploadResumeUseCase struct {
	repo      ports.ResumeRepository
	storage   ports.ObjectStorage
	extractor ports.TextExtractor
	events    ports.EventPublisher
	logger    *slog.Logger
}

func NewUploadResumeUseCase(
	repo ports.ResumeRepository,
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	events ports.EventPublisher,
	logger *slog.Logger,
) *UploadResumeUseCase {
	return &UploadResumeUseCase{
		repo:      repo,
		storage:   storage,
		extractor: extractor,
		events:    events,
		logger:    logger,
	}
}

// Upload stores the file, extracts and normalizes its text, and creates the
// record in the uploaded state. Extraction runs synchronously: a file whose
// text cannot be extracted is rejected here and never becomes a record, and
// its stored bytes are cleaned up.
func (uc *UploadResumeUseCase) Upload(ctx context.Context, ownerID string, file domain.FileUpload) (*domain.Resume, error) {
	if len(file.Data) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload resume", errors.New("empty file"))
	}
	if ownerID == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload resume", errors.New("missing owner"))
	}

	id := uuid.NewString()
	storageName := fmt.Sprintf("%s_%s", id, sanitizeFilename(file.OriginalName))

	if err := uc.storage.Save(ctx, storageName, bytes.NewReader(file.Data)); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	extracted, err := uc.extractor.Extract(ctx, file.Data, file.MimeType)
	if err != nil {
		uc.removeStored(ctx, storageName)
		return nil, fmt.Errorf("extract text: %w", err)
	}

	text := domain.NormalizeText(extracted.Text)
	if utf8.RuneCountInString(text) < domain.MinNormalizedTextLen {
		uc.removeStored(ctx, storageName)
		return nil, domain.WrapError(
			domain.ErrInsufficientText,
			"upload resume",
			fmt.Errorf("normalized text has %d characters, need %d", utf8.RuneCountInString(text), domain.MinNormalizedTextLen),
		)
	}

	now := time.Now().UTC()
	resume := &domain.Resume{
		ID:            id,
		OwnerID:       ownerID,
		OriginalName:  file.OriginalName,
		StorageName:   storageName,
		StoragePath:   uc.storage.Path(storageName),
		FileSize:      file.Size,
		MimeType:      file.MimeType,
		ExtractedText: text,
		Status:        domain.StatusUploaded,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.repo.Create(ctx, resume); err != nil {
		uc.removeStored(ctx, storageName)
		return nil, fmt.Errorf("create resume record: %w", err)
	}

	uc.publish(ctx, domain.ResumeEvent{
		Type:     domain.EventResumeUploaded,
		ResumeID: resume.ID,
		OwnerID:  ownerID,
		Status:   resume.Status,
		At:       now,
	})
	return resume, nil
}

// removeStored cleans up after a rejected upload. A leftover file is an
// operational concern, not a caller-visible failure.
func (uc *UploadResumeUseCase) removeStored(ctx context.Context, key string) {
	if err := uc.storage.Remove(ctx, key); err != nil {
		uc.logger.Warn("orphaned upload file left in storage", "key", key, "error", err)
	}
}

func (uc *UploadResumeUseCase) publish(ctx context.Context, event domain.ResumeEvent) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishResumeEvent(ctx, event); err != nil {
		uc.logger.Warn("resume event not published", "type", event.Type, "resume_id", event.ResumeID, "error", err)
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "resume.bin"
	}
	return base
}
