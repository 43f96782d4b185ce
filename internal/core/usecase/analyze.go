package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
	"github.com/akozyrev/resume-insight/internal/core/ports"
)

type AnalyzeResumeUseCase struct {
	repo       ports.ResumeRepository
	analyzer   ports.ResumeAnalyzer
	recognizer ports.SkillRecognizer
	events     ports.EventPublisher
	logger     *slog.Logger
}

func NewAnalyzeResumeUseCase(
	repo ports.ResumeRepository,
	analyzer ports.ResumeAnalyzer,
	recognizer ports.SkillRecognizer,
	events ports.EventPublisher,
	logger *slog.Logger,
) *AnalyzeResumeUseCase {
	return &AnalyzeResumeUseCase{
		repo:       repo,
		analyzer:   analyzer,
		recognizer: recognizer,
		events:     events,
		logger:     logger,
	}
}

// RequestAnalysis runs the provider synchronously within the request. The
// record is moved to processing before the call and always lands in a
// terminal state afterwards, so a reader polling the record never observes a
// completed status with stale results.
func (uc *AnalyzeResumeUseCase) RequestAnalysis(ctx context.Context, id, ownerID, targetRole string) (*domain.AnalysisOutcome, error) {
	if targetRole == "" {
		targetRole = domain.DefaultTargetRole
	}

	resume, err := uc.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.MarkProcessing(ctx, resume.ID); err != nil {
		return nil, fmt.Errorf("set status=processing: %w", err)
	}
	resume.MarkProcessing(time.Now().UTC())

	start := time.Now()
	analysis, err := uc.analyzer.Analyze(ctx, resume.ExtractedText, targetRole)
	duration := time.Since(start)
	if err != nil {
		uc.recordFailure(ctx, resume, err)
		return nil, err
	}

	if err := uc.repo.SaveAnalysis(ctx, resume.ID, analysis, duration); err != nil {
		err = fmt.Errorf("save analysis: %w", err)
		uc.recordFailure(ctx, resume, err)
		return nil, err
	}
	if err := resume.Complete(analysis, duration, time.Now().UTC()); err != nil {
		return nil, err
	}

	uc.publish(ctx, domain.ResumeEvent{
		Type:     domain.EventResumeAnalyzed,
		ResumeID: resume.ID,
		OwnerID:  resume.OwnerID,
		Status:   domain.StatusCompleted,
		At:       time.Now().UTC(),
	})
	return &domain.AnalysisOutcome{
		Analysis:     *resume.Analysis,
		ProcessingMs: resume.ProcessingMs,
	}, nil
}

// recordFailure moves the record to failed before the causing error is
// surfaced, so a caught error never strands the record in processing.
// Persistence trouble here is logged, not returned: the causing error is
// the one the caller needs to see.
func (uc *AnalyzeResumeUseCase) recordFailure(ctx context.Context, resume *domain.Resume, cause error) {
	perr := domain.ProcessingError{
		Message: cause.Error(),
		Code:    domain.CodeAnalysisFailed,
	}
	if err := resume.Fail(perr, time.Now().UTC()); err != nil {
		uc.logger.Error("failure transition rejected", "resume_id", resume.ID, "error", err)
	}
	if err := uc.repo.SaveFailure(ctx, resume.ID, perr); err != nil {
		uc.logger.Error("failed analysis not persisted", "resume_id", resume.ID, "error", err)
	}
	uc.publish(ctx, domain.ResumeEvent{
		Type:     domain.EventResumeFailed,
		ResumeID: resume.ID,
		OwnerID:  resume.OwnerID,
		Status:   domain.StatusFailed,
		At:       time.Now().UTC(),
	})
}

// GenerateBulletPoints asks the provider for rewritten bullet points. The
// provider is prompted for a batch; the caller-requested count is applied as
// an upper bound on the reply.
func (uc *AnalyzeResumeUseCase) GenerateBulletPoints(ctx context.Context, id, ownerID, category string, count int) ([]string, error) {
	resume, err := uc.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	points, err := uc.analyzer.GenerateBulletPoints(ctx, resume.ExtractedText, category)
	if err != nil {
		return nil, err
	}
	if count > 0 && len(points) > count {
		points = points[:count]
	}
	return points, nil
}

// MatchSkills recognizes skills locally and delegates the comparison against
// the role baseline to the provider.
func (uc *AnalyzeResumeUseCase) MatchSkills(ctx context.Context, id, ownerID, targetRole string) (*domain.SkillMatchReport, error) {
	if targetRole == "" {
		targetRole = domain.DefaultTargetRole
	}

	resume, err := uc.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	skills := uc.recognizer.Recognize(resume.ExtractedText)
	report, err := uc.analyzer.MatchSkills(ctx, skills, targetRole)
	if err != nil {
		return nil, err
	}
	report.CandidateSkills = skills
	return &report, nil
}

func (uc *AnalyzeResumeUseCase) publish(ctx context.Context, event domain.ResumeEvent) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishResumeEvent(ctx, event); err != nil {
		uc.logger.Warn("resume event not published", "type", event.Type, "resume_id", event.ResumeID, "error", err)
	}
}
