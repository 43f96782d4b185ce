package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

func seedResume(id, ownerID string) *domain.Resume {
	now := time.Now().UTC()
	return &domain.Resume{
		ID:            id,
		OwnerID:       ownerID,
		OriginalName:  "cv.pdf",
		StorageName:   id + "_cv.pdf",
		MimeType:      "application/pdf",
		ExtractedText: "ten years of Go, Postgres and distributed systems",
		Status:        domain.StatusUploaded,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func completedAnalysis() domain.Analysis {
	a := domain.Analysis{
		Strengths:  []domain.Strength{{Skill: "Go", Confidence: 0.9}},
		SkillMatch: domain.SkillMatch{TargetJob: "Software Engineer", MatchPercentage: 80},
	}
	a.Normalize()
	return a
}

func TestRequestAnalysisSuccess(t *testing.T) {
	repo := newRepoFake(seedResume("res-1", "owner-1"))
	analyzer := &analyzerFake{analysis: completedAnalysis()}
	events := &eventsFake{}
	uc := NewAnalyzeResumeUseCase(repo, analyzer, &recognizerFake{}, events, testLogger())

	outcome, err := uc.RequestAnalysis(context.Background(), "res-1", "owner-1", "Backend Developer")
	if err != nil {
		t.Fatalf("RequestAnalysis() error = %v", err)
	}

	wantSeq := []domain.ResumeStatus{domain.StatusProcessing, domain.StatusCompleted}
	if !reflect.DeepEqual(repo.statusSeq, wantSeq) {
		t.Errorf("status sequence = %v, want %v", repo.statusSeq, wantSeq)
	}
	if analyzer.gotRole != "Backend Developer" {
		t.Errorf("role = %q", analyzer.gotRole)
	}
	if analyzer.gotText == "" {
		t.Errorf("extracted text not forwarded to provider")
	}
	if outcome.ProcessingMs < 0 {
		t.Errorf("processingMs = %d", outcome.ProcessingMs)
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventResumeAnalyzed {
		t.Errorf("events = %+v", events.events)
	}

	stored := repo.resumes["res-1"]
	if stored.Status != domain.StatusCompleted || stored.Analysis == nil || stored.Error != nil {
		t.Errorf("stored record inconsistent: %+v", stored)
	}
}

func TestRequestAnalysisDefaultsRole(t *testing.T) {
	repo := newRepoFake(seedResume("res-1", "owner-1"))
	analyzer := &analyzerFake{analysis: completedAnalysis()}
	uc := NewAnalyzeResumeUseCase(repo, analyzer, &recognizerFake{}, &eventsFake{}, testLogger())

	if _, err := uc.RequestAnalysis(context.Background(), "res-1", "owner-1", ""); err != nil {
		t.Fatalf("RequestAnalysis() error = %v", err)
	}
	if analyzer.gotRole != domain.DefaultTargetRole {
		t.Errorf("role = %q, want %q", analyzer.gotRole, domain.DefaultTargetRole)
	}
}

func TestRequestAnalysisProviderFailureIsPersisted(t *testing.T) {
	repo := newRepoFake(seedResume("res-1", "owner-1"))
	providerErr := domain.WrapError(domain.ErrMalformedResponse, "parse analysis", errors.New("no json payload"))
	analyzer := &analyzerFake{analyzeErr: providerErr}
	events := &eventsFake{}
	uc := NewAnalyzeResumeUseCase(repo, analyzer, &recognizerFake{}, events, testLogger())

	_, err := uc.RequestAnalysis(context.Background(), "res-1", "owner-1", "")
	if !domain.IsKind(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected provider error surfaced, got %v", err)
	}

	perr, ok := repo.savedFailures["res-1"]
	if !ok {
		t.Fatalf("failure not persisted")
	}
	if perr.Code != domain.CodeAnalysisFailed {
		t.Errorf("code = %q, want %q", perr.Code, domain.CodeAnalysisFailed)
	}
	if perr.Message == "" {
		t.Errorf("failure message should carry the cause")
	}

	stored := repo.resumes["res-1"]
	if stored.Status != domain.StatusFailed || stored.Analysis != nil {
		t.Errorf("stored record inconsistent: %+v", stored)
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventResumeFailed {
		t.Errorf("events = %+v", events.events)
	}
}

func TestRequestAnalysisPersistFailureMarksFailed(t *testing.T) {
	repo := newRepoFake(seedResume("res-1", "owner-1"))
	repo.saveAnalysisEr = errors.New("db connection reset")
	events := &eventsFake{}
	uc := NewAnalyzeResumeUseCase(repo, &analyzerFake{analysis: completedAnalysis()}, &recognizerFake{}, events, testLogger())

	_, err := uc.RequestAnalysis(context.Background(), "res-1", "owner-1", "")
	if err == nil || !strings.Contains(err.Error(), "save analysis") {
		t.Fatalf("expected save-analysis error surfaced, got %v", err)
	}

	perr, ok := repo.savedFailures["res-1"]
	if !ok {
		t.Fatalf("caught persistence error must not strand the record in processing")
	}
	if perr.Code != domain.CodeAnalysisFailed {
		t.Errorf("code = %q, want %q", perr.Code, domain.CodeAnalysisFailed)
	}
	if !strings.Contains(perr.Message, "db connection reset") {
		t.Errorf("failure message should carry the cause, got %q", perr.Message)
	}

	stored := repo.resumes["res-1"]
	if stored.Status != domain.StatusFailed || stored.Error == nil || stored.Analysis != nil {
		t.Errorf("stored record inconsistent: %+v", stored)
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventResumeFailed {
		t.Errorf("events = %+v", events.events)
	}
}

func TestRequestAnalysisNotFoundLeavesNoTrace(t *testing.T) {
	repo := newRepoFake()
	uc := NewAnalyzeResumeUseCase(repo, &analyzerFake{}, &recognizerFake{}, &eventsFake{}, testLogger())

	_, err := uc.RequestAnalysis(context.Background(), "missing", "owner-1", "")
	if !domain.IsKind(err, domain.ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
	if len(repo.statusSeq) != 0 {
		t.Errorf("no status transition expected, got %v", repo.statusSeq)
	}
}

func TestRequestAnalysisScopedToOwner(t *testing.T) {
	repo := newRepoFake(seedResume("res-1", "owner-1"))
	uc := NewAnalyzeResumeUseCase(repo, &analyzerFake{}, &recognizerFake{}, &eventsFake{}, testLogger())

	_, err := uc.RequestAnalysis(context.Background(), "res-1", "owner-2", "")
	if !domain.IsKind(err, domain.ErrResumeNotFound) {
		t.Fatalf("foreign owner must see not-found, got %v", err)
	}
}

func TestReanalysisOverwritesPreviousFailure(t *testing.T) {
	failed := seedResume("res-1", "owner-1")
	failed.Status = domain.StatusFailed
	failed.Error = &domain.ProcessingError{Message: "old failure", Code: domain.CodeAnalysisFailed}
	repo := newRepoFake(failed)
	uc := NewAnalyzeResumeUseCase(repo, &analyzerFake{analysis: completedAnalysis()}, &recognizerFake{}, &eventsFake{}, testLogger())

	if _, err := uc.RequestAnalysis(context.Background(), "res-1", "owner-1", ""); err != nil {
		t.Fatalf("RequestAnalysis() error = %v", err)
	}

	stored := repo.resumes["res-1"]
	if stored.Status != domain.StatusCompleted || stored.Error != nil {
		t.Errorf("previous failure not cleared: %+v", stored)
	}
}

func TestGenerateBulletPointsBoundsCount(t *testing.T) {
	repo := newRepoFake(seedResume("res-1", "owner-1"))
	analyzer := &analyzerFake{points: []string{"a", "b", "c", "d", "e", "f", "g", "h"}}
	uc := NewAnalyzeResumeUseCase(repo, analyzer, &recognizerFake{}, &eventsFake{}, testLogger())

	points, err := uc.GenerateBulletPoints(context.Background(), "res-1", "owner-1", "experience", 5)
	if err != nil {
		t.Fatalf("GenerateBulletPoints() error = %v", err)
	}
	if len(points) != 5 {
		t.Errorf("len = %d, want 5", len(points))
	}
	if analyzer.gotCategory != "experience" {
		t.Errorf("category = %q", analyzer.gotCategory)
	}
}

func TestMatchSkillsUsesRecognizedSkills(t *testing.T) {
	repo := newRepoFake(seedResume("res-1", "owner-1"))
	analyzer := &analyzerFake{report: domain.SkillMatchReport{MatchPercentage: 60, MatchedSkills: []string{"go"}, MissingSkills: []string{"docker"}}}
	recognizer := &recognizerFake{skills: []string{"go", "postgresql"}}
	uc := NewAnalyzeResumeUseCase(repo, analyzer, recognizer, &eventsFake{}, testLogger())

	report, err := uc.MatchSkills(context.Background(), "res-1", "owner-1", "")
	if err != nil {
		t.Fatalf("MatchSkills() error = %v", err)
	}
	if !reflect.DeepEqual(analyzer.gotSkills, []string{"go", "postgresql"}) {
		t.Errorf("skills forwarded = %v", analyzer.gotSkills)
	}
	if report.MatchPercentage != 60 {
		t.Errorf("matchPercentage = %v", report.MatchPercentage)
	}
	if !reflect.DeepEqual(report.CandidateSkills, []string{"go", "postgresql"}) {
		t.Errorf("candidate skills = %v", report.CandidateSkills)
	}
	if analyzer.gotRole != domain.DefaultTargetRole {
		t.Errorf("role = %q", analyzer.gotRole)
	}
}
