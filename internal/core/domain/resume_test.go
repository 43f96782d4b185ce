package domain

import (
	"testing"
	"time"
)

func TestCompleteRequiresProcessing(t *testing.T) {
	now := time.Now().UTC()
	r := &Resume{ID: "r-1", Status: StatusUploaded}

	if err := r.Complete(Analysis{}, time.Second, now); err == nil {
		t.Fatalf("expected error completing from uploaded")
	}

	r.MarkProcessing(now)
	if err := r.Complete(Analysis{}, 1500*time.Millisecond, now); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if r.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", r.Status)
	}
	if r.Analysis == nil {
		t.Fatalf("completed resume must carry an analysis")
	}
	if r.Error != nil {
		t.Fatalf("completed resume must not carry an error")
	}
	if r.ProcessingMs != 1500 {
		t.Fatalf("expected 1500ms, got %d", r.ProcessingMs)
	}
}

func TestFailRequiresProcessing(t *testing.T) {
	now := time.Now().UTC()
	r := &Resume{ID: "r-1", Status: StatusUploaded}

	if err := r.Fail(ProcessingError{Message: "boom", Code: CodeAnalysisFailed}, now); err == nil {
		t.Fatalf("expected error failing from uploaded")
	}

	r.MarkProcessing(now)
	if err := r.Fail(ProcessingError{Message: "boom", Code: CodeAnalysisFailed}, now); err != nil {
		t.Fatalf("Fail() error = %v", err)
	}
	if r.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", r.Status)
	}
	if r.Error == nil || r.Error.Code != CodeAnalysisFailed {
		t.Fatalf("failed resume must carry the error detail, got %+v", r.Error)
	}
	if r.Analysis != nil {
		t.Fatalf("failed resume must not carry an analysis")
	}
}

func TestMarkProcessingClearsPriorOutcome(t *testing.T) {
	now := time.Now().UTC()
	r := &Resume{ID: "r-1", Status: StatusProcessing}
	if err := r.Complete(Analysis{SkillMatch: SkillMatch{MatchPercentage: 80}}, time.Second, now); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	// Re-analysis re-enters processing; the prior result must not leak.
	r.MarkProcessing(now)
	if r.Status != StatusProcessing {
		t.Fatalf("expected processing, got %s", r.Status)
	}
	if r.Analysis != nil || r.Error != nil || r.ProcessingMs != 0 {
		t.Fatalf("expected cleared outcome, got analysis=%v error=%v ms=%d", r.Analysis, r.Error, r.ProcessingMs)
	}
}

func TestSummaryProjection(t *testing.T) {
	r := &Resume{}
	if r.Summary() != nil {
		t.Fatalf("expected nil summary without analysis")
	}
	r.Analysis = &Analysis{
		Strengths:     []Strength{{Skill: "go"}, {Skill: "sql"}},
		MissingSkills: []MissingSkill{{Skill: "k8s"}},
		SkillMatch:    SkillMatch{MatchPercentage: 72},
		Suggestions:   []Suggestion{{Title: "add metrics"}},
	}
	s := r.Summary()
	if s.TotalStrengths != 2 || s.TotalMissingSkills != 1 || s.TotalSuggestions != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.SkillMatchPercentage != 72 {
		t.Fatalf("expected 72, got %v", s.SkillMatchPercentage)
	}
}

func TestAnalysisNormalizeFillsCollections(t *testing.T) {
	a := Analysis{SkillMatch: SkillMatch{MatchPercentage: 130}}
	a.Normalize()
	if a.SkillMatch.MatchPercentage != 100 {
		t.Fatalf("expected clamped 100, got %v", a.SkillMatch.MatchPercentage)
	}
	if a.Strengths == nil || a.MissingSkills == nil || a.Suggestions == nil || a.BulletPoints == nil {
		t.Fatalf("expected non-nil collections")
	}
	if a.SkillMatch.MatchedSkills == nil || a.SkillMatch.MissingSkills == nil {
		t.Fatalf("expected non-nil skill match slices")
	}
}
