package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

func TestListComputesPagination(t *testing.T) {
	repo := newRepoFake()
	repo.listResult = make([]domain.Resume, 10)
	repo.listTotal = 25
	uc := NewResumeLibraryUseCase(repo, newStorageFake(), &eventsFake{}, testLogger())

	_, page, err := uc.List(context.Background(), domain.ListFilter{OwnerID: "owner-1", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if page.Pages != 3 || page.Total != 25 {
		t.Errorf("pagination = %+v, want pages 3 total 25", page)
	}
}

func TestListStripsExtractedText(t *testing.T) {
	repo := newRepoFake()
	repo.listResult = []domain.Resume{{ID: "res-1", OwnerID: "owner-1", ExtractedText: "full resume body"}}
	repo.listTotal = 1
	uc := NewResumeLibraryUseCase(repo, newStorageFake(), &eventsFake{}, testLogger())

	resumes, _, err := uc.List(context.Background(), domain.ListFilter{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resumes) != 1 || resumes[0].ExtractedText != "" {
		t.Errorf("listing must not carry extracted text: %+v", resumes)
	}
}

func TestListAppliesDefaultsAndCap(t *testing.T) {
	repo := newRepoFake()
	uc := NewResumeLibraryUseCase(repo, newStorageFake(), &eventsFake{}, testLogger())

	if _, _, err := uc.List(context.Background(), domain.ListFilter{OwnerID: "owner-1", Page: -2, Limit: 0}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != defaultPageLimit {
		t.Errorf("defaults not applied: %+v", repo.lastFilter)
	}

	if _, _, err := uc.List(context.Background(), domain.ListFilter{OwnerID: "owner-1", Limit: 10_000}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if repo.lastFilter.Limit != maxPageLimit {
		t.Errorf("limit not capped: %d", repo.lastFilter.Limit)
	}
}

func TestDeleteRemovesFileAndRecord(t *testing.T) {
	resume := seedResume("res-1", "owner-1")
	repo := newRepoFake(resume)
	storage := newStorageFake()
	storage.saved[resume.StorageName] = "bytes"
	events := &eventsFake{}
	uc := NewResumeLibraryUseCase(repo, storage, events, testLogger())

	if err := uc.Delete(context.Background(), "res-1", "owner-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(storage.removed) != 1 || storage.removed[0] != resume.StorageName {
		t.Errorf("removed = %v", storage.removed)
	}
	if len(repo.deletedIDs) != 1 {
		t.Errorf("record not deleted")
	}
	if len(events.events) != 1 || events.events[0].Type != domain.EventResumeDeleted {
		t.Errorf("events = %+v", events.events)
	}
}

func TestDeleteSurvivesMissingFile(t *testing.T) {
	resume := seedResume("res-1", "owner-1")
	repo := newRepoFake(resume)
	storage := newStorageFake()
	storage.removeErr = errors.New("no such file")
	uc := NewResumeLibraryUseCase(repo, storage, &eventsFake{}, testLogger())

	if err := uc.Delete(context.Background(), "res-1", "owner-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.deletedIDs) != 1 {
		t.Errorf("record should be deleted even when file removal fails")
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo := newRepoFake()
	storage := newStorageFake()
	uc := NewResumeLibraryUseCase(repo, storage, &eventsFake{}, testLogger())

	err := uc.Delete(context.Background(), "missing", "owner-1")
	if !domain.IsKind(err, domain.ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
	if len(storage.removed) != 0 {
		t.Errorf("no removal expected for missing record")
	}
}
