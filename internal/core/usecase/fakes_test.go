package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
	"github.com/akozyrev/resume-insight/internal/core/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type repoFake struct {
	resumes map[string]*domain.Resume

	createErr      error
	getErr         error
	markErr        error
	saveAnalysisEr error
	saveFailureErr error
	deleteErr      error

	statusSeq     []domain.ResumeStatus
	deletedIDs    []string
	savedFailures map[string]domain.ProcessingError
	listResult    []domain.Resume
	listTotal     int
	lastFilter    domain.ListFilter
	stats         domain.UsageStats
}

func newRepoFake(seed ...*domain.Resume) *repoFake {
	f := &repoFake{
		resumes:       make(map[string]*domain.Resume),
		savedFailures: make(map[string]domain.ProcessingError),
	}
	for _, r := range seed {
		copied := *r
		f.resumes[r.ID] = &copied
	}
	return f
}

func (f *repoFake) Create(_ context.Context, r *domain.Resume) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *r
	f.resumes[r.ID] = &copied
	f.statusSeq = append(f.statusSeq, r.Status)
	return nil
}

func (f *repoFake) GetByID(_ context.Context, id, ownerID string) (*domain.Resume, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.resumes[id]
	if !ok || (ownerID != "" && r.OwnerID != ownerID) {
		return nil, domain.WrapError(domain.ErrResumeNotFound, "get resume", errFakeNotFound)
	}
	copied := *r
	return &copied, nil
}

func (f *repoFake) List(_ context.Context, filter domain.ListFilter) ([]domain.Resume, int, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *repoFake) MarkProcessing(_ context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	r, ok := f.resumes[id]
	if !ok {
		return domain.WrapError(domain.ErrResumeNotFound, "mark resume processing", errFakeNotFound)
	}
	r.MarkProcessing(time.Now().UTC())
	f.statusSeq = append(f.statusSeq, r.Status)
	return nil
}

func (f *repoFake) SaveAnalysis(_ context.Context, id string, analysis domain.Analysis, duration time.Duration) error {
	if f.saveAnalysisEr != nil {
		return f.saveAnalysisEr
	}
	r, ok := f.resumes[id]
	if !ok {
		return domain.WrapError(domain.ErrResumeNotFound, "save analysis", errFakeNotFound)
	}
	if err := r.Complete(analysis, duration, time.Now().UTC()); err != nil {
		return err
	}
	f.statusSeq = append(f.statusSeq, r.Status)
	return nil
}

func (f *repoFake) SaveFailure(_ context.Context, id string, perr domain.ProcessingError) error {
	if f.saveFailureErr != nil {
		return f.saveFailureErr
	}
	r, ok := f.resumes[id]
	if !ok {
		return domain.WrapError(domain.ErrResumeNotFound, "save failure", errFakeNotFound)
	}
	if err := r.Fail(perr, time.Now().UTC()); err != nil {
		return err
	}
	f.savedFailures[id] = perr
	f.statusSeq = append(f.statusSeq, r.Status)
	return nil
}

func (f *repoFake) Delete(_ context.Context, id, ownerID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	r, ok := f.resumes[id]
	if !ok || (ownerID != "" && r.OwnerID != ownerID) {
		return domain.WrapError(domain.ErrResumeNotFound, "delete resume", errFakeNotFound)
	}
	delete(f.resumes, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *repoFake) Stats(context.Context) (domain.UsageStats, error) {
	return f.stats, nil
}

var errFakeNotFound = fakeNotFoundError{}

type fakeNotFoundError struct{}

func (fakeNotFoundError) Error() string { return "no such record" }

type storageFake struct {
	saved   map[string]string
	removed []string

	saveErr   error
	removeErr error
}

func newStorageFake() *storageFake {
	return &storageFake{saved: make(map[string]string)}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.saved[key] = string(raw)
	return nil
}

func (f *storageFake) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.saved, key)
	return nil
}

func (f *storageFake) Path(key string) string { return "/tmp/storage/" + key }

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, []byte, string) (ports.ExtractedText, error) {
	if f.err != nil {
		return ports.ExtractedText{}, f.err
	}
	return ports.ExtractedText{Text: f.text, Pages: 1}, nil
}

type analyzerFake struct {
	analysis   domain.Analysis
	analyzeErr error

	points    []string
	pointsErr error

	report   domain.SkillMatchReport
	matchErr error

	gotText     string
	gotRole     string
	gotCategory string
	gotSkills   []string
}

func (f *analyzerFake) Analyze(_ context.Context, text, targetRole string) (domain.Analysis, error) {
	f.gotText = text
	f.gotRole = targetRole
	if f.analyzeErr != nil {
		return domain.Analysis{}, f.analyzeErr
	}
	return f.analysis, nil
}

func (f *analyzerFake) GenerateBulletPoints(_ context.Context, text, category string) ([]string, error) {
	f.gotText = text
	f.gotCategory = category
	return f.points, f.pointsErr
}

func (f *analyzerFake) MatchSkills(_ context.Context, skills []string, targetRole string) (domain.SkillMatchReport, error) {
	f.gotSkills = skills
	f.gotRole = targetRole
	if f.matchErr != nil {
		return domain.SkillMatchReport{}, f.matchErr
	}
	return f.report, nil
}

type recognizerFake struct {
	skills []string
}

func (f *recognizerFake) Recognize(string) []string { return f.skills }

type eventsFake struct {
	events []domain.ResumeEvent
	err    error
}

func (f *eventsFake) PublishResumeEvent(_ context.Context, event domain.ResumeEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
