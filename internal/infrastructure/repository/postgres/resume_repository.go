package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

type ResumeRepository struct {
	db *sql.DB
}

func NewResumeRepository(db *sql.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ResumeRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS resumes (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	original_name TEXT NOT NULL,
	storage_name TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	file_size BIGINT NOT NULL,
	mime_type TEXT NOT NULL,
	extracted_text TEXT NOT NULL,
	status TEXT NOT NULL,
	analysis JSONB,
	processing_ms BIGINT NOT NULL DEFAULT 0,
	error_message TEXT,
	error_code TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_resumes_owner ON resumes(owner_id);
CREATE INDEX IF NOT EXISTS idx_resumes_status ON resumes(status);
CREATE INDEX IF NOT EXISTS idx_resumes_created_at ON resumes(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	analysisJSON, errMessage, errCode, err := marshalResultColumns(resume)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO resumes (
	id, owner_id, original_name, storage_name, storage_path, file_size, mime_type,
	extracted_text, status, analysis, processing_ms, error_message, error_code, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
		resume.ID, resume.OwnerID, resume.OriginalName, resume.StorageName, resume.StoragePath,
		resume.FileSize, resume.MimeType, resume.ExtractedText, string(resume.Status),
		analysisJSON, resume.ProcessingMs, errMessage, errCode, resume.CreatedAt, resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

const resumeColumns = `id, owner_id, original_name, storage_name, storage_path, file_size, mime_type, extracted_text, status, analysis, processing_ms, error_message, error_code, created_at, updated_at`

func (r *ResumeRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	args := []any{id}
	if ownerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, ownerID)
	}

	resume, err := scanResume(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrResumeNotFound, "get resume", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan resume: %w", err)
	}
	return resume, nil
}

// List returns one page ordered newest-first plus the total count for the
// same filter. The listing projection leaves extracted_text out.
func (r *ResumeRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Resume, int, error) {
	where, args := buildListFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM resumes` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count resumes: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
SELECT id, owner_id, original_name, storage_name, storage_path, file_size, mime_type, '', status, analysis, processing_ms, error_message, error_code, created_at, updated_at
FROM resumes` + where + fmt.Sprintf(`
ORDER BY created_at DESC
LIMIT %d OFFSET %d
`, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	resumes := make([]domain.Resume, 0, limit)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan resume row: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate resumes: %w", err)
	}
	return resumes, total, nil
}

func buildListFilter(filter domain.ListFilter) (string, []any) {
	var clauses []string
	var args []any
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// MarkProcessing flips the record into processing and wipes any previous
// outcome so status and result columns stay consistent.
func (r *ResumeRepository) MarkProcessing(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET status = $2, analysis = NULL, processing_ms = 0, error_message = NULL, error_code = NULL, updated_at = $3
WHERE id = $1
`, id, string(domain.StatusProcessing), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark resume processing: %w", err)
	}
	return requireRowAffected(res, "mark resume processing", id)
}

func (r *ResumeRepository) SaveAnalysis(ctx context.Context, id string, analysis domain.Analysis, duration time.Duration) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET status = $2, analysis = $3, processing_ms = $4, error_message = NULL, error_code = NULL, updated_at = $5
WHERE id = $1
`, id, string(domain.StatusCompleted), analysisJSON, duration.Milliseconds(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return requireRowAffected(res, "save analysis", id)
}

func (r *ResumeRepository) SaveFailure(ctx context.Context, id string, perr domain.ProcessingError) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE resumes
SET status = $2, analysis = NULL, processing_ms = 0, error_message = $3, error_code = $4, updated_at = $5
WHERE id = $1
`, id, string(domain.StatusFailed), perr.Message, perr.Code, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save failure: %w", err)
	}
	return requireRowAffected(res, "save failure", id)
}

func (r *ResumeRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM resumes WHERE id = $1`
	args := []any{id}
	if ownerID != "" {
		query += ` AND owner_id = $2`
		args = append(args, ownerID)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return requireRowAffected(res, "delete resume", id)
}

func (r *ResumeRepository) Stats(ctx context.Context) (domain.UsageStats, error) {
	var stats domain.UsageStats

	rows, err := r.db.QueryContext(ctx, `
SELECT status, COUNT(*)
FROM resumes
GROUP BY status
ORDER BY status
`)
	if err != nil {
		return stats, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row domain.StatusCount
		var status string
		if err := rows.Scan(&status, &row.Count); err != nil {
			return stats, fmt.Errorf("scan status count: %w", err)
		}
		row.Status = domain.ResumeStatus(status)
		stats.ByStatus = append(stats.ByStatus, row)
		stats.Total += row.Count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate status counts: %w", err)
	}

	var avg sql.NullFloat64
	err = r.db.QueryRowContext(ctx, `
SELECT AVG(processing_ms)
FROM resumes
WHERE status = $1
`, string(domain.StatusCompleted)).Scan(&avg)
	if err != nil {
		return stats, fmt.Errorf("average processing time: %w", err)
	}
	if avg.Valid {
		stats.AvgProcessMs = int64(avg.Float64)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (*domain.Resume, error) {
	var resume domain.Resume
	var status string
	var analysisRaw []byte
	var errMessage, errCode sql.NullString

	err := row.Scan(
		&resume.ID, &resume.OwnerID, &resume.OriginalName, &resume.StorageName, &resume.StoragePath,
		&resume.FileSize, &resume.MimeType, &resume.ExtractedText, &status, &analysisRaw,
		&resume.ProcessingMs, &errMessage, &errCode, &resume.CreatedAt, &resume.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	resume.Status = domain.ResumeStatus(status)
	if len(analysisRaw) > 0 {
		var analysis domain.Analysis
		if err := json.Unmarshal(analysisRaw, &analysis); err != nil {
			return nil, fmt.Errorf("unmarshal analysis: %w", err)
		}
		resume.Analysis = &analysis
	}
	if errMessage.Valid || errCode.Valid {
		resume.Error = &domain.ProcessingError{Message: errMessage.String, Code: errCode.String}
	}
	return &resume, nil
}

func marshalResultColumns(resume *domain.Resume) (analysisJSON []byte, errMessage, errCode sql.NullString, err error) {
	if resume.Analysis != nil {
		analysisJSON, err = json.Marshal(resume.Analysis)
		if err != nil {
			return nil, sql.NullString{}, sql.NullString{}, fmt.Errorf("marshal analysis: %w", err)
		}
	}
	if resume.Error != nil {
		errMessage = sql.NullString{String: resume.Error.Message, Valid: true}
		errCode = sql.NullString{String: resume.Error.Code, Valid: true}
	}
	return analysisJSON, errMessage, errCode, nil
}

func requireRowAffected(res sql.Result, op, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrResumeNotFound, op, fmt.Errorf("id %s", id))
	}
	return nil
}
