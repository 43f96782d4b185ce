package httpadapter

import (
	"net/http"
	"time"

	"github.com/akozyrev/resume-insight/internal/core/domain"
	"github.com/akozyrev/resume-insight/internal/infrastructure/export"
)

// adminListResumes lists across all owners. The empty OwnerID widens the
// filter; the handler is reachable only behind requireAdmin.
func (rt *Router) adminListResumes(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseListFilter(w, r)
	if !ok {
		return
	}

	resumes, pagination, err := rt.library.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Resumes: resumes, Pagination: pagination})
}

func (rt *Router) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := rt.library.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) adminExportResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := rt.collectAllResumes(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	filename := "resumes-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteResumesXLSX(w, resumes); err != nil {
		// Headers are already out; all that is left is logging via the
		// access log's 200. The client sees a truncated file.
		return
	}
}

// collectAllResumes pages through the listing until the reported total is
// reached so the export covers every record.
func (rt *Router) collectAllResumes(r *http.Request) ([]domain.Resume, error) {
	var all []domain.Resume
	filter := domain.ListFilter{Page: 1, Limit: 100}
	if raw := r.URL.Query().Get("status"); raw != "" {
		filter.Status = domain.ResumeStatus(raw)
	}

	for {
		page, pagination, err := rt.library.List(r.Context(), filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if filter.Page >= pagination.Pages || len(page) == 0 {
			return all, nil
		}
		filter.Page++
	}
}
