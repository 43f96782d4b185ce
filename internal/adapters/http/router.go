package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/akozyrev/resume-insight/internal/core/ports"
	"github.com/akozyrev/resume-insight/internal/observability/metrics"
)

type Router struct {
	uploader ports.ResumeUploader
	analysis ports.ResumeAnalysisService
	library  ports.ResumeLibrary

	auth    *authenticator
	limiter *clientLimiter
	metrics *metrics.HTTPServerMetrics

	service        string
	maxUploadBytes int64
}

type RouterConfig struct {
	Service        string
	JWTSecret      string
	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(
	uploader ports.ResumeUploader,
	analysis ports.ResumeAnalysisService,
	library ports.ResumeLibrary,
	serverMetrics *metrics.HTTPServerMetrics,
	cfg RouterConfig,
) *Router {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 10
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 20
	}
	return &Router{
		uploader:       uploader,
		analysis:       analysis,
		library:        library,
		auth:           newAuthenticator(cfg.JWTSecret),
		limiter:        newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		metrics:        serverMetrics,
		service:        cfg.Service,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

func (rt *Router) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /v1/resumes", rt.uploadResume)
	api.HandleFunc("GET /v1/resumes", rt.listResumes)
	api.HandleFunc("GET /v1/resumes/{id}", rt.getResume)
	api.HandleFunc("DELETE /v1/resumes/{id}", rt.deleteResume)
	api.HandleFunc("POST /v1/resumes/{id}/analysis", rt.analyzeResume)
	api.HandleFunc("POST /v1/resumes/{id}/bullet-points", rt.generateBulletPoints)
	api.HandleFunc("POST /v1/resumes/{id}/skill-match", rt.matchSkills)

	admin := http.NewServeMux()
	admin.HandleFunc("GET /v1/admin/resumes", rt.adminListResumes)
	admin.HandleFunc("GET /v1/admin/stats", rt.adminStats)
	admin.HandleFunc("GET /v1/admin/resumes/export", rt.adminExportResumes)
	api.Handle("/v1/admin/", requireAdmin(admin))

	protected := rt.auth.middleware(rateLimitMiddleware(rt.limiter, api))

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		root.Handle("GET /metrics", rt.metrics.Handler())
	}
	root.Handle("/", protected)

	var handler http.Handler = root
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code := mapError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak internals on unexpected failures.
		message = "internal error"
	}
	writeError(w, status, code, message)
}
