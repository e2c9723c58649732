// Package api exposes HTTP handlers for the wrapped service.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidefield/wrapped/internal/auth"
	"github.com/tidefield/wrapped/internal/domain"
	"github.com/tidefield/wrapped/internal/parser"
	"github.com/tidefield/wrapped/internal/persistence"
)

// maxUploadBytes bounds one multipart upload batch.
const maxUploadBytes = 32 << 20

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/summaries/activities", h.activitiesUpload)
	mux.HandleFunc("/v1/summaries/steps", h.stepsUpload)
	mux.HandleFunc("/v1/summaries", h.listSummaries)
	mux.HandleFunc("/v1/summaries/", h.summaryByID)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activitiesUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWrappedWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope wrapped:write required")
		return
	}

	files, err := readUploadFiles(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "no files uploaded")
		return
	}

	format := domain.Format(queryOrForm(r, "format"))
	if format == "" {
		// Filename sniffing is a convenience only; clients that know the
		// format pass it explicitly.
		format = parser.DetectFormat(files[0].Name)
	}

	unit := domain.Unit(queryOrForm(r, "unit"))
	if unit == "" {
		unit = domain.UnitKilometers
	}

	summary, stats, err := h.service.ProcessActivitiesUpload(r.Context(), domain.ActivitiesUploadInput{
		TenantID: claims.TenantID,
		UserID:   claims.Subject,
		Format:   format,
		Unit:     unit,
		Files:    files,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFormat):
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		case errors.Is(err, domain.ErrFileUnreadable):
			writeError(w, http.StatusBadRequest, "invalid_file", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		}
		return
	}

	resp := ActivitiesSummaryResponse{
		SummaryView:        toSummaryView(*summary),
		TotalDistanceKm:    stats.TotalDistance,
		TotalDistanceMiles: parser.KilometersToMiles(stats.TotalDistance),
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) stepsUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWrappedWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope wrapped:write required")
		return
	}

	files, err := readUploadFiles(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "no files uploaded")
		return
	}

	summary, stats, err := h.service.ProcessStepsUpload(r.Context(), domain.StepsUploadInput{
		TenantID: claims.TenantID,
		UserID:   claims.Subject,
		Files:    files,
	})
	if err != nil {
		if errors.Is(err, domain.ErrFileUnreadable) {
			writeError(w, http.StatusBadRequest, "invalid_file", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	resp := StepsSummaryResponse{
		SummaryView: toSummaryView(*summary),
		TotalSteps:  stats.TotalSteps,
		TotalWeeks:  stats.TotalWeeks,
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) summaryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/summaries/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing summary id")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWrappedRead) && !claims.HasScope(auth.ScopeWrappedWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope wrapped:read required")
		return
	}

	summary, err := h.service.GetSummary(r.Context(), claims.TenantID, id)
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "summary not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toSummaryView(*summary))
}

func (h *Handler) listSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeWrappedRead) && !claims.HasScope(auth.ScopeWrappedWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope wrapped:read required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	summaries, next, err := h.service.ListSummaries(r.Context(), claims.TenantID, userID, cursor, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]SummaryView, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, toSummaryView(summary))
	}

	writeJSON(w, http.StatusOK, ListSummariesResponse{
		Items:      items,
		NextCursor: persistence.EncodeCursor(next),
	})
}

// readUploadFiles collects the multipart file parts of an upload batch.
// Both "files" (repeated) and a single "file" part are accepted.
func readUploadFiles(r *http.Request) ([]domain.UploadFile, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		parts = r.MultipartForm.File["file"]
	}

	files := make([]domain.UploadFile, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, domain.UploadFile{Name: part.Filename, Data: data})
	}
	return files, nil
}

func queryOrForm(r *http.Request, key string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return r.FormValue(key)
}

// SummaryView exposes a persisted summary with its stats payload.
type SummaryView struct {
	SummaryID string          `json:"summary_id"`
	UserID    string          `json:"user_id"`
	Kind      string          `json:"kind"`
	Year      int             `json:"year"`
	CreatedAt time.Time       `json:"created_at"`
	Stats     json.RawMessage `json:"stats"`
}

// ActivitiesSummaryResponse is the response body of an activities upload.
type ActivitiesSummaryResponse struct {
	SummaryView
	TotalDistanceKm    float64 `json:"total_distance_km"`
	TotalDistanceMiles float64 `json:"total_distance_miles"`
}

// StepsSummaryResponse is the response body of a steps upload.
type StepsSummaryResponse struct {
	SummaryView
	TotalSteps int `json:"total_steps"`
	TotalWeeks int `json:"total_weeks"`
}

// ListSummariesResponse packages list results.
type ListSummariesResponse struct {
	Items      []SummaryView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func toSummaryView(summary domain.Summary) SummaryView {
	return SummaryView{
		SummaryID: summary.ID,
		UserID:    summary.UserID,
		Kind:      string(summary.Kind),
		Year:      summary.Year,
		CreatedAt: summary.CreatedAt,
		Stats:     summary.Payload,
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
