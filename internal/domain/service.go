// Package domain defines the business logic for the wrapped service.
package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSummaryNotFound is returned when a summary cannot be located.
	ErrSummaryNotFound = errors.New("summary not found")
	// ErrUnsupportedFormat indicates an unknown or mismatched export format tag.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrFileUnreadable wraps file-level extraction failures. Row-level
	// problems never surface here; extractors skip bad rows silently.
	ErrFileUnreadable = errors.New("export file cannot be read")
)

// SummaryKind distinguishes the two summary record shapes.
type SummaryKind string

const (
	SummaryKindActivities SummaryKind = "activities"
	SummaryKindSteps      SummaryKind = "steps"
)

// Summary is the persisted result of one processed upload batch. Payload
// holds the marshalled stats record (AllActivitiesStats or StepsStats).
type Summary struct {
	ID        string
	TenantID  string
	UserID    string
	Kind      SummaryKind
	Year      int
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Cursor models the pagination token for summary listings.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// SummaryRepository captures persistence operations.
type SummaryRepository interface {
	Create(ctx context.Context, summary Summary) error
	Get(ctx context.Context, tenantID, summaryID string) (*Summary, error)
	ListByUser(ctx context.Context, tenantID, userID string, cursor *Cursor, limit int) ([]Summary, *Cursor, error)
}

// SummaryPublisher notifies downstream consumers that a summary exists.
type SummaryPublisher interface {
	SummaryComputed(ctx context.Context, summary Summary) error
}

// Pipeline turns raw export files into rows and rows into summary records.
type Pipeline interface {
	ExtractActivities(data []byte, format Format, unit Unit) ([]MonthlyActivity, error)
	ExtractSteps(data []byte) ([]WeeklySteps, error)
	ActivityStats(rows []MonthlyActivity) AllActivitiesStats
	StepsStats(rows []WeeklySteps) StepsStats
}

// UploadFile is one file from an upload batch.
type UploadFile struct {
	Name string
	Data []byte
}

// ActivitiesUploadInput captures an activity upload batch from the API layer.
type ActivitiesUploadInput struct {
	TenantID string
	UserID   string
	Format   Format
	Unit     Unit
	Files    []UploadFile
}

// StepsUploadInput captures a steps upload batch.
type StepsUploadInput struct {
	TenantID string
	UserID   string
	Files    []UploadFile
}

// Service orchestrates upload processing and summary retrieval.
type Service struct {
	pipeline  Pipeline
	repo      SummaryRepository
	publisher SummaryPublisher
}

// NewService constructs a Service.
func NewService(pipeline Pipeline, repo SummaryRepository, publisher SummaryPublisher) *Service {
	return &Service{pipeline: pipeline, repo: repo, publisher: publisher}
}

// ProcessActivitiesUpload extracts rows from every file in the batch, merges
// them by concatenation and aggregates the result. The first file that fails
// to read aborts the whole batch; malformed rows inside a readable file are
// skipped by the extractors and never abort anything.
func (s *Service) ProcessActivitiesUpload(ctx context.Context, input ActivitiesUploadInput) (*Summary, AllActivitiesStats, error) {
	if !input.Format.Valid() || input.Format == FormatWeeklySteps {
		return nil, AllActivitiesStats{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}
	if !input.Unit.Valid() {
		return nil, AllActivitiesStats{}, fmt.Errorf("%w: unit %q", ErrUnsupportedFormat, input.Unit)
	}

	var rows []MonthlyActivity
	for _, file := range input.Files {
		extracted, err := s.pipeline.ExtractActivities(file.Data, input.Format, input.Unit)
		if err != nil {
			return nil, AllActivitiesStats{}, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, file.Name, err)
		}
		rows = append(rows, extracted...)
	}

	stats := s.pipeline.ActivityStats(rows)
	summary, err := s.storeSummary(ctx, input.TenantID, input.UserID, SummaryKindActivities, stats.Year, stats)
	if err != nil {
		return nil, AllActivitiesStats{}, err
	}
	return summary, stats, nil
}

// ProcessStepsUpload is the steps counterpart of ProcessActivitiesUpload.
func (s *Service) ProcessStepsUpload(ctx context.Context, input StepsUploadInput) (*Summary, StepsStats, error) {
	var rows []WeeklySteps
	for _, file := range input.Files {
		extracted, err := s.pipeline.ExtractSteps(file.Data)
		if err != nil {
			return nil, StepsStats{}, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, file.Name, err)
		}
		rows = append(rows, extracted...)
	}

	stats := s.pipeline.StepsStats(rows)
	summary, err := s.storeSummary(ctx, input.TenantID, input.UserID, SummaryKindSteps, stats.Year, stats)
	if err != nil {
		return nil, StepsStats{}, err
	}
	return summary, stats, nil
}

func (s *Service) storeSummary(ctx context.Context, tenantID, userID string, kind SummaryKind, year int, stats interface{}) (*Summary, error) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		UserID:    userID,
		Kind:      kind,
		Year:      year,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, summary); err != nil {
		return nil, err
	}

	// The summary is already durable; a lost notification is not worth
	// failing the request over.
	if err := s.publisher.SummaryComputed(ctx, summary); err != nil {
		log.Printf("summary event publish failed (summary=%s): %v", summary.ID, err)
	}

	return &summary, nil
}

// GetSummary fetches a summary by ID.
func (s *Service) GetSummary(ctx context.Context, tenantID, summaryID string) (*Summary, error) {
	summary, err := s.repo.Get(ctx, tenantID, summaryID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, ErrSummaryNotFound
	}
	return summary, nil
}

// ListSummaries fetches summaries for a user with cursor pagination.
func (s *Service) ListSummaries(ctx context.Context, tenantID, userID string, cursor *Cursor, limit int) ([]Summary, *Cursor, error) {
	return s.repo.ListByUser(ctx, tenantID, userID, cursor, limit)
}
