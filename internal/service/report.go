package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"crmapi/internal/export"
	"crmapi/internal/repository"
	"crmapi/internal/storage"
)

// ExportQuery selects the customers and the row layout of an export.
type ExportQuery struct {
	Search    string
	CountryID *int64
	StateID   *int64
	Mode      string
}

// ExportFile is a rendered workbook ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Rows        int
	Body        *bytes.Buffer
}

// ExportLink points at a published workbook.
type ExportLink struct {
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	Rows      int       `json:"rows"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReportService builds customer spreadsheets.
type ReportService interface {
	// Export renders every customer matching q into an xlsx workbook.
	Export(ctx context.Context, q ExportQuery) (*ExportFile, error)
	// Publish renders the workbook, uploads it to object storage and returns a presigned download link.
	Publish(ctx context.Context, q ExportQuery) (*ExportLink, error)
}

type reportService struct {
	customers  repository.CustomerRepository
	store      storage.Storage
	linkExpiry time.Duration
	loc        *time.Location
	now        func() time.Time
}

// NewReportService constructs a new ReportService. store may be nil, in which case Publish
// fails with ErrStorageUnavailable.
func NewReportService(customers repository.CustomerRepository, store storage.Storage, linkExpiry time.Duration, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{customers: customers, store: store, linkExpiry: linkExpiry, loc: loc, now: time.Now}
}

func (s *reportService) Export(ctx context.Context, q ExportQuery) (*ExportFile, error) {
	mode, err := export.ParseMode(q.Mode)
	if err != nil {
		return nil, fieldError("mode", "must be one of separate, combined")
	}

	customers, err := s.customers.ListAll(ctx, repository.CustomerFilter{Search: q.Search, CountryID: q.CountryID, StateID: q.StateID})
	if err != nil {
		return nil, err
	}

	rows := export.Rows(customers, mode, s.loc)
	body, err := export.Workbook(rows)
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	return &ExportFile{
		Filename:    export.Filename(mode, s.now(), s.loc),
		ContentType: export.ContentType,
		Rows:        len(rows),
		Body:        body,
	}, nil
}

func (s *reportService) Publish(ctx context.Context, q ExportQuery) (*ExportLink, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	file, err := s.Export(ctx, q)
	if err != nil {
		return nil, err
	}

	key := path.Join("exports", uuid.NewString(), file.Filename)
	if _, err := s.store.Put(ctx, key, file.Body, storage.PutObjectOptions{
		Size:               int64(file.Body.Len()),
		ContentType:        file.ContentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", file.Filename),
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.linkExpiry)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Ctx(ctx).Warn().Err(delErr).Str("key", key).Msg("export cleanup failed")
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &ExportLink{
		URL:       url,
		Filename:  file.Filename,
		Rows:      file.Rows,
		ExpiresAt: s.now().Add(s.linkExpiry).UTC(),
	}, nil
}
