package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"timetrack/internal/blob"
	apperrors "timetrack/internal/errors"
)

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

const defaultExportTTL = 60 * time.Minute

// ExportResult describes a materialized export.
type ExportResult struct {
	DownloadURL string    `json:"download_url"`
	Filename    string    `json:"filename"`
	ExpiresAt   time.Time `json:"expires_at"`
	Size        int64     `json:"size"`
}

// ExportStats summarizes the currently stored export objects.
type ExportStats struct {
	ObjectCount int   `json:"object_count"`
	TotalSize   int64 `json:"total_size"`
}

// ExportService serializes tabular rows to CSV or XLSX, stores the payload
// in object storage and returns a time-limited pre-signed download link.
type ExportService interface {
	Export(ctx context.Context, format string, header []string, rows [][]string, filenameHint string, ttl time.Duration) (*ExportResult, error)
	Fetch(ctx context.Context, key, expires, sig string) ([]byte, string, error)
	Stats(ctx context.Context) (*ExportStats, error)
}

type exportService struct {
	store   blob.Store
	signer  *blob.Signer
	baseURL string
}

// NewExportService creates an export service. A nil store means export
// storage is not configured; every export call then fails fast.
func NewExportService(store blob.Store, signer *blob.Signer, baseURL string) ExportService {
	return &exportService{
		store:   store,
		signer:  signer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Export serializes rows, uploads the object under a fresh unique key and
// schedules a best-effort deferred deletion at TTL expiry. The deletion
// timer is process-local; the periodic sweep is the durable backstop.
func (s *exportService) Export(ctx context.Context, format string, header []string, rows [][]string, filenameHint string, ttl time.Duration) (*ExportResult, error) {
	if s.store == nil {
		return nil, apperrors.ErrExportUnavailable
	}
	if ttl <= 0 {
		ttl = defaultExportTTL
	}

	var payload []byte
	var ext string
	var err error
	switch format {
	case FormatCSV:
		payload, err = serializeCSV(header, rows)
		ext = "csv"
	case FormatExcel:
		payload, err = serializeXLSX(header, rows)
		ext = "xlsx"
	default:
		return nil, apperrors.NewValidationError(map[string]string{"format": "format must be csv or excel"})
	}
	if err != nil {
		return nil, fmt.Errorf("serialize export: %w", err)
	}

	key := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	if err := s.store.Put(ctx, key, payload); err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}

	expiresAt := time.Now().Add(ttl)
	time.AfterFunc(ttl, func() {
		_ = s.store.Delete(context.Background(), key)
	})

	filename := sanitizeFilename(filenameHint)
	if filename == "" {
		filename = "export"
	}
	return &ExportResult{
		DownloadURL: fmt.Sprintf("%s/api/exports/download/%s?expires=%d&sig=%s",
			s.baseURL, key, expiresAt.Unix(), s.signer.Sign(key, expiresAt)),
		Filename:  fmt.Sprintf("%s.%s", filename, ext),
		ExpiresAt: expiresAt,
		Size:      int64(len(payload)),
	}, nil
}

// Fetch verifies a pre-signed link and returns the payload with its
// content type. Expired or tampered links read as absent objects.
func (s *exportService) Fetch(ctx context.Context, key, expires, sig string) ([]byte, string, error) {
	if s.store == nil {
		return nil, "", apperrors.ErrExportUnavailable
	}
	if !s.signer.Verify(key, expires, sig) {
		return nil, "", apperrors.ErrNotFound
	}
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	contentType := "text/csv"
	if strings.HasSuffix(key, ".xlsx") {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return data, contentType, nil
}

// Stats reports object count and total size of stored exports.
func (s *exportService) Stats(ctx context.Context) (*ExportStats, error) {
	if s.store == nil {
		return nil, apperrors.ErrExportUnavailable
	}
	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := &ExportStats{ObjectCount: len(objects)}
	for _, obj := range objects {
		stats.TotalSize += obj.Size
	}
	return stats, nil
}

func serializeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return nil, err
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func serializeXLSX(header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rowIdx := 1
	writeRow := func(cells []string) error {
		axis, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, cell := range cells {
			values[i] = cell
		}
		rowIdx++
		return f.SetSheetRow(sheet, axis, &values)
	}

	if len(header) > 0 {
		if err := writeRow(header); err != nil {
			return nil, err
		}
	}
	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sanitizeFilename keeps the hint shell- and header-safe.
func sanitizeFilename(hint string) string {
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
