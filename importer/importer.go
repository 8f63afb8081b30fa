// Package importer turns a user-supplied CSV file into a bulk
// product-creation request and interprets the structured outcome.
package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"catalog-admin/models"
)

const (
	// MaxUploadSize matches the backend's 50MB cap on bulk uploads.
	MaxUploadSize = 50 * 1024 * 1024

	// maxReportedErrors caps the row errors shown in a report so the
	// summary stays boundable; the remainder is reported as a count.
	maxReportedErrors = 10
)

var (
	allowedExtensions = map[string]bool{
		".csv": true,
	}
	allowedContentTypes = map[string]bool{
		"text/csv":        true,
		"application/csv": true,
	}
)

// Uploader is the one backend call the pipeline needs.
type Uploader interface {
	BulkImport(ctx context.Context, file io.Reader, filename string, progress func(percent int)) (*models.ImportResult, error)
}

// Pipeline validates a selected file, uploads it and interprets the
// response. After any terminal success or partial-success outcome it
// invokes the refresh hook so the view re-fetches server state instead of
// reconstructing it client-side.
type Pipeline struct {
	uploader Uploader
	refresh  func(ctx context.Context) error
	progress func(percent int)
}

type Option func(*Pipeline)

// WithRefresh sets the hook run after every terminal import outcome.
func WithRefresh(refresh func(ctx context.Context) error) Option {
	return func(p *Pipeline) { p.refresh = refresh }
}

// WithProgress wires upload progress reporting (0-100).
func WithProgress(progress func(percent int)) Option {
	return func(p *Pipeline) { p.progress = progress }
}

func New(uploader Uploader, opts ...Option) *Pipeline {
	p := &Pipeline{uploader: uploader}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ValidateFile is the advisory pre-flight check: a file is rejected only
// when its declared content type AND its extension are both non-CSV. The
// backend stays the authority on content validity.
func (p *Pipeline) ValidateFile(filename, contentType string, size int64) error {
	ct := contentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	ext := strings.ToLower(filepath.Ext(filename))

	if !allowedContentTypes[ct] && !allowedExtensions[ext] {
		return fmt.Errorf("invalid file type for %q: only CSV files are allowed", filename)
	}
	if size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	return nil
}

// Import runs the full pipeline: pre-flight, upload, interpretation. A
// pre-flight failure issues no network call. A transport or HTTP failure
// returns an error with nothing assumed imported. Otherwise the returned
// Report carries the uploaded count and up to the first ten row errors.
func (p *Pipeline) Import(ctx context.Context, file io.Reader, filename, contentType string, size int64) (*Report, error) {
	if err := p.ValidateFile(filename, contentType, size); err != nil {
		return nil, err
	}

	result, err := p.uploader.BulkImport(ctx, file, filename, p.progress)
	if err != nil {
		zap.L().Error("bulk import failed", zap.String("file", filename), zap.Error(err))
		return nil, fmt.Errorf("upload csv: %w", err)
	}

	report := newReport(result)

	if p.refresh != nil {
		if err := p.refresh(ctx); err != nil {
			// The import itself is terminal; a failed refresh only means
			// the view is stale until the next manual refresh.
			zap.L().Warn("product refresh after import failed", zap.Error(err))
		}
	}

	return report, nil
}

// Report is the user-facing interpretation of an ImportResult.
type Report struct {
	Uploaded  int
	RowErrors []string // first maxReportedErrors row errors, in order
	Remainder int      // row errors beyond RowErrors
}

// Partial reports whether some rows were rejected.
func (r *Report) Partial() bool {
	return len(r.RowErrors) > 0
}

// Summary renders the outcome the way the admin screen toasts it.
func (r *Report) Summary() string {
	if !r.Partial() {
		return fmt.Sprintf("Successfully uploaded %d products!", r.Uploaded)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CSV upload completed with %d errors:\n\n", len(r.RowErrors)+r.Remainder)
	b.WriteString(strings.Join(r.RowErrors, "\n"))
	if r.Remainder > 0 {
		fmt.Fprintf(&b, "\n\n... and %d more errors", r.Remainder)
	}
	return b.String()
}

func newReport(result *models.ImportResult) *Report {
	report := &Report{Uploaded: result.Uploaded}
	if len(result.Errors) <= maxReportedErrors {
		report.RowErrors = result.Errors
	} else {
		report.RowErrors = result.Errors[:maxReportedErrors]
		report.Remainder = len(result.Errors) - maxReportedErrors
	}
	return report
}
