package repository

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// CSVReportRepository writes conversion results as CSV
type CSVReportRepository struct {
	logger domain.Logger
}

// NewCSVReportRepository creates a new CSVReportRepository instance
func NewCSVReportRepository(logger domain.Logger) repository.ReportWriterRepository {
	return &CSVReportRepository{
		logger: logger,
	}
}

// Format returns the format this writer produces
func (r *CSVReportRepository) Format() entity.ExportFormat {
	return entity.ExportFormatCSV
}

// Write serializes a conversion result to a CSV file
func (r *CSVReportRepository) Write(result *entity.ConversionResult, outputPath string) error {
	if result == nil {
		return domain.ErrInvalidInput("result", "conversion result is nil")
	}
	if err := validateReportPath(outputPath, ".csv"); err != nil {
		return err
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.ErrFileOperationWithCause("create directory", dir, err)
	}

	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return domain.ErrFileOperationWithCause("create file", outputPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			r.logger.Error(context.TODO(), "Failed to close CSV file",
				domain.NewField("error", closeErr.Error()),
				domain.NewField("path", outputPath))
		}
	}()

	// UTF-8 BOM so spreadsheet tools detect the encoding
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return domain.ErrExportWithCause("write BOM", "failed to write UTF-8 BOM", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"timezone", "local_time", "utc_offset", "relative", "is_source"}
	if err := writer.Write(header); err != nil {
		return domain.ErrExportWithCause("write header", "failed to write CSV header", err)
	}

	for _, e := range result.Entries() {
		row := []string{
			sanitizeCSVField(e.Instant.Zone.Name()),
			e.Instant.Rendered(),
			e.Instant.OffsetString(),
			sanitizeCSVField(e.RelativeDiff),
			boolString(e.IsSource),
		}
		if err := writer.Write(row); err != nil {
			return domain.ErrExportWithCause("write row", e.Instant.Zone.Name(), err)
		}
	}

	if err := writer.Error(); err != nil {
		return domain.ErrExportWithCause("flush", "failed to flush CSV writer", err)
	}

	r.logger.Info(context.TODO(), "CSV export completed",
		domain.NewField("outputPath", outputPath),
		domain.NewField("entries", len(result.Entries())))

	return nil
}

// validateReportPath rejects suspicious output paths
func validateReportPath(path, wantExt string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return domain.ErrFileOperation("validatePath", path, "path traversal is not allowed")
	}

	base := filepath.Base(cleanPath)
	if strings.HasPrefix(base, ".") && base != "." {
		return domain.ErrFileOperation("validatePath", path, "cannot write to hidden files")
	}

	if filepath.Ext(cleanPath) != wantExt {
		return domain.ErrInvalidInput("outputPath", "file must have "+wantExt+" extension")
	}

	return nil
}

// sanitizeCSVField guards against spreadsheet formula injection
func sanitizeCSVField(field string) string {
	for _, prefix := range []string{"=", "+", "@", "\t", "\r", "|"} {
		if strings.HasPrefix(field, prefix) {
			return "'" + field
		}
	}
	return field
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
