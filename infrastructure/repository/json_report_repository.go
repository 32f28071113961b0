package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// JSONReportRepository writes conversion results as JSON
type JSONReportRepository struct {
	logger domain.Logger
}

// NewJSONReportRepository creates a new JSONReportRepository instance
func NewJSONReportRepository(logger domain.Logger) repository.ReportWriterRepository {
	return &JSONReportRepository{
		logger: logger,
	}
}

// Format returns the format this writer produces
func (r *JSONReportRepository) Format() entity.ExportFormat {
	return entity.ExportFormatJSON
}

type jsonReportEntry struct {
	Timezone  string `json:"timezone"`
	LocalTime string `json:"local_time"`
	UTCOffset string `json:"utc_offset"`
	Relative  string `json:"relative"`
	IsSource  bool   `json:"is_source"`
}

type jsonReport struct {
	Source  string            `json:"source_timezone"`
	Entries []jsonReportEntry `json:"entries"`
}

// Write serializes a conversion result to a JSON file
func (r *JSONReportRepository) Write(result *entity.ConversionResult, outputPath string) error {
	if result == nil {
		return domain.ErrInvalidInput("result", "conversion result is nil")
	}
	if err := validateReportPath(outputPath, ".json"); err != nil {
		return err
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.ErrFileOperationWithCause("create directory", dir, err)
	}

	report := jsonReport{
		Source: result.SourceZone().Name(),
	}
	for _, e := range result.Entries() {
		report.Entries = append(report.Entries, jsonReportEntry{
			Timezone:  e.Instant.Zone.Name(),
			LocalTime: e.Instant.Rendered(),
			UTCOffset: e.Instant.OffsetString(),
			Relative:  e.RelativeDiff,
			IsSource:  e.IsSource,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return domain.ErrExportWithCause("marshal report", outputPath, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return domain.ErrFileOperationWithCause("write file", outputPath, err)
	}

	r.logger.Info(context.TODO(), "JSON export completed",
		domain.NewField("outputPath", outputPath),
		domain.NewField("entries", len(report.Entries)))

	return nil
}
