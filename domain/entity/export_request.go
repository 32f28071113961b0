package entity

import (
	"path/filepath"
	"strings"
	"time"
)

// ExportFormat selects the report serialization
type ExportFormat string

const (
	// ExportFormatCSV writes a delimited text report
	ExportFormatCSV ExportFormat = "csv"

	// ExportFormatJSON writes a structured interchange document
	ExportFormatJSON ExportFormat = "json"
)

// ExportRequest represents a request to export a conversion result
type ExportRequest struct {
	Result     *ConversionResult
	Format     ExportFormat
	OutputPath string
}

// NewExportRequest creates a new export request. An empty output path
// means a generated filename in the configured output directory.
func NewExportRequest(result *ConversionResult, format ExportFormat, outputPath string) ExportRequest {
	return ExportRequest{
		Result:     result,
		Format:     format,
		OutputPath: outputPath,
	}
}

// GenerateFilename generates a filename for the export from the source
// zone and the current time
func (e *ExportRequest) GenerateFilename() string {
	zone := strings.ReplaceAll(e.Result.SourceZone().Name(), "/", "_")
	timestamp := time.Now().Format("20060102_150405")
	return "tzbuddy_" + zone + "_" + timestamp + "." + string(e.Format)
}

// EffectivePath returns the explicit output path, or a generated
// filename inside dir when none was given
func (e *ExportRequest) EffectivePath(dir string) string {
	if e.OutputPath != "" {
		return e.OutputPath
	}
	return filepath.Join(dir, e.GenerateFilename())
}
