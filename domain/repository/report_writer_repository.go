package repository

import (
	"github.com/ca-srg/tzbuddy/domain/entity"
)

// ReportWriterRepository defines the interface for writing a conversion
// result to a file
type ReportWriterRepository interface {
	// Write serializes the result to outputPath
	Write(result *entity.ConversionResult, outputPath string) error

	// Format returns the export format this writer produces
	Format() entity.ExportFormat
}
