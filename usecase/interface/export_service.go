package usecase

import (
	"github.com/ca-srg/tzbuddy/domain/entity"
)

// ExportService defines the interface for exporting conversion results
type ExportService interface {
	// Export writes a conversion result in the requested format,
	// generating a timestamped filename when the request has no
	// explicit output path. It returns the path written.
	Export(req entity.ExportRequest) (string, error)
}
