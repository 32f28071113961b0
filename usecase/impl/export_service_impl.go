package impl

import (
	"context"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
	usecase "github.com/ca-srg/tzbuddy/usecase/interface"
)

// ExportServiceImpl implements the ExportService interface
type ExportServiceImpl struct {
	writers       map[entity.ExportFormat]repository.ReportWriterRepository
	configService usecase.ConfigService
	logger        domain.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	configService usecase.ConfigService,
	logger domain.Logger,
	writers ...repository.ReportWriterRepository,
) usecase.ExportService {
	byFormat := make(map[entity.ExportFormat]repository.ReportWriterRepository, len(writers))
	for _, w := range writers {
		byFormat[w.Format()] = w
	}
	return &ExportServiceImpl{
		writers:       byFormat,
		configService: configService,
		logger:        logger,
	}
}

// Export writes a conversion result in the requested format and returns
// the path written
func (s *ExportServiceImpl) Export(req entity.ExportRequest) (string, error) {
	if req.Result == nil {
		return "", domain.ErrInvalidInput("result", "nothing to export")
	}

	exportCfg := s.configService.GetConfig().Export
	if req.Format == "" {
		req.Format = entity.ExportFormat(exportCfg.DefaultFormat)
	}

	writer, ok := s.writers[req.Format]
	if !ok {
		return "", domain.ErrInvalidInput("format", "unsupported export format: "+string(req.Format))
	}

	path := req.EffectivePath(exportCfg.OutputDir)

	if err := writer.Write(req.Result, path); err != nil {
		return "", err
	}

	s.logger.Info(context.Background(), "Export completed",
		domain.NewField("format", string(req.Format)),
		domain.NewField("path", path))

	return path, nil
}
