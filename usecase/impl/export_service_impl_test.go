package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/valueobject"
	"github.com/ca-srg/tzbuddy/infrastructure/logging"
)

func exportableResult(t *testing.T) *entity.ConversionResult {
	t.Helper()
	zone, err := valueobject.NewTimezoneID("Asia/Tokyo")
	require.NoError(t, err)
	instant := time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC)
	return entity.NewConversionResult(entity.NewZonedInstant(zone, instant))
}

func TestExportExplicitPath(t *testing.T) {
	csvWriter := &recordingWriter{format: entity.ExportFormatCSV}
	jsonWriter := &recordingWriter{format: entity.ExportFormatJSON}
	svc := NewExportService(newStubConfigService(), &logging.NoOpLogger{}, csvWriter, jsonWriter)

	result := exportableResult(t)
	path, err := svc.Export(entity.ExportRequest{
		Result:     result,
		Format:     entity.ExportFormatJSON,
		OutputPath: "/tmp/out.json",
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.json", path)
	assert.Equal(t, "/tmp/out.json", jsonWriter.lastPath)
	assert.Same(t, result, jsonWriter.lastValue)
	assert.Empty(t, csvWriter.lastPath)
}

func TestExportGeneratedFilename(t *testing.T) {
	csvWriter := &recordingWriter{format: entity.ExportFormatCSV}
	cfgSvc := newStubConfigService()
	cfgSvc.cfg.Export.OutputDir = "/tmp/reports"
	svc := NewExportService(cfgSvc, &logging.NoOpLogger{}, csvWriter)

	path, err := svc.Export(entity.ExportRequest{Result: exportableResult(t)})
	require.NoError(t, err)

	// Default format is csv; the filename carries the source zone with
	// slashes flattened
	assert.Contains(t, path, "/tmp/reports/tzbuddy_Asia_Tokyo_")
	assert.Contains(t, path, ".csv")
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := NewExportService(newStubConfigService(), &logging.NoOpLogger{},
		&recordingWriter{format: entity.ExportFormatCSV})

	_, err := svc.Export(entity.ExportRequest{
		Result: exportableResult(t),
		Format: entity.ExportFormat("xml"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidInput))
}

func TestExportNilResult(t *testing.T) {
	svc := NewExportService(newStubConfigService(), &logging.NoOpLogger{},
		&recordingWriter{format: entity.ExportFormatCSV})

	_, err := svc.Export(entity.ExportRequest{})
	require.Error(t, err)
}
