package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/valueobject"
	"github.com/ca-srg/tzbuddy/infrastructure/logging"
)

func sampleResult(t *testing.T) *entity.ConversionResult {
	t.Helper()
	eastern, err := valueobject.NewTimezoneID("US/Eastern")
	require.NoError(t, err)
	london, err := valueobject.NewTimezoneID("Europe/London")
	require.NoError(t, err)

	instant := time.Date(2025, 6, 21, 18, 30, 0, 0, time.UTC)
	result := entity.NewConversionResult(entity.NewZonedInstant(eastern, instant))
	result.AddTarget(entity.NewZonedInstant(london, instant))
	return result
}

func TestCSVReportWrite(t *testing.T) {
	repo := NewCSVReportRepository(&logging.NoOpLogger{})
	assert.Equal(t, entity.ExportFormatCSV, repo.Format())

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, repo.Write(sampleResult(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"), "missing UTF-8 BOM")
	assert.Contains(t, content, "timezone,local_time,utc_offset,relative,is_source")
	assert.Contains(t, content, "US/Eastern,2025-06-21 14:30:00 EDT,-0400,local time,true")
	assert.Contains(t, content, "Europe/London,2025-06-21 19:30:00 BST,+0100,5 hours ahead,false")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCSVReportRejectsBadPath(t *testing.T) {
	repo := NewCSVReportRepository(&logging.NoOpLogger{})

	tests := []struct {
		name string
		path string
	}{
		{"wrong extension", filepath.Join(t.TempDir(), "report.txt")},
		{"path traversal", "../escape.csv"},
		{"hidden file", filepath.Join(t.TempDir(), ".hidden.csv")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, repo.Write(sampleResult(t), tt.path))
		})
	}
}

func TestJSONReportWrite(t *testing.T) {
	repo := NewJSONReportRepository(&logging.NoOpLogger{})
	assert.Equal(t, entity.ExportFormatJSON, repo.Format())

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, repo.Write(sampleResult(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "US/Eastern", report.Source)
	require.Len(t, report.Entries, 2)
	assert.True(t, report.Entries[0].IsSource)
	assert.Equal(t, "local time", report.Entries[0].Relative)
	assert.Equal(t, "Europe/London", report.Entries[1].Timezone)
	assert.Equal(t, "5 hours ahead", report.Entries[1].Relative)
}

func TestReportWriteNilResult(t *testing.T) {
	csvRepo := NewCSVReportRepository(&logging.NoOpLogger{})
	jsonRepo := NewJSONReportRepository(&logging.NoOpLogger{})

	assert.Error(t, csvRepo.Write(nil, filepath.Join(t.TempDir(), "r.csv")))
	assert.Error(t, jsonRepo.Write(nil, filepath.Join(t.TempDir(), "r.json")))
}
