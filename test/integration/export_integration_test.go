//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/infrastructure/di"
)

func TestExportIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	container, err := di.NewContainer(di.WithDebugMode(true))
	require.NoError(t, err)
	defer func() { _ = container.Close() }()

	controller := container.GetCLIController()
	require.NotNil(t, controller)

	t.Run("CSVExport", func(t *testing.T) {
		outputPath := filepath.Join(tempDir, "conversion.csv")

		err := controller.Convert("US/Eastern", "14:30", "2025-06-21",
			[]string{"Europe/London", "Asia/Tokyo"}, "csv", outputPath)
		require.NoError(t, err)

		info, err := os.Stat(outputPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		content, err := os.ReadFile(outputPath)
		require.NoError(t, err)

		require.True(t, len(content) >= 3)
		assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, content[:3])

		lines := strings.Split(string(content[3:]), "\n")
		require.True(t, len(lines) >= 4)
		assert.Equal(t, "timezone,local_time,utc_offset,relative,is_source", lines[0])
		assert.Contains(t, lines[1], "US/Eastern")
		assert.Contains(t, lines[1], "local time")
		assert.Contains(t, lines[2], "Europe/London")
	})

	t.Run("JSONExport", func(t *testing.T) {
		outputPath := filepath.Join(tempDir, "conversion.json")

		err := controller.Convert("Asia/Tokyo", "", "", nil, "json", outputPath)
		require.NoError(t, err)

		content, err := os.ReadFile(outputPath)
		require.NoError(t, err)

		var decoded struct {
			Source  string `json:"source_timezone"`
			Entries []struct {
				Timezone string `json:"timezone"`
			} `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.Equal(t, "Asia/Tokyo", decoded.Source)
		assert.NotEmpty(t, decoded.Entries)
	})

	t.Run("GeneratedFilename", func(t *testing.T) {
		t.Setenv("TZBUDDY_EXPORT_OUTPUT_DIR", tempDir)

		container, err := di.NewContainer()
		require.NoError(t, err)
		defer func() { _ = container.Close() }()

		err = container.GetCLIController().Convert("UTC", "", "", nil, string(entity.ExportFormatCSV), "")
		require.NoError(t, err)

		matches, err := filepath.Glob(filepath.Join(tempDir, "tzbuddy_UTC_*.csv"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}
