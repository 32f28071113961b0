package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/ca-srg/tzbuddy/domain/valueobject"
)

func exportRequestResult(t *testing.T) *ConversionResult {
	t.Helper()
	zone, err := valueobject.NewTimezoneID("Asia/Tokyo")
	if err != nil {
		t.Fatalf("NewTimezoneID() error = %v", err)
	}
	instant := time.Date(2025, 6, 21, 18, 30, 0, 0, time.UTC)
	return NewConversionResult(NewZonedInstant(zone, instant))
}

func TestNewExportRequest(t *testing.T) {
	result := exportRequestResult(t)
	req := NewExportRequest(result, ExportFormatCSV, "/tmp/out.csv")

	if req.Result != result {
		t.Error("NewExportRequest() should keep the result")
	}
	if req.Format != ExportFormatCSV {
		t.Errorf("Format = %q, want %q", req.Format, ExportFormatCSV)
	}
	if req.OutputPath != "/tmp/out.csv" {
		t.Errorf("OutputPath = %q, want %q", req.OutputPath, "/tmp/out.csv")
	}
}

func TestGenerateFilename(t *testing.T) {
	req := NewExportRequest(exportRequestResult(t), ExportFormatJSON, "")

	name := req.GenerateFilename()
	if !strings.HasPrefix(name, "tzbuddy_Asia_Tokyo_") {
		t.Errorf("GenerateFilename() = %q, want tzbuddy_Asia_Tokyo_ prefix", name)
	}
	if !strings.HasSuffix(name, ".json") {
		t.Errorf("GenerateFilename() = %q, want .json suffix", name)
	}
}

func TestEffectivePath(t *testing.T) {
	tests := []struct {
		name       string
		outputPath string
		dir        string
		wantPrefix string
	}{
		{
			name:       "explicit path wins",
			outputPath: "/tmp/report.csv",
			dir:        "/var/exports",
			wantPrefix: "/tmp/report.csv",
		},
		{
			name:       "generated path lands in dir",
			outputPath: "",
			dir:        "/var/exports",
			wantPrefix: "/var/exports/tzbuddy_Asia_Tokyo_",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewExportRequest(exportRequestResult(t), ExportFormatCSV, tt.outputPath)
			got := req.EffectivePath(tt.dir)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("EffectivePath() = %q, want prefix %q", got, tt.wantPrefix)
			}
		})
	}
}
