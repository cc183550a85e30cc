package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dirsum/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Keep the log file inside the test sandbox
			tempDir := t.TempDir()
			t.Setenv(paths.EnvStateDir, tempDir)

			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}

			logPath := filepath.Join(tempDir, "dirsum.log")
			if _, err := os.Stat(logPath); os.IsNotExist(err) {
				t.Errorf("Log file was not created at %s", logPath)
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("treehash")
	logger.Debug().Msg("hello")

	output := buf.String()
	if !strings.Contains(output, `"component":"treehash"`) {
		t.Errorf("expected component field in output, got %s", output)
	}
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	logger := GetLogger("test")
	done := LogOperationStart(logger, "scan")
	done()

	output := buf.String()
	if !strings.Contains(output, "Operation started") {
		t.Errorf("missing start line: %s", output)
	}
	if !strings.Contains(output, "Operation completed") {
		t.Errorf("missing completion line: %s", output)
	}
	if !strings.Contains(output, `"operation":"scan"`) {
		t.Errorf("missing operation field: %s", output)
	}
}
