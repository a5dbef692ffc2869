package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"squeezer/internal/infrastructure/logging"
)

func TestNewFileLogger_Disabled(t *testing.T) {
	logger, err := logging.NewFileLogger("squeezer.log", "info", 10, 3, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if logger != nil {
		t.Error("Disabled logging must return nil logger")
	}
}

func TestFileLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := logging.NewFileLogger(path, "debug", 10, 3, true)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Info("обработка файла %s", "doc.pdf")
	logger.Success("файл сжат на %d%%", 45)
	logger.Error("стратегия %s не справилась", "ghostscript")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Log file not created: %v", err)
	}

	content := string(data)
	for _, fragment := range []string{"doc.pdf", "45%", "ghostscript", "status=success"} {
		if !strings.Contains(content, fragment) {
			t.Errorf("Expected %q in log output: %s", fragment, content)
		}
	}
}

func TestFileLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := logging.NewFileLogger(path, "verbose", 10, 3, true)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Debug("не должно попасть в лог")
	logger.Info("должно попасть в лог")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Log file not created: %v", err)
	}

	content := string(data)
	if strings.Contains(content, "не должно попасть") {
		t.Error("Debug message must be filtered at info level")
	}
	if !strings.Contains(content, "должно попасть") {
		t.Error("Info message must be written")
	}
}
