package usecases_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
	infraRepos "squeezer/internal/infrastructure/repositories"
	usecases "squeezer/internal/usecase"
)

// stubStrategy управляемая стратегия для тестов: либо пишет payload
// в настоящий временный файл, либо возвращает заданную ошибку
type stubStrategy struct {
	name    string
	payload []byte
	err     error

	mu           sync.Mutex
	lastArtifact string
}

func (s *stubStrategy) Name() string {
	return s.name
}

func (s *stubStrategy) Attempt(ctx context.Context, inputPath string, preset entities.QualityPreset) *entities.CompressionResult {
	if s.err != nil {
		return entities.NewFailedResult(s.name, s.err)
	}

	artifact, err := os.CreateTemp("", "stub-*.pdf")
	if err != nil {
		return entities.NewFailedResult(s.name, err)
	}
	if _, err := artifact.Write(s.payload); err != nil {
		artifact.Close()
		return entities.NewFailedResult(s.name, err)
	}
	artifact.Close()

	s.mu.Lock()
	s.lastArtifact = artifact.Name()
	s.mu.Unlock()

	return entities.NewSuccessResult(s.name, artifact.Name(), int64(len(s.payload)))
}

func writeTestFile(t *testing.T, path string, size int) []byte {
	t.Helper()
	data := bytes.Repeat([]byte{'x'}, size)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return data
}

func newTestCompressor(t *testing.T, strategies ...*stubStrategy) *usecases.PDFCompressor {
	t.Helper()

	set := make([]repositories.CompressionStrategy, len(strategies))
	for i, s := range strategies {
		set[i] = s
	}

	compressor, err := usecases.NewPDFCompressor(
		entities.PresetEbook,
		infraRepos.NewFileSystemRepository(),
		nil,
		set...,
	)
	if err != nil {
		t.Fatalf("Failed to create compressor: %v", err)
	}
	return compressor
}

func TestNewPDFCompressor_InvalidPreset(t *testing.T) {
	_, err := usecases.NewPDFCompressor("ultra", infraRepos.NewFileSystemRepository(), nil)
	if !errors.Is(err, entities.ErrInvalidQualityPreset) {
		t.Errorf("Expected ErrInvalidQualityPreset, got %v", err)
	}
}

func TestPDFCompressor_SelectsSmallestResult(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	output := filepath.Join(dir, "output.pdf")
	writeTestFile(t, input, 1000)

	large := &stubStrategy{name: "pdfcpu", payload: bytes.Repeat([]byte{'a'}, 800)}
	small := &stubStrategy{name: "ghostscript", payload: bytes.Repeat([]byte{'b'}, 300)}
	compressor := newTestCompressor(t, large, small)

	outcome := compressor.Compress(context.Background(), input, output)

	if outcome.Failed() {
		t.Fatalf("Unexpected failure: %+v", outcome)
	}
	if outcome.BestStrategy != "ghostscript" {
		t.Errorf("Expected winner ghostscript, got %q", outcome.BestStrategy)
	}
	if outcome.FinalSize != 300 {
		t.Errorf("Expected final size 300, got %d", outcome.FinalSize)
	}
	if !outcome.Improved || outcome.ReductionPercent != 70 {
		t.Errorf("Expected 70%% improvement, got improved=%v percent=%d", outcome.Improved, outcome.ReductionPercent)
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Output file not written: %v", err)
	}
	if !bytes.Equal(written, small.payload) {
		t.Error("Output content must match the winning artifact")
	}

	// Артефакт проигравшей стратегии удален
	if _, err := os.Stat(large.lastArtifact); !os.IsNotExist(err) {
		t.Error("Losing artifact must be discarded")
	}
	// Артефакт победителя перемещен, а не скопирован
	if _, err := os.Stat(small.lastArtifact); !os.IsNotExist(err) {
		t.Error("Winning artifact must be moved to the output path")
	}
}

func TestPDFCompressor_LibraryAndToolScenario(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.pdf")
	output := filepath.Join(dir, "report-out.pdf")
	writeTestFile(t, input, 10_000_000)

	library := &stubStrategy{name: "pdfcpu", payload: bytes.Repeat([]byte{'l'}, 6_000_000)}
	tool := &stubStrategy{name: "ghostscript", payload: bytes.Repeat([]byte{'t'}, 5_500_000)}
	compressor := newTestCompressor(t, library, tool)

	outcome := compressor.Compress(context.Background(), input, output)

	if outcome.BestStrategy != "ghostscript" {
		t.Errorf("Expected tool strategy to win, got %q", outcome.BestStrategy)
	}
	if outcome.FinalSize != 5_500_000 {
		t.Errorf("Expected final size 5500000, got %d", outcome.FinalSize)
	}
	if !outcome.Improved {
		t.Error("Expected improvement")
	}
	if outcome.ReductionPercent != 45 {
		t.Errorf("Expected 45%% reduction, got %d%%", outcome.ReductionPercent)
	}
}

func TestPDFCompressor_TieFavorsFirstStrategy(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	writeTestFile(t, input, 1000)

	first := &stubStrategy{name: "pdfcpu", payload: bytes.Repeat([]byte{'a'}, 500)}
	second := &stubStrategy{name: "ghostscript", payload: bytes.Repeat([]byte{'b'}, 500)}
	compressor := newTestCompressor(t, first, second)

	outcome := compressor.Compress(context.Background(), input, filepath.Join(dir, "output.pdf"))

	if outcome.BestStrategy != "pdfcpu" {
		t.Errorf("On equal sizes the earlier strategy must win, got %q", outcome.BestStrategy)
	}
}

func TestPDFCompressor_AllStrategiesFailed(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	output := filepath.Join(dir, "output.pdf")
	original := writeTestFile(t, input, 500)

	broken := &stubStrategy{name: "pdfcpu", err: errors.New("parse error")}
	missing := &stubStrategy{name: "ghostscript", err: errors.New("gs not found")}
	compressor := newTestCompressor(t, broken, missing)

	outcome := compressor.Compress(context.Background(), input, output)

	if outcome.Failed() {
		t.Fatal("Total strategy failure is not an error outcome")
	}
	if outcome.BestStrategy != entities.StrategyNone {
		t.Errorf("Expected strategy %q, got %q", entities.StrategyNone, outcome.BestStrategy)
	}
	if outcome.FinalSize != 500 || outcome.Improved {
		t.Errorf("Expected final=500 improved=false, got final=%d improved=%v", outcome.FinalSize, outcome.Improved)
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Original must be preserved at the output path: %v", err)
	}
	if !bytes.Equal(written, original) {
		t.Error("Output content must match the original file")
	}
}

func TestPDFCompressor_UnreadableInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "output.pdf")

	compressor := newTestCompressor(t, &stubStrategy{name: "pdfcpu", payload: []byte("abc")})

	outcome := compressor.Compress(context.Background(), filepath.Join(dir, "missing.pdf"), output)

	if !outcome.Failed() {
		t.Fatalf("Expected error outcome, got %+v", outcome)
	}
	if outcome.OriginalSize != 0 || outcome.FinalSize != 0 {
		t.Errorf("Expected zero sizes, got original=%d final=%d", outcome.OriginalSize, outcome.FinalSize)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("Output file must not be created for unreadable input")
	}
}

func TestPDFCompressor_WinnerLargerThanOriginal(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	output := filepath.Join(dir, "output.pdf")
	writeTestFile(t, input, 1000)

	bloated := &stubStrategy{name: "pdfcpu", payload: bytes.Repeat([]byte{'a'}, 1200)}
	compressor := newTestCompressor(t, bloated)

	outcome := compressor.Compress(context.Background(), input, output)

	if outcome.Failed() {
		t.Fatalf("Unexpected failure: %+v", outcome)
	}
	if outcome.BestStrategy != "pdfcpu" {
		t.Errorf("Winner name must be surfaced even without improvement, got %q", outcome.BestStrategy)
	}
	if outcome.Improved || outcome.ReductionPercent != 0 {
		t.Errorf("Expected no improvement, got improved=%v percent=%d", outcome.Improved, outcome.ReductionPercent)
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Output file not written: %v", err)
	}
	if len(written) != 1200 {
		t.Errorf("Expected winner content of 1200 bytes, got %d", len(written))
	}
}

func TestPDFCompressor_InPlaceReplace(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	writeTestFile(t, input, 1000)

	small := &stubStrategy{name: "ghostscript", payload: bytes.Repeat([]byte{'b'}, 200)}
	compressor := newTestCompressor(t, small)

	outcome := compressor.Compress(context.Background(), input, input)

	if outcome.Failed() {
		t.Fatalf("Unexpected failure: %+v", outcome)
	}

	written, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("Input file disappeared: %v", err)
	}
	if !bytes.Equal(written, small.payload) {
		t.Error("In-place mode must replace the original content")
	}
}
