package strategies

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"squeezer/internal/domain/entities"
)

// DefaultGhostscriptTimeout ограничивает время одного вызова ghostscript,
// чтобы зависший процесс не блокировал воркер бесконечно
const DefaultGhostscriptTimeout = 120 * time.Second

// Кандидаты имени бинарника ghostscript в PATH
var ghostscriptBinaries = []string{"gs", "gswin64c", "gswin32c"}

// GhostscriptStrategy инструментальная стратегия: вызов внешнего
// бинарника ghostscript с параметрами, выведенными из профиля качества.
type GhostscriptStrategy struct {
	binaryPath string
	timeout    time.Duration
}

// NewGhostscriptStrategy создает новую ghostscript стратегию.
// Бинарник ищется в PATH; при его отсутствии стратегия остается
// рабочей и возвращает неудачный результат на каждую попытку.
func NewGhostscriptStrategy(timeout time.Duration) *GhostscriptStrategy {
	if timeout <= 0 {
		timeout = DefaultGhostscriptTimeout
	}

	path, _ := LookupGhostscript()
	return &GhostscriptStrategy{
		binaryPath: path,
		timeout:    timeout,
	}
}

// LookupGhostscript ищет бинарник ghostscript в PATH
func LookupGhostscript() (string, error) {
	for _, name := range ghostscriptBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", entities.ErrGhostscriptNotFound
}

// Name возвращает имя стратегии
func (s *GhostscriptStrategy) Name() string {
	return entities.AlgorithmGhostscript
}

// IsAvailable проверяет, что бинарник ghostscript найден
func (s *GhostscriptStrategy) IsAvailable() bool {
	return s.binaryPath != ""
}

// Attempt пытается сжать PDF файл внешним процессом ghostscript.
// Все режимы неудачи (бинарник не найден, ненулевой код выхода,
// таймаут, пустой выходной файл) нормализуются в неудачный результат.
func (s *GhostscriptStrategy) Attempt(ctx context.Context, inputPath string, preset entities.QualityPreset) *entities.CompressionResult {
	if s.binaryPath == "" {
		return entities.NewFailedResult(s.Name(), entities.ErrGhostscriptNotFound)
	}

	artifact := artifactPath(s.Name())

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := buildGhostscriptArgs(preset, artifact, inputPath)
	cmd := exec.CommandContext(ctx, s.binaryPath, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		_ = os.Remove(artifact)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return entities.NewFailedResult(s.Name(), fmt.Errorf("ghostscript превысил таймаут %s", s.timeout))
		}
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ghostscript завершился с ошибкой: %w, вывод: %s", err, output.String()))
	}

	info, err := os.Stat(artifact)
	if err != nil {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ghostscript не создал выходной файл: %w", err))
	}
	if info.Size() == 0 {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), entities.ErrEmptyOutput)
	}

	return entities.NewSuccessResult(s.Name(), artifact, info.Size())
}

// buildGhostscriptArgs собирает аргументы вызова ghostscript
// детерминированно из профиля качества
func buildGhostscriptArgs(preset entities.QualityPreset, outputPath, inputPath string) []string {
	dpi := preset.ImageDPI()

	return []string{
		"-sDEVICE=pdfwrite",
		"-dPDFSETTINGS=" + preset.PDFSettings(),
		"-dCompatibilityLevel=1.4",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-dSAFER",
		"-dAutoRotatePages=/None",
		"-dColorImageDownsampleType=/Bicubic",
		fmt.Sprintf("-dColorImageResolution=%d", dpi),
		"-dGrayImageDownsampleType=/Bicubic",
		fmt.Sprintf("-dGrayImageResolution=%d", dpi),
		"-dMonoImageDownsampleType=/Bicubic",
		fmt.Sprintf("-dMonoImageResolution=%d", dpi),
		"-dDownsampleColorImages=true",
		"-dDownsampleGrayImages=true",
		"-dDownsampleMonoImages=true",
		"-dSubsetFonts=true",
		"-sOutputFile=" + outputPath,
		inputPath,
	}
}
