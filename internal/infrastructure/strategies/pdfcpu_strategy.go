package strategies

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"squeezer/internal/domain/entities"
)

// PDFCPUStrategy библиотечная стратегия: пересериализация PDF через
// pdfcpu (сжатие потоков, удаление неиспользуемых объектов).
// Детерминирована для фиксированного входа и версии библиотеки.
type PDFCPUStrategy struct{}

// NewPDFCPUStrategy создает новую pdfcpu стратегию
func NewPDFCPUStrategy() *PDFCPUStrategy {
	return &PDFCPUStrategy{}
}

// Name возвращает имя стратегии
func (s *PDFCPUStrategy) Name() string {
	return entities.AlgorithmPDFCPU
}

// Attempt пытается сжать PDF файл оптимизатором pdfcpu.
// Профиль качества не влияет на pdfcpu: библиотека не перекодирует
// изображения, а только переупаковывает объекты и потоки.
func (s *PDFCPUStrategy) Attempt(ctx context.Context, inputPath string, preset entities.QualityPreset) *entities.CompressionResult {
	if err := ctx.Err(); err != nil {
		return entities.NewFailedResult(s.Name(), err)
	}

	artifact := artifactPath(s.Name())

	if err := api.OptimizeFile(inputPath, artifact, nil); err != nil {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка оптимизации pdfcpu: %w", err))
	}

	info, err := os.Stat(artifact)
	if err != nil {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка чтения результата pdfcpu: %w", err))
	}
	if info.Size() == 0 {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), entities.ErrEmptyOutput)
	}

	return entities.NewSuccessResult(s.Name(), artifact, info.Size())
}
