package entities

import "os"

// CompressionResult результат одной попытки сжатия стратегией.
// Инвариант: при Success валидны ArtifactPath и SizeBytes,
// при неудаче валиден только Err.
type CompressionResult struct {
	Strategy     string // имя стратегии
	Success      bool
	ArtifactPath string // временный файл с результатом
	SizeBytes    int64
	Err          error
}

// NewSuccessResult создает успешный результат попытки сжатия
func NewSuccessResult(strategy, artifactPath string, sizeBytes int64) *CompressionResult {
	return &CompressionResult{
		Strategy:     strategy,
		Success:      true,
		ArtifactPath: artifactPath,
		SizeBytes:    sizeBytes,
	}
}

// NewFailedResult создает результат неудачной попытки сжатия
func NewFailedResult(strategy string, err error) *CompressionResult {
	return &CompressionResult{
		Strategy: strategy,
		Err:      err,
	}
}

// Discard удаляет временный артефакт результата
func (r *CompressionResult) Discard() {
	if r.ArtifactPath != "" {
		_ = os.Remove(r.ArtifactPath)
		r.ArtifactPath = ""
	}
}

// BestResult выбирает среди попыток успешную с наименьшим размером.
// При равных размерах сохраняется более ранняя попытка, поэтому
// библиотечная стратегия при ничьей побеждает инструментальную.
// Возвращает nil, если успешных попыток нет.
func BestResult(results ...*CompressionResult) *CompressionResult {
	var best *CompressionResult
	for _, r := range results {
		if r == nil || !r.Success {
			continue
		}
		if best == nil || r.SizeBytes < best.SizeBytes {
			best = r
		}
	}
	return best
}
