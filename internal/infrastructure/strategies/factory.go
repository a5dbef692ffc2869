package strategies

import (
	"time"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
)

// ForAlgorithm собирает стратегию по имени алгоритма из конфигурации.
// Комбинированный алгоритм объединяет бесплатную библиотечную
// стратегию pdfcpu и инструментальную ghostscript.
func ForAlgorithm(compression entities.AppCompressionConfig, timeout time.Duration) (repositories.CompressionStrategy, error) {
	switch compression.Algorithm {
	case entities.AlgorithmCombined:
		return NewCombinedStrategy(NewPDFCPUStrategy(), NewGhostscriptStrategy(timeout)), nil
	case entities.AlgorithmPDFCPU:
		return NewPDFCPUStrategy(), nil
	case entities.AlgorithmUniPDF:
		return NewUniPDFStrategy(compression.UniPDFLicenseKey), nil
	case entities.AlgorithmGhostscript:
		return NewGhostscriptStrategy(timeout), nil
	}
	return nil, entities.ErrUnknownAlgorithm
}
