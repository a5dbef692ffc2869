package entities

import "math"

// Маркеры поля BestStrategy
const (
	// StrategyError: входной файл не прочитан или результат не записан.
	// Единственный маркер, по которому CLI выставляет ненулевой код выхода.
	StrategyError = "error"
	// StrategyNone: все стратегии провалились, оригинал сохранен в выходном файле
	StrategyNone = "none"
)

// Task задание на сжатие одного файла
type Task struct {
	InputPath  string
	OutputPath string
}

// CompressionOutcome итоговый результат сжатия одного файла.
// Создается один раз и не изменяется после создания.
type CompressionOutcome struct {
	InputPath        string
	OutputPath       string
	OriginalSize     int64
	FinalSize        int64
	BestStrategy     string // имя победившей стратегии либо маркер
	Improved         bool   // true, если FinalSize < OriginalSize
	ReductionPercent int
}

// NewCompressionOutcome создает итоговый результат для победившей стратегии
func NewCompressionOutcome(task Task, originalSize, finalSize int64, bestStrategy string) CompressionOutcome {
	outcome := CompressionOutcome{
		InputPath:    task.InputPath,
		OutputPath:   task.OutputPath,
		OriginalSize: originalSize,
		FinalSize:    finalSize,
		BestStrategy: bestStrategy,
	}

	if bestStrategy != StrategyError && bestStrategy != StrategyNone && finalSize < originalSize {
		outcome.Improved = true
		outcome.ReductionPercent = ReductionPercent(originalSize, finalSize)
	}

	return outcome
}

// NewErrorOutcome создает результат для файла, который не удалось обработать
func NewErrorOutcome(task Task, originalSize int64) CompressionOutcome {
	return CompressionOutcome{
		InputPath:    task.InputPath,
		OutputPath:   task.OutputPath,
		OriginalSize: originalSize,
		BestStrategy: StrategyError,
	}
}

// Failed сообщает, что файл не был обработан
func (o CompressionOutcome) Failed() bool {
	return o.BestStrategy == StrategyError
}

// SavedBytes возвращает количество сэкономленных байт
func (o CompressionOutcome) SavedBytes() int64 {
	if !o.Improved {
		return 0
	}
	return o.OriginalSize - o.FinalSize
}

// ReductionPercent вычисляет процент уменьшения размера.
// Для пустого исходного файла возвращает 0.
func ReductionPercent(originalSize, finalSize int64) int {
	if originalSize == 0 {
		return 0
	}
	return int(math.Round(100 * (1 - float64(finalSize)/float64(originalSize))))
}
