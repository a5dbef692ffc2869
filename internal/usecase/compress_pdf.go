package usecases

import (
	"context"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
)

// PDFCompressor оркестратор сжатия одного файла: прогоняет набор
// стратегий, выбирает наименьший успешный результат и атомарно пишет
// его в выходной файл. Настраивается один раз профилем качества;
// не хранит изменяемого состояния и безопасен для параллельных
// вызовов из нескольких воркеров.
type PDFCompressor struct {
	strategies []repositories.CompressionStrategy
	fileRepo   repositories.FileRepository
	preset     entities.QualityPreset
	logger     repositories.Logger
}

// NewPDFCompressor создает оркестратор сжатия.
// Недопустимый профиль качества отклоняется сразу: это нарушение
// контракта вызывающей стороной, а не условие выполнения.
func NewPDFCompressor(
	preset entities.QualityPreset,
	fileRepo repositories.FileRepository,
	logger repositories.Logger,
	strategySet ...repositories.CompressionStrategy,
) (*PDFCompressor, error) {
	if !preset.Valid() {
		return nil, entities.ErrInvalidQualityPreset
	}

	return &PDFCompressor{
		strategies: strategySet,
		fileRepo:   fileRepo,
		preset:     preset,
		logger:     logger,
	}, nil
}

// Compress сжимает один PDF файл. Никогда не возвращает ошибку
// вызывающему: любая неудача кодируется в полях CompressionOutcome.
func (c *PDFCompressor) Compress(ctx context.Context, inputPath, outputPath string) entities.CompressionOutcome {
	task := entities.Task{InputPath: inputPath, OutputPath: outputPath}

	// Исходный размер. Нечитаемый вход дает итог с маркером "error",
	// выходной файл не создается.
	doc, err := c.fileRepo.GetFileInfo(inputPath)
	if err != nil {
		c.logError("не удалось прочитать входной файл %s: %v", inputPath, err)
		return entities.NewErrorOutcome(task, 0)
	}
	originalSize := doc.Size

	// Прогоняем настроенный набор стратегий
	results := make([]*entities.CompressionResult, 0, len(c.strategies))
	for _, strategy := range c.strategies {
		result := strategy.Attempt(ctx, inputPath, c.preset)
		if !result.Success {
			// Неудача отдельной стратегии не фатальна, просто
			// исключается из выбора
			c.logDebug("стратегия %s не справилась с %s: %v", strategy.Name(), inputPath, result.Err)
		}
		results = append(results, result)
	}

	best := entities.BestResult(results...)
	defer discardExcept(results, best)

	if best == nil {
		// Все стратегии провалились: в выходном файле остается оригинал
		if outputPath != inputPath {
			if err := c.fileRepo.CopyFile(inputPath, outputPath); err != nil {
				c.logError("не удалось сохранить оригинал в %s: %v", outputPath, err)
				return entities.NewErrorOutcome(task, originalSize)
			}
		}
		c.logWarning("ни одна стратегия не сжала %s, оригинал сохранен", inputPath)
		return entities.NewCompressionOutcome(task, originalSize, originalSize, entities.StrategyNone)
	}

	// Победивший результат пишется даже без выигрыша в размере:
	// вызывающему нужен валидный выходной файл в любом случае
	if err := c.fileRepo.ReplaceFile(best.ArtifactPath, outputPath); err != nil {
		c.logError("не удалось записать результат в %s: %v", outputPath, err)
		return entities.NewErrorOutcome(task, originalSize)
	}
	best.ArtifactPath = ""

	return entities.NewCompressionOutcome(task, originalSize, best.SizeBytes, best.Strategy)
}

// Preset возвращает настроенный профиль качества
func (c *PDFCompressor) Preset() entities.QualityPreset {
	return c.preset
}

// discardExcept удаляет артефакты всех результатов, кроме победившего
func discardExcept(results []*entities.CompressionResult, keep *entities.CompressionResult) {
	for _, r := range results {
		if r != keep {
			r.Discard()
		}
	}
}

func (c *PDFCompressor) logDebug(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(format, args...)
	}
}

func (c *PDFCompressor) logWarning(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warning(format, args...)
	}
}

func (c *PDFCompressor) logError(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Error(format, args...)
	}
}
