package usecases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
)

// ProcessDirectoryUseCase сценарий обработки всех PDF файлов директории:
// сканирование, построение пакета заданий, параллельное сжатие,
// итоговая статистика.
type ProcessDirectoryUseCase struct {
	fileRepo         repositories.FileRepository
	logger           repositories.Logger
	progressReporter func(entities.ProcessingStatus)
}

// NewProcessDirectoryUseCase создает новый сценарий обработки директории
func NewProcessDirectoryUseCase(
	fileRepo repositories.FileRepository,
	logger repositories.Logger,
) *ProcessDirectoryUseCase {
	return &ProcessDirectoryUseCase{
		fileRepo: fileRepo,
		logger:   logger,
	}
}

// SetProgressReporter устанавливает функцию для отчета о прогрессе
func (uc *ProcessDirectoryUseCase) SetProgressReporter(reporter func(entities.ProcessingStatus)) {
	uc.progressReporter = reporter
}

// reportProgress отправляет обновление прогресса
func (uc *ProcessDirectoryUseCase) reportProgress(status *entities.ProcessingStatus) {
	if uc.progressReporter != nil {
		uc.progressReporter(*status)
	}
}

// Execute выполняет обработку PDF файлов директории согласно конфигурации
func (uc *ProcessDirectoryUseCase) Execute(ctx context.Context, config *entities.Config, parallel *ParallelCompressor) ([]entities.CompressionOutcome, error) {
	// Фаза 1: Инициализация
	status := entities.NewProcessingStatus(0)
	status.SetPhase(entities.PhaseInitializing, "Инициализация обработки...")
	uc.reportProgress(status)

	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Начало обработки PDF файлов")
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Исходная директория: %s", config.Scanner.SourceDirectory)

	if config.Scanner.ReplaceOriginal {
		uc.logInfo("║ Режим: Замена оригинальных файлов")
	} else {
		uc.logInfo("║ Целевая директория: %s", config.Scanner.TargetDirectory)
	}

	uc.logInfo("║ Алгоритм: %s", config.Compression.Algorithm)
	uc.logInfo("║ Профиль качества: %s", config.Compression.Quality)
	uc.logInfo("║ Параллельных воркеров: %d", config.Processing.ParallelWorkers)
	uc.logInfo("╚════════════════════════════════════════════════════════════")

	// Проверяем существование исходной директории
	if !uc.fileRepo.FileExists(config.Scanner.SourceDirectory) {
		err := fmt.Errorf("%w: %s", entities.ErrDirectoryNotFound, config.Scanner.SourceDirectory)
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	// Создаем целевую директорию, если нужно
	if !config.Scanner.ReplaceOriginal {
		if err := uc.fileRepo.CreateDirectory(config.Scanner.TargetDirectory); err != nil {
			err = fmt.Errorf("ошибка создания целевой директории: %w", err)
			status.Fail(err)
			uc.reportProgress(status)
			return nil, err
		}
	}

	// Фаза 2: Сканирование файлов
	status.SetPhase(entities.PhaseScanning, "Сканирование PDF файлов...")
	uc.reportProgress(status)
	uc.logInfo("🔍 Сканирование директории...")

	files, err := uc.fileRepo.ListPDFFiles(config.Scanner.SourceDirectory)
	if err != nil {
		err = fmt.Errorf("ошибка получения списка файлов: %w", err)
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	if len(files) == 0 {
		uc.logWarning("⚠️  PDF файлы не найдены в директории: %s", config.Scanner.SourceDirectory)
		status.Complete()
		uc.reportProgress(status)
		return nil, nil
	}

	status.TotalFiles = len(files)
	uc.logSuccess("✓ Найдено файлов для обработки: %d", len(files))

	tasks, err := uc.buildTasks(config, files)
	if err != nil {
		status.Fail(err)
		uc.reportProgress(status)
		return nil, err
	}

	// Фаза 3: Сжатие файлов
	status.SetPhase(entities.PhaseCompressing, "Сжатие PDF файлов...")
	uc.reportProgress(status)
	uc.logInfo("")
	uc.logInfo("🔄 Начало сжатия файлов...")
	uc.logInfo("─────────────────────────────────────────────────────────────")

	// Колбэк завершения сериализован самим ParallelCompressor,
	// дополнительная блокировка здесь не нужна
	fileCounter := 0
	outcomes := parallel.CompressBatch(ctx, tasks, func(outcome entities.CompressionOutcome) {
		fileCounter++
		status.AddOutcome(outcome)
		status.SetCurrentFile(outcome.InputPath, outcome.OriginalSize)
		uc.reportProgress(status)
		uc.logOutcome(fileCounter, status.TotalFiles, outcome)
	})

	// Финальная фаза
	status.Complete()
	uc.reportProgress(status)
	uc.logSummary(status)

	return outcomes, nil
}

// buildTasks строит пакет заданий: в режиме замены оригинала выходной
// путь совпадает с входным, иначе структура директорий воспроизводится
// в целевой директории
func (uc *ProcessDirectoryUseCase) buildTasks(config *entities.Config, files []string) ([]entities.Task, error) {
	tasks := make([]entities.Task, 0, len(files))

	for _, inputFile := range files {
		if config.Scanner.ReplaceOriginal {
			tasks = append(tasks, entities.Task{InputPath: inputFile, OutputPath: inputFile})
			continue
		}

		relPath, err := filepath.Rel(config.Scanner.SourceDirectory, inputFile)
		if err != nil {
			relPath = filepath.Base(inputFile)
		}

		outputFile := filepath.Join(config.Scanner.TargetDirectory, relPath)
		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию %s: %w", filepath.Dir(outputFile), err)
		}

		tasks = append(tasks, entities.Task{InputPath: inputFile, OutputPath: outputFile})
	}

	return tasks, nil
}

// logOutcome логирует итог обработки одного файла
func (uc *ProcessDirectoryUseCase) logOutcome(counter, total int, outcome entities.CompressionOutcome) {
	fileName := filepath.Base(outcome.InputPath)

	if outcome.Failed() {
		uc.logError("[%d/%d] ✗ %s", counter, total, fileName)
		uc.logError("    └─ Файл не обработан")
		return
	}

	uc.logSuccess("[%d/%d] ✓ %s", counter, total, fileName)
	uc.logInfo("    └─ Размер: %.2f MB → %.2f MB",
		float64(outcome.OriginalSize)/1024/1024,
		float64(outcome.FinalSize)/1024/1024)

	if outcome.Improved {
		uc.logInfo("    └─ Сжатие: %d%% | Стратегия: %s | Сэкономлено: %.2f MB",
			outcome.ReductionPercent,
			outcome.BestStrategy,
			float64(outcome.SavedBytes())/1024/1024)
	} else {
		uc.logInfo("    └─ Без уменьшения размера")
	}
}

// logSummary логирует итоговую статистику
func (uc *ProcessDirectoryUseCase) logSummary(status *entities.ProcessingStatus) {
	uc.logInfo("")
	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Обработка завершена")
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Время выполнения: %s", status.FormatElapsedTime())
	uc.logInfo("╠════════════════════════════════════════════════════════════")
	uc.logInfo("║ Статистика файлов:")
	uc.logInfo("║   • Всего: %d", status.TotalFiles)
	uc.logSuccess("║   • Успешно: %d", status.SuccessfulFiles)

	if status.FailedFiles > 0 {
		uc.logError("║   • Ошибок: %d", status.FailedFiles)
	}

	if status.TotalOriginalSize > 0 {
		uc.logInfo("╠════════════════════════════════════════════════════════════")
		uc.logInfo("║ Статистика сжатия:")
		uc.logInfo("║   • Исходный размер: %.2f MB", float64(status.TotalOriginalSize)/1024/1024)
		uc.logInfo("║   • Сжатый размер: %.2f MB", float64(status.TotalFinalSize)/1024/1024)
		uc.logSuccess("║   • Среднее сжатие: %.1f%%", status.AverageCompression)
		uc.logSuccess("║   • Сэкономлено: %.2f MB", float64(status.TotalSavedSpace)/1024/1024)
	}

	uc.logInfo("╚════════════════════════════════════════════════════════════")
}

// Методы для логирования
func (uc *ProcessDirectoryUseCase) logInfo(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Info(format, args...)
	}
}

func (uc *ProcessDirectoryUseCase) logSuccess(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Success(format, args...)
	}
}

func (uc *ProcessDirectoryUseCase) logWarning(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Warning(format, args...)
	}
}

func (uc *ProcessDirectoryUseCase) logError(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Error(format, args...)
	}
}
