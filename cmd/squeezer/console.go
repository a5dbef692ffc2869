package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"squeezer/internal/domain/entities"
	infraRepos "squeezer/internal/infrastructure/repositories"
	"squeezer/internal/interface/controllers"
)

// runConsole выполняет пакетное сжатие файлов, перечисленных в
// аргументах командной строки. Возвращает ошибку, если хотя бы один
// файл завершился с маркером ошибки: main транслирует ее в код выхода 1.
func runConsole(ctx context.Context, appConfig *entities.Config, args []string) error {
	fileLogger := newFileLogger(appConfig)
	if fileLogger != nil {
		defer fileLogger.Close()
	}

	fileRepo := infraRepos.NewFileSystemRepository()
	console := controllers.NewConsoleController(os.Stdout, os.Stdin, quiet)

	files, err := collectInputFiles(fileRepo, args)
	if err != nil {
		return err
	}

	// В режиме пробы результаты пишутся во временную директорию
	// и удаляются после вывода статистики
	tmpDir := ""
	if dryRun {
		tmpDir, err = os.MkdirTemp("", "squeezer-dry-run-")
		if err != nil {
			return fmt.Errorf("не удалось создать временную директорию: %w", err)
		}
		defer os.RemoveAll(tmpDir)
	}

	tasks, err := buildConsoleTasks(files, tmpDir)
	if err != nil {
		return err
	}

	warnMissingGhostscript(appConfig)

	if !quiet && !dryRun {
		if !console.Confirm(tasks, inPlace, outputDir) {
			fmt.Println("Отменено")
			return nil
		}
	}

	parallel, err := buildParallelCompressor(appConfig, fileRepo, fileLogger)
	if err != nil {
		return err
	}

	if !quiet {
		if dryRun {
			fmt.Println("Проба сжатия (результаты не сохраняются):")
		} else {
			fmt.Printf("Сжатие %d файлов (профиль: %s, алгоритм: %s):\n",
				len(tasks), appConfig.Compression.Quality, appConfig.Compression.Algorithm)
		}
	}

	outcomes := parallel.CompressBatch(ctx, tasks, func(outcome entities.CompressionOutcome) {
		console.ShowResult(outcome)
	})

	console.ShowSummary(outcomes)

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("не обработано файлов: %d из %d", failed, len(outcomes))
	}

	return nil
}

// collectInputFiles проверяет перечисленные файлы: несуществующий файл
// останавливает запуск, файлы без расширения .pdf пропускаются с
// предупреждением
func collectInputFiles(fileRepo *infraRepos.FileSystemRepository, args []string) ([]string, error) {
	files := make([]string, 0, len(args))

	for _, arg := range args {
		if !fileRepo.FileExists(arg) {
			return nil, fmt.Errorf("%w: %s", entities.ErrFileNotFound, arg)
		}
		if !strings.EqualFold(filepath.Ext(arg), ".pdf") {
			fmt.Fprintf(os.Stderr, "⚠️  Пропущен файл без расширения .pdf: %s\n", arg)
			continue
		}
		files = append(files, arg)
	}

	if len(files) == 0 {
		return nil, entities.ErrNoFilesFound
	}

	return files, nil
}

// buildConsoleTasks строит пакет заданий по флагам вывода.
// Приоритет: явный выходной файл, замена оригинала, временная
// директория пробы, выходная директория, файл-сосед *.compressed.pdf.
func buildConsoleTasks(files []string, tmpDir string) ([]entities.Task, error) {
	if outputDir != "" && !dryRun {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию %s: %w", outputDir, err)
		}
	}

	tasks := make([]entities.Task, 0, len(files))
	for i, inputPath := range files {
		tasks = append(tasks, entities.Task{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, i, tmpDir),
		})
	}

	return tasks, nil
}

// resolveOutputPath определяет выходной путь одного задания
func resolveOutputPath(inputPath string, index int, tmpDir string) string {
	switch {
	case outputFile != "":
		return outputFile
	case inPlace:
		return inputPath
	case dryRun:
		// Индекс в имени исключает коллизии одноименных файлов
		// из разных директорий
		return filepath.Join(tmpDir, fmt.Sprintf("%d-%s", index, filepath.Base(inputPath)))
	case outputDir != "":
		return filepath.Join(outputDir, filepath.Base(inputPath))
	}

	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + ".compressed.pdf"
}
