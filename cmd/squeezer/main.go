package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
	"squeezer/internal/infrastructure/config"
	"squeezer/internal/infrastructure/logging"
	"squeezer/internal/infrastructure/strategies"
)

var (
	cfgFile     string
	outputFile  string
	outputDir   string
	inPlace     bool
	quality     string
	jobs        int
	quiet       bool
	dryRun      bool
	showVersion bool
)

var (
	version = "2.1.5"
)

// rootCmd базовая команда CLI. Без аргументов запускается TUI режим
// обработки директории из конфигурации; с аргументами запускается консольное
// сжатие перечисленных файлов.
var rootCmd = &cobra.Command{
	Use:   "squeezer [files...]",
	Short: "Надежное сжатие PDF файлов несколькими стратегиями",
	Long: `PDF Squeezer сжимает PDF файлы, запуская несколько независимых
стратегий сжатия и сохраняя наименьший валидный результат.

Стратегии:
- pdfcpu: пересериализация PDF библиотекой (без внешних зависимостей)
- ghostscript: внешний бинарник gs с профилями качества
- unipdf: альтернативная библиотека (требует лицензионный ключ)
- combined: обе стратегии, побеждает меньший результат

Примеры:

  squeezer                              # TUI режим по config.yaml
  squeezer document.pdf                 # создаст document.compressed.pdf
  squeezer document.pdf -o small.pdf    # создаст small.pdf
  squeezer *.pdf -d compressed/         # пакетное сжатие в директорию
  squeezer -i *.pdf                     # замена оригинальных файлов
  squeezer *.pdf -j 4                   # 4 параллельных воркера
  squeezer *.pdf -n                     # проба без сохранения результатов`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("squeezer v%s\n", version)
			return nil
		}

		if err := validateFlags(args); err != nil {
			return err
		}

		configRepo := config.NewRepository()
		appConfig, err := configRepo.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		applyFlagOverrides(appConfig)

		if err := appConfig.Compression.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if len(args) == 0 {
			return runTUI(appConfig)
		}
		return runConsole(ctx, appConfig, args)
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "config.yaml", "путь к файлу конфигурации")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "имя выходного файла (только для одного файла)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "директория для сжатых файлов")
	rootCmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "заменять оригинальные файлы")
	rootCmd.Flags().StringVarP(&quality, "quality", "Q", "", "профиль качества: screen, ebook, printer, prepress, default")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "число параллельных воркеров (0 - авто)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "подавить вывод кроме ошибок")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "проба сжатия без сохранения результатов")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "показать версию и выйти")
}

// validateFlags проверяет совместимость флагов
func validateFlags(args []string) error {
	if outputFile != "" && len(args) > 1 {
		return fmt.Errorf("флаг -o нельзя использовать с несколькими файлами, используйте -d")
	}
	if outputFile != "" && inPlace {
		return fmt.Errorf("флаги -o и -i несовместимы")
	}
	if dryRun && (outputFile != "" || inPlace) {
		return fmt.Errorf("флаг --dry-run несовместим с -o и -i")
	}
	if jobs < 0 {
		return fmt.Errorf("число воркеров не может быть отрицательным")
	}
	return nil
}

// applyFlagOverrides переносит значения флагов поверх конфигурации
func applyFlagOverrides(appConfig *entities.Config) {
	if quality != "" {
		appConfig.Compression.Quality = quality
	}
	if jobs > 0 {
		appConfig.Processing.ParallelWorkers = jobs
	}
}

// warnMissingGhostscript предупреждает об отсутствии ghostscript,
// когда выбранный алгоритм от него зависит
func warnMissingGhostscript(appConfig *entities.Config) {
	algorithm := appConfig.Compression.Algorithm
	if algorithm != entities.AlgorithmCombined && algorithm != entities.AlgorithmGhostscript {
		return
	}
	if _, err := strategies.LookupGhostscript(); err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "⚠️  ghostscript не найден в PATH, инструментальная стратегия будет пропускаться")
	fmt.Fprintln(os.Stderr, "   Установка: apt install ghostscript | brew install ghostscript")
}

// newFileLogger создает файловый логгер из конфигурации вывода.
// Возвращает nil интерфейс, когда логирование в файл выключено.
func newFileLogger(appConfig *entities.Config) repositories.Logger {
	fileLogger, err := logging.NewFileLogger(
		appConfig.Output.LogFileName,
		appConfig.Output.LogLevel,
		appConfig.Output.LogMaxSizeMB,
		appConfig.Output.LogMaxBackups,
		appConfig.Output.LogToFile,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Предупреждение: не удалось инициализировать логгер: %v\n", err)
		return nil
	}
	if fileLogger == nil {
		return nil
	}
	return fileLogger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}
