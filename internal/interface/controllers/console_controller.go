package controllers

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"squeezer/internal/domain/entities"
)

// ConsoleController выводит результаты сжатия в консоль: построчные
// результаты, итоговая таблица, подтверждение операции
type ConsoleController struct {
	out   io.Writer
	in    io.Reader
	quiet bool
}

// NewConsoleController создает новый консольный контроллер
func NewConsoleController(out io.Writer, in io.Reader, quiet bool) *ConsoleController {
	return &ConsoleController{
		out:   out,
		in:    in,
		quiet: quiet,
	}
}

// Confirm показывает сводку операции и запрашивает подтверждение
func (c *ConsoleController) Confirm(tasks []entities.Task, inPlace bool, outputDir string) bool {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Файлов для сжатия: %d\n", len(tasks))

	// Показываем до 5 имен файлов
	sampleCount := len(tasks)
	if sampleCount > 5 {
		sampleCount = 5
	}
	for _, task := range tasks[:sampleCount] {
		fmt.Fprintf(c.out, "  • %s\n", filepath.Base(task.InputPath))
	}
	if len(tasks) > sampleCount {
		fmt.Fprintf(c.out, "  ... и еще %d\n", len(tasks)-sampleCount)
	}

	switch {
	case inPlace:
		fmt.Fprintln(c.out, "Вывод: замена оригинальных файлов")
	case outputDir != "":
		fmt.Fprintf(c.out, "Вывод: %s/\n", outputDir)
	default:
		fmt.Fprintln(c.out, "Вывод: рядом с исходными файлами (*.compressed.pdf)")
	}

	fmt.Fprint(c.out, "\nПродолжить сжатие? [y/N]: ")

	reader := bufio.NewReader(c.in)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

// ShowResult выводит результат сжатия одного файла
func (c *ConsoleController) ShowResult(outcome entities.CompressionOutcome) {
	if c.quiet {
		return
	}

	name := filepath.Base(outcome.InputPath)

	switch {
	case outcome.Failed():
		fmt.Fprintf(c.out, "  ✗ %s ОШИБКА\n", name)
	case outcome.Improved:
		fmt.Fprintf(c.out, "  ✓ %s %s → %s (-%d%%) через %s\n",
			name,
			FormatSize(outcome.OriginalSize),
			FormatSize(outcome.FinalSize),
			outcome.ReductionPercent,
			outcome.BestStrategy)
	default:
		fmt.Fprintf(c.out, "  • %s %s → %s (без уменьшения)\n",
			name,
			FormatSize(outcome.OriginalSize),
			FormatSize(outcome.FinalSize))
	}
}

// ShowSummary выводит итоговую таблицу пакетной обработки
func (c *ConsoleController) ShowSummary(outcomes []entities.CompressionOutcome) {
	if c.quiet || len(outcomes) < 2 {
		return
	}

	var totalOriginal, totalFinal int64

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Итоги сжатия")
	fmt.Fprintf(c.out, "%-40s %12s %12s %10s  %s\n", "Файл", "Исходный", "Сжатый", "Сжатие", "Стратегия")
	fmt.Fprintln(c.out, strings.Repeat("─", 90))

	for _, outcome := range outcomes {
		totalOriginal += outcome.OriginalSize
		totalFinal += outcome.FinalSize

		name := truncateName(filepath.Base(outcome.InputPath), 40)

		if outcome.Failed() {
			fmt.Fprintf(c.out, "%-40s %12s %12s %10s  %s\n",
				name, FormatSize(outcome.OriginalSize), "-", "ОШИБКА", "-")
			continue
		}

		reduction := "0%"
		if outcome.Improved {
			reduction = fmt.Sprintf("-%d%%", outcome.ReductionPercent)
		}

		fmt.Fprintf(c.out, "%-40s %12s %12s %10s  %s\n",
			name,
			FormatSize(outcome.OriginalSize),
			FormatSize(outcome.FinalSize),
			reduction,
			outcome.BestStrategy)
	}

	fmt.Fprintln(c.out, strings.Repeat("─", 90))
	fmt.Fprintf(c.out, "%-40s %12s %12s %9d%%\n",
		"ИТОГО",
		FormatSize(totalOriginal),
		FormatSize(totalFinal),
		-entities.ReductionPercent(totalOriginal, totalFinal))
}

// FormatSize форматирует размер файла в человекочитаемом виде
func FormatSize(bytes int64) string {
	const unit = 1024

	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}

// truncateName усекает имя файла с учетом UTF-8
func truncateName(name string, maxLength int) string {
	runes := []rune(name)
	if len(runes) <= maxLength {
		return name
	}
	return string(runes[:maxLength-3]) + "..."
}
