package entities

import "time"

// Допустимые алгоритмы сжатия
const (
	AlgorithmCombined    = "combined"
	AlgorithmPDFCPU      = "pdfcpu"
	AlgorithmUniPDF      = "unipdf"
	AlgorithmGhostscript = "ghostscript"
)

// Config представляет конфигурацию приложения
type Config struct {
	Scanner     ScannerConfig        `yaml:"scanner"`
	Compression AppCompressionConfig `yaml:"compression"`
	Processing  ProcessingConfig     `yaml:"processing"`
	Output      OutputConfig         `yaml:"output"`
}

// ScannerConfig настройки сканирования директорий
type ScannerConfig struct {
	SourceDirectory string `yaml:"source_directory"`
	TargetDirectory string `yaml:"target_directory"`
	ReplaceOriginal bool   `yaml:"replace_original"`
}

// AppCompressionConfig настройки сжатия приложения
type AppCompressionConfig struct {
	Quality          string `yaml:"quality"`   // Профиль качества: screen, ebook, printer, prepress, default
	Algorithm        string `yaml:"algorithm"` // combined, pdfcpu, unipdf, ghostscript
	AutoStart        bool   `yaml:"auto_start"`
	UniPDFLicenseKey string `yaml:"unipdf_license_key"`
}

// ProcessingConfig настройки обработки
type ProcessingConfig struct {
	ParallelWorkers int `yaml:"parallel_workers"` // 0 значит по числу ядер CPU
	TimeoutSeconds  int `yaml:"timeout_seconds"`  // таймаут вызова ghostscript
}

// OutputConfig настройки вывода
type OutputConfig struct {
	LogLevel      string `yaml:"log_level"`
	LogToFile     bool   `yaml:"log_to_file"`
	LogFileName   string `yaml:"log_file_name"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
}

// Validate проверяет корректность настроек сжатия
func (c *AppCompressionConfig) Validate() error {
	if _, err := ParseQualityPreset(c.Quality); err != nil {
		return err
	}

	switch c.Algorithm {
	case AlgorithmCombined, AlgorithmPDFCPU, AlgorithmUniPDF, AlgorithmGhostscript:
		return nil
	}
	return ErrUnknownAlgorithm
}

// ProcessingStatus статус обработки
type ProcessingStatus struct {
	// Текущая фаза обработки
	Phase ProcessingPhase

	// Информация о текущем файле
	CurrentFile     string
	CurrentFileSize int64

	// Общая статистика
	TotalFiles      int
	ProcessedFiles  int
	SuccessfulFiles int
	FailedFiles     int

	// Прогресс
	Progress float64

	// Статистика сжатия
	TotalOriginalSize  int64
	TotalFinalSize     int64
	TotalSavedSpace    int64
	AverageCompression float64

	// Последний результат
	LastOutcome *CompressionOutcome

	// Время выполнения
	StartTime     time.Time
	ElapsedTime   time.Duration
	EstimatedTime time.Duration

	// Состояние
	IsComplete bool
	Error      error

	// Сообщение для UI
	Message string
}

// ProcessingPhase фаза обработки
type ProcessingPhase int

const (
	PhaseInitializing ProcessingPhase = iota
	PhaseScanning
	PhaseCompressing
	PhaseCompleted
	PhaseFailed
)

// UIScreen типы экранов UI
type UIScreen int

const (
	UIScreenMenu UIScreen = iota
	UIScreenConfig
	UIScreenProcessing
)

// NewProcessingStatus создает новый статус обработки
func NewProcessingStatus(totalFiles int) *ProcessingStatus {
	return &ProcessingStatus{
		Phase:      PhaseInitializing,
		TotalFiles: totalFiles,
		StartTime:  time.Now(),
	}
}

// UpdateProgress обновляет прогресс обработки
func (ps *ProcessingStatus) UpdateProgress() {
	if ps.TotalFiles > 0 {
		ps.Progress = float64(ps.ProcessedFiles) / float64(ps.TotalFiles) * 100
	}

	ps.ElapsedTime = time.Since(ps.StartTime)

	// Оценка оставшегося времени
	if ps.ProcessedFiles > 0 && ps.ProcessedFiles < ps.TotalFiles {
		avgTimePerFile := ps.ElapsedTime / time.Duration(ps.ProcessedFiles)
		remainingFiles := ps.TotalFiles - ps.ProcessedFiles
		ps.EstimatedTime = avgTimePerFile * time.Duration(remainingFiles)
	}
}

// AddOutcome добавляет итог обработки файла в статистику
func (ps *ProcessingStatus) AddOutcome(outcome CompressionOutcome) {
	ps.ProcessedFiles++
	ps.LastOutcome = &outcome

	if outcome.Failed() {
		ps.FailedFiles++
	} else {
		ps.SuccessfulFiles++
		ps.TotalOriginalSize += outcome.OriginalSize
		ps.TotalFinalSize += outcome.FinalSize
		ps.TotalSavedSpace += outcome.SavedBytes()

		if ps.TotalOriginalSize > 0 {
			ps.AverageCompression = ((float64(ps.TotalOriginalSize) - float64(ps.TotalFinalSize)) / float64(ps.TotalOriginalSize)) * 100
		}
	}

	ps.UpdateProgress()
}

// SetPhase устанавливает фазу обработки
func (ps *ProcessingStatus) SetPhase(phase ProcessingPhase, message string) {
	ps.Phase = phase
	ps.Message = message
}

// SetCurrentFile устанавливает текущий обрабатываемый файл
func (ps *ProcessingStatus) SetCurrentFile(filePath string, size int64) {
	ps.CurrentFile = filePath
	ps.CurrentFileSize = size
}

// Complete завершает обработку
func (ps *ProcessingStatus) Complete() {
	ps.IsComplete = true
	ps.Phase = PhaseCompleted
	ps.Progress = 100
	ps.ElapsedTime = time.Since(ps.StartTime)
	ps.EstimatedTime = 0
}

// Fail отмечает обработку как неудачную
func (ps *ProcessingStatus) Fail(err error) {
	ps.IsComplete = true
	ps.Phase = PhaseFailed
	ps.Error = err
	ps.ElapsedTime = time.Since(ps.StartTime)
}

// String возвращает название фазы
func (phase ProcessingPhase) String() string {
	switch phase {
	case PhaseInitializing:
		return "Инициализация"
	case PhaseScanning:
		return "Сканирование файлов"
	case PhaseCompressing:
		return "Сжатие файлов"
	case PhaseCompleted:
		return "Завершено"
	case PhaseFailed:
		return "Ошибка"
	default:
		return "Неизвестно"
	}
}

// FormatElapsedTime форматирует время выполнения
func (ps *ProcessingStatus) FormatElapsedTime() string {
	if ps.ElapsedTime < time.Second {
		return "< 1 сек"
	}
	return ps.ElapsedTime.Round(time.Second).String()
}

// FormatEstimatedTime форматирует оставшееся время
func (ps *ProcessingStatus) FormatEstimatedTime() string {
	if ps.EstimatedTime == 0 {
		return "N/A"
	}
	if ps.EstimatedTime < time.Second {
		return "< 1 сек"
	}
	return ps.EstimatedTime.Round(time.Second).String()
}
