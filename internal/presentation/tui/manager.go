package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"squeezer/internal/domain/entities"
	"squeezer/internal/infrastructure/config"
)

// UI Configuration constants
const (
	MaxLogBufferSize     = 1000
	LogFlushInterval     = 50 * time.Millisecond
	ProgressBarWidth     = 40
	MaxFileNameLength    = 60
	MaxFileNameDisplay   = 57
	ProgressViewHeight   = 10
	FormItemLicenseIndex = 5
)

var (
	qualityOptions   = []string{"screen", "ebook", "printer", "prepress", "default"}
	algorithmOptions = []string{"combined", "pdfcpu", "unipdf", "ghostscript"}
)

// Manager управляет TUI интерфейсом
type Manager struct {
	app           *tview.Application
	pages         *tview.Pages
	currentScreen entities.UIScreen

	// UI компоненты
	mainMenu     *tview.List
	configForm   *tview.Form
	progressView *tview.TextView
	logView      *tview.TextView

	// Callbacks
	onStartProcessing func()

	// Состояние
	configPath   string
	configRepo   *config.Repository
	configData   *entities.Config
	logBuffer    []string
	statusMutex  sync.RWMutex
	isProcessing bool

	// Батчинг логов через канал
	logChan chan string
	logDone chan struct{}
}

// NewManager создает новый менеджер TUI
func NewManager(configPath string) *Manager {
	m := &Manager{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		configPath: configPath,
		configRepo: config.NewRepository(),
		logBuffer:  make([]string, 0, MaxLogBufferSize),
		logChan:    make(chan string, 100),
		logDone:    make(chan struct{}),
	}
	go m.logProcessor()
	return m
}

// Initialize инициализирует TUI
func (m *Manager) Initialize() {
	m.loadConfig()
	m.createUI()
	m.setupKeyBindings()
}

// Run запускает TUI
func (m *Manager) Run() error {
	return m.app.SetRoot(m.pages, true).EnableMouse(true).Run()
}

// SetOnStartProcessing устанавливает callback для начала обработки
func (m *Manager) SetOnStartProcessing(callback func()) {
	m.onStartProcessing = callback
}

// SendStatusUpdate отправляет обновление статуса
func (m *Manager) SendStatusUpdate(status entities.ProcessingStatus) {
	m.updateProgress(status)
}

// GetConfig возвращает копию текущей конфигурации
func (m *Manager) GetConfig() *entities.Config {
	configCopy := *m.configData
	return &configCopy
}

// loadConfig загружает конфигурацию
func (m *Manager) loadConfig() {
	loaded, err := m.configRepo.Load(m.configPath)
	if err != nil {
		m.configData = config.DefaultConfig()
		return
	}
	m.configData = loaded
}

// saveConfig сохраняет конфигурацию
func (m *Manager) saveConfig() {
	_ = m.configRepo.Save(m.configPath, m.configData)
}

// createUI создает пользовательский интерфейс
func (m *Manager) createUI() {
	m.createMainMenu()
	m.createConfigScreen()
	m.createProcessingScreen()

	m.pages.AddPage("menu", m.mainMenu, true, true)
	m.pages.AddPage("config", m.configForm, true, false)
	m.pages.AddPage("processing", m.createProcessingLayout(), true, false)

	m.currentScreen = entities.UIScreenMenu
}

// createMainMenu создает главное меню
func (m *Manager) createMainMenu() {
	m.mainMenu = tview.NewList().
		AddItem("🚀 Запуск сжатия", "Начать сжатие PDF файлов в исходной директории", '1', func() {
			m.startProcessing()
		}).
		AddItem("⚙️ Конфигурация", "Настроить профиль качества, алгоритм и обработку", '2', func() {
			m.switchToScreen(entities.UIScreenConfig)
		}).
		AddItem("❌ Выход", "Закрыть приложение", 'q', func() {
			m.Cleanup()
			m.app.Stop()
		})

	m.mainMenu.SetBorder(true).
		SetTitle("🔥 PDF Squeezer - Главное меню").
		SetTitleAlign(tview.AlignCenter)

	m.mainMenu.SetSelectedBackgroundColor(tcell.ColorDarkBlue).
		SetSelectedTextColor(tcell.ColorWhite).
		SetMainTextColor(tcell.ColorWhite).
		SetSecondaryTextColor(tcell.ColorGray)
}

// createConfigScreen создает экран конфигурации
func (m *Manager) createConfigScreen() {
	m.configForm = tview.NewForm().
		AddInputField("Исходная директория", m.configData.Scanner.SourceDirectory, 60, nil, func(text string) {
			m.configData.Scanner.SourceDirectory = text
		}).
		AddInputField("Целевая директория", m.configData.Scanner.TargetDirectory, 60, nil, func(text string) {
			m.configData.Scanner.TargetDirectory = text
		}).
		AddCheckbox("Заменить оригинал", m.configData.Scanner.ReplaceOriginal, func(checked bool) {
			m.configData.Scanner.ReplaceOriginal = checked
		}).
		AddDropDown("Профиль качества", qualityOptions, optionIndex(qualityOptions, m.configData.Compression.Quality), func(option string, optionIndex int) {
			m.configData.Compression.Quality = option
		}).
		AddDropDown("Алгоритм", algorithmOptions, optionIndex(algorithmOptions, m.configData.Compression.Algorithm), func(option string, optionIndex int) {
			m.configData.Compression.Algorithm = option
			m.updateLicenseFieldVisibility()
		}).
		AddInputField("Лицензия UniPDF (UNIDOC_LICENSE_API_KEY)", m.configData.Compression.UniPDFLicenseKey, 60, nil, func(text string) {
			m.configData.Compression.UniPDFLicenseKey = text
		}).
		AddCheckbox("Автостарт", m.configData.Compression.AutoStart, func(checked bool) {
			m.configData.Compression.AutoStart = checked
		}).
		AddInputField("Параллельных воркеров (0 - авто)", strconv.Itoa(m.configData.Processing.ParallelWorkers), 10, nil, func(text string) {
			if workers, err := strconv.Atoi(text); err == nil && workers >= 0 {
				m.configData.Processing.ParallelWorkers = workers
			}
		}).
		AddInputField("Таймаут ghostscript (сек)", strconv.Itoa(m.configData.Processing.TimeoutSeconds), 10, nil, func(text string) {
			if seconds, err := strconv.Atoi(text); err == nil && seconds > 0 {
				m.configData.Processing.TimeoutSeconds = seconds
			}
		}).
		AddButton("Сохранить", func() {
			m.saveConfig()
			m.switchToScreen(entities.UIScreenMenu)
			m.mainMenu.SetCurrentItem(1)
		})

	m.updateLicenseFieldVisibility()

	m.configForm.SetBorder(true).
		SetTitle("🔥 PDF Squeezer - Конфигурация (ESC - выйти без сохранения)").
		SetTitleAlign(tview.AlignCenter)

	// Обработка ESC для выхода без сохранения
	m.configForm.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			// Перезагружаем конфигурацию из файла (отменяем изменения)
			m.loadConfig()
			m.switchToScreen(entities.UIScreenMenu)
			return nil
		}
		return event
	})
}

// createProcessingScreen создает экран обработки
func (m *Manager) createProcessingScreen() {
	m.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetScrollable(true)

	m.progressView.SetBorder(true).
		SetTitle("📊 Прогресс обработки").
		SetTitleAlign(tview.AlignCenter)

	m.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(MaxLogBufferSize)

	m.logView.SetBorder(true).
		SetTitle("📋 Журнал событий").
		SetTitleAlign(tview.AlignCenter)
}

// createProcessingLayout создает layout для экрана обработки
func (m *Manager) createProcessingLayout() *tview.Flex {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.logView, 0, 1, false).
		AddItem(m.progressView, ProgressViewHeight, 0, false)
}

// setupKeyBindings настраивает горячие клавиши
func (m *Manager) setupKeyBindings() {
	m.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			m.switchToScreen(entities.UIScreenMenu)
			return nil
		case tcell.KeyF2:
			m.switchToScreen(entities.UIScreenConfig)
			return nil
		case tcell.KeyF3:
			if m.isProcessing {
				m.switchToScreen(entities.UIScreenProcessing)
			}
			return nil
		case tcell.KeyEscape:
			if m.currentScreen == entities.UIScreenConfig {
				// В конфигурации ESC обрабатывается локально формой
				return event
			} else if m.currentScreen != entities.UIScreenMenu {
				m.switchToScreen(entities.UIScreenMenu)
				return nil
			}
		}

		if m.currentScreen == entities.UIScreenMenu {
			switch event.Rune() {
			case '1':
				m.startProcessing()
				return nil
			case '2':
				m.switchToScreen(entities.UIScreenConfig)
				return nil
			case 'q', 'Q':
				m.Cleanup()
				m.app.Stop()
				return nil
			}
		}

		return event
	})
}

// switchToScreen переключает на указанный экран
func (m *Manager) switchToScreen(screen entities.UIScreen) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()

	m.currentScreen = screen

	switch screen {
	case entities.UIScreenMenu:
		m.pages.SwitchToPage("menu")
	case entities.UIScreenConfig:
		m.loadConfig()
		m.refreshConfigForm()
		m.pages.SwitchToPage("config")
	case entities.UIScreenProcessing:
		m.pages.SwitchToPage("processing")
	}
}

// startProcessing начинает обработку
func (m *Manager) startProcessing() {
	m.saveConfig()
	m.isProcessing = true
	m.switchToScreen(entities.UIScreenProcessing)

	if m.onStartProcessing != nil {
		go m.onStartProcessing()
	}
}

// updateProgress обновляет прогресс
func (m *Manager) updateProgress(status entities.ProcessingStatus) {
	if m.progressView == nil {
		return
	}

	progressBar := m.createProgressBar(status.Progress, ProgressBarWidth)
	displayFile := m.truncateFileName(status.CurrentFile, MaxFileNameLength, MaxFileNameDisplay)

	phaseText := status.Phase.String()
	if status.Message != "" {
		phaseText = status.Message
	}

	progressText := fmt.Sprintf(
		"[yellow]⚙️  Фаза:[white] %s\n\n"+
			"[yellow]📁 Текущий файл:[white] %s\n",
		phaseText,
		filepath.Base(displayFile),
	)

	if status.CurrentFileSize > 0 {
		progressText += fmt.Sprintf("[dim]   Размер: %.2f MB[white]\n", float64(status.CurrentFileSize)/1024/1024)
	}

	progressText += fmt.Sprintf(
		"\n[cyan]📊 Прогресс:[white] %s [cyan]%.1f%%[white]\n\n",
		progressBar,
		status.Progress,
	)

	progressText += fmt.Sprintf(
		"[green]📈 Статистика файлов:[white]\n"+
			"  • Всего: [cyan]%d[white]\n"+
			"  • Обработано: [cyan]%d[white]\n"+
			"  • Успешно: [green]%d[white]",
		status.TotalFiles,
		status.ProcessedFiles,
		status.SuccessfulFiles,
	)

	if status.FailedFiles > 0 {
		progressText += fmt.Sprintf("\n  • Ошибок: [red]%d[white]", status.FailedFiles)
	}

	if status.LastOutcome != nil && status.LastOutcome.Improved {
		progressText += fmt.Sprintf("\n  • Последняя стратегия: [cyan]%s[white]", status.LastOutcome.BestStrategy)
	}

	if status.TotalOriginalSize > 0 {
		progressText += fmt.Sprintf(
			"\n\n[green]💾 Статистика сжатия:[white]\n"+
				"  • Исходный размер: [cyan]%.2f MB[white]\n"+
				"  • Сжатый размер: [cyan]%.2f MB[white]\n"+
				"  • Среднее сжатие: [green]%.1f%%[white]\n"+
				"  • Сэкономлено: [green]%.2f MB[white]",
			float64(status.TotalOriginalSize)/1024/1024,
			float64(status.TotalFinalSize)/1024/1024,
			status.AverageCompression,
			float64(status.TotalSavedSpace)/1024/1024,
		)
	}

	progressText += fmt.Sprintf(
		"\n\n[yellow]⏱️  Время:[white]\n"+
			"  • Прошло: [cyan]%s[white]",
		status.FormatElapsedTime(),
	)

	if !status.IsComplete && status.EstimatedTime > 0 {
		progressText += fmt.Sprintf("\n  • Осталось: [cyan]~%s[white]", status.FormatEstimatedTime())
	}

	progressText += "\n\n"

	if status.IsComplete {
		if status.Error != nil {
			progressText += "[red]❌ Обработка завершена с ошибкой![white]\n"
			progressText += fmt.Sprintf("[red]Ошибка: %v[white]\n", status.Error)
		} else {
			progressText += "[green]✅ Обработка успешно завершена![white]\n"
		}
		m.isProcessing = false
	}

	progressText += "\n[yellow]F1[white] - Главное меню\n"

	m.app.QueueUpdateDraw(func() {
		m.progressView.SetText(progressText)
	})
}

// truncateFileName корректно усекает имя файла с учетом UTF-8
func (m *Manager) truncateFileName(fileName string, maxLength, truncateAt int) string {
	runes := []rune(fileName)
	if len(runes) <= maxLength {
		return fileName
	}
	return string(runes[:truncateAt]) + "..."
}

// createProgressBar создает цветной прогресс-бар
func (m *Manager) createProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	filled := int(math.Round(progress * float64(width) / 100))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	const filledChar = "█"
	const emptyChar = "░"

	var color string
	switch {
	case progress < 25:
		color = "red"
	case progress < 50:
		color = "yellow"
	case progress < 75:
		color = "blue"
	default:
		color = "green"
	}

	return fmt.Sprintf("[%s]%s[gray]%s",
		color,
		strings.Repeat(filledChar, filled),
		strings.Repeat(emptyChar, width-filled))
}

// AddLog добавляет запись в лог через канал (неблокирующе)
func (m *Manager) AddLog(level, message string) {
	var color string
	switch strings.ToLower(level) {
	case "error":
		color = "red"
	case "warning":
		color = "yellow"
	case "success":
		color = "green"
	case "debug":
		color = "gray"
	default:
		color = "white"
	}

	logLine := fmt.Sprintf("[%s]%s:[white] %s", color, strings.ToUpper(level), message)

	// Если канал переполнен, пропускаем лог вместо блокировки
	select {
	case m.logChan <- logLine:
	default:
	}
}

// logProcessor обрабатывает логи в отдельной горутине с батчингом
func (m *Manager) logProcessor() {
	ticker := time.NewTicker(LogFlushInterval)
	defer ticker.Stop()

	batch := make([]string, 0, 50)

	for {
		select {
		case logLine := <-m.logChan:
			batch = append(batch, logLine)
			if len(batch) >= 20 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-m.logDone:
			if len(batch) > 0 {
				m.flushLogBatch(batch)
			}
			return
		}
	}
}

// flushLogBatch сбрасывает батч логов в UI
func (m *Manager) flushLogBatch(batch []string) {
	m.statusMutex.Lock()
	m.logBuffer = append(m.logBuffer, batch...)

	if len(m.logBuffer) > MaxLogBufferSize {
		m.logBuffer = m.logBuffer[len(m.logBuffer)-MaxLogBufferSize:]
	}

	logText := strings.Join(m.logBuffer, "\n")
	m.statusMutex.Unlock()

	if m.logView != nil {
		m.app.QueueUpdateDraw(func() {
			if m.logView != nil {
				m.logView.SetText(logText)
				m.logView.ScrollToEnd()
			}
		})
	}
}

// Cleanup освобождает ресурсы менеджера (идемпотентный)
func (m *Manager) Cleanup() {
	select {
	case <-m.logDone:
		return
	default:
		close(m.logDone)
	}
}

// updateLicenseFieldVisibility подсвечивает поле лицензии для unipdf
func (m *Manager) updateLicenseFieldVisibility() {
	if m.configForm == nil {
		return
	}

	if m.configForm.GetFormItemCount() <= FormItemLicenseIndex {
		return
	}

	licenseField := m.configForm.GetFormItem(FormItemLicenseIndex).(*tview.InputField)
	if m.configData.Compression.Algorithm == entities.AlgorithmUniPDF {
		licenseField.SetLabel("🔑 Лицензия UniPDF - ОБЯЗАТЕЛЬНО")
		licenseField.SetFieldBackgroundColor(tcell.ColorDarkBlue)
	} else {
		licenseField.SetLabel("Лицензия UniPDF (не требуется)")
		licenseField.SetFieldBackgroundColor(tcell.ColorDarkGray)
	}
}

// refreshConfigForm синхронизирует значения формы с текущей конфигурацией
func (m *Manager) refreshConfigForm() {
	if m.configForm == nil {
		return
	}

	// 0: Исходная директория (Input)
	if item := m.configForm.GetFormItem(0); item != nil {
		item.(*tview.InputField).SetText(m.configData.Scanner.SourceDirectory)
	}
	// 1: Целевая директория (Input)
	if item := m.configForm.GetFormItem(1); item != nil {
		item.(*tview.InputField).SetText(m.configData.Scanner.TargetDirectory)
	}
	// 2: Заменить оригинал (Checkbox)
	if item := m.configForm.GetFormItem(2); item != nil {
		item.(*tview.Checkbox).SetChecked(m.configData.Scanner.ReplaceOriginal)
	}
	// 3: Профиль качества (DropDown)
	if item := m.configForm.GetFormItem(3); item != nil {
		item.(*tview.DropDown).SetCurrentOption(optionIndex(qualityOptions, m.configData.Compression.Quality))
	}
	// 4: Алгоритм (DropDown)
	if item := m.configForm.GetFormItem(4); item != nil {
		item.(*tview.DropDown).SetCurrentOption(optionIndex(algorithmOptions, m.configData.Compression.Algorithm))
	}
	// 5: Лицензия UniPDF (Input)
	if item := m.configForm.GetFormItem(5); item != nil {
		item.(*tview.InputField).SetText(m.configData.Compression.UniPDFLicenseKey)
	}
	// 6: Автостарт (Checkbox)
	if item := m.configForm.GetFormItem(6); item != nil {
		item.(*tview.Checkbox).SetChecked(m.configData.Compression.AutoStart)
	}
	// 7: Параллельных воркеров (Input)
	if item := m.configForm.GetFormItem(7); item != nil {
		item.(*tview.InputField).SetText(strconv.Itoa(m.configData.Processing.ParallelWorkers))
	}
	// 8: Таймаут ghostscript (Input)
	if item := m.configForm.GetFormItem(8); item != nil {
		item.(*tview.InputField).SetText(strconv.Itoa(m.configData.Processing.TimeoutSeconds))
	}

	m.updateLicenseFieldVisibility()
}

// optionIndex возвращает индекс значения в списке опций
func optionIndex(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return 0
}
