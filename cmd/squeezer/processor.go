package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
	infraRepos "squeezer/internal/infrastructure/repositories"
	"squeezer/internal/infrastructure/strategies"
	"squeezer/internal/presentation/tui"
	usecases "squeezer/internal/usecase"
)

// ApplicationProcessor связывает TUI с обработкой директории
type ApplicationProcessor struct {
	directoryUseCase *usecases.ProcessDirectoryUseCase
	fileRepo         repositories.FileRepository
	config           *entities.Config
	tuiManager       *tui.Manager
	logger           repositories.Logger

	// Graceful shutdown
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running sync.Mutex
}

// NewApplicationProcessor создает новый процессор приложения
func NewApplicationProcessor(
	directoryUseCase *usecases.ProcessDirectoryUseCase,
	fileRepo repositories.FileRepository,
	config *entities.Config,
	tuiManager *tui.Manager,
	logger repositories.Logger,
) *ApplicationProcessor {
	ctx, cancel := context.WithCancel(context.Background())

	return &ApplicationProcessor{
		directoryUseCase: directoryUseCase,
		fileRepo:         fileRepo,
		config:           config,
		tuiManager:       tuiManager,
		logger:           logger,
		ctx:              ctx,
		cancel:           cancel,
	}
}

// StartProcessing запускает обработку директории с актуальной
// конфигурацией. Стратегия и оркестратор пересоздаются на каждый
// запуск: настройки могли измениться в TUI между запусками.
func (p *ApplicationProcessor) StartProcessing() {
	if !p.running.TryLock() {
		if p.logger != nil {
			p.logger.Warning("Обработка уже выполняется")
		}
		return
	}
	defer p.running.Unlock()

	p.wg.Add(1)
	defer p.wg.Done()

	cfg := p.config
	parallel, err := buildParallelCompressor(cfg, p.fileRepo, p.logger)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("Ошибка конфигурации: %v", err)
		}
		return
	}

	if _, err := p.directoryUseCase.Execute(p.ctx, cfg, parallel); err != nil {
		if p.logger != nil {
			p.logger.Error("Ошибка обработки: %v", err)
		}
		return
	}

	if p.logger != nil {
		p.logger.Success("Обработка файлов завершена")
	}
}

// Shutdown корректно завершает работу процессора
func (p *ApplicationProcessor) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// buildParallelCompressor собирает цепочку стратегия → оркестратор →
// пакетный исполнитель из конфигурации сжатия
func buildParallelCompressor(
	cfg *entities.Config,
	fileRepo repositories.FileRepository,
	logger repositories.Logger,
) (*usecases.ParallelCompressor, error) {
	preset, err := entities.ParseQualityPreset(cfg.Compression.Quality)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Processing.TimeoutSeconds) * time.Second
	strategy, err := strategies.ForAlgorithm(cfg.Compression, timeout)
	if err != nil {
		return nil, err
	}

	compressor, err := usecases.NewPDFCompressor(preset, fileRepo, logger, strategy)
	if err != nil {
		return nil, err
	}

	return usecases.NewParallelCompressor(compressor, cfg.Processing.ParallelWorkers, logger), nil
}

// runTUI запускает интерактивный режим обработки директории
func runTUI(appConfig *entities.Config) error {
	fileLogger := newFileLogger(appConfig)
	if fileLogger != nil {
		defer fileLogger.Close()
	}

	tuiManager := tui.NewManager(cfgFile)
	tuiManager.Initialize()

	// Оборачиваем логгер адаптером, чтобы видеть логи в TUI
	var logger repositories.Logger = tui.NewUILogger(fileLogger, tuiManager)

	fileRepo := infraRepos.NewFileSystemRepository()
	directoryUseCase := usecases.NewProcessDirectoryUseCase(fileRepo, logger)

	// Подключаем репортер прогресса к TUI
	directoryUseCase.SetProgressReporter(func(s entities.ProcessingStatus) {
		tuiManager.SendStatusUpdate(s)
	})

	processor := NewApplicationProcessor(directoryUseCase, fileRepo, appConfig, tuiManager, logger)
	defer processor.Shutdown()

	// Привязываем запуск обработки к TUI
	tuiManager.SetOnStartProcessing(func() {
		// Получаем актуальную конфигурацию из TUI
		processor.config = tuiManager.GetConfig()
		go processor.StartProcessing()
	})

	// Автозапуск, если включен в конфигурации
	if appConfig.Compression.AutoStart {
		go processor.StartProcessing()
	}

	if err := tuiManager.Run(); err != nil {
		return fmt.Errorf("ошибка запуска TUI: %w", err)
	}

	tuiManager.Cleanup()
	return nil
}
