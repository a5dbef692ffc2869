package usecases

import (
	"context"
	"runtime"
	"sync"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
)

// ParallelCompressor распределяет пакет заданий по ограниченному пулу
// воркеров. Каждый воркер независимо выполняет полный цикл
// PDFCompressor.Compress; задания не разделяют изменяемого состояния.
type ParallelCompressor struct {
	compressor *PDFCompressor
	maxWorkers int
	logger     repositories.Logger

	// Сериализация вызовов onComplete: колбэк вызывается из потока
	// завершившегося воркера, но никогда конкурентно
	callbackMu sync.Mutex
}

// NewParallelCompressor создает пакетный компрессор.
// maxWorkers <= 0 означает авто-подбор по числу ядер CPU.
func NewParallelCompressor(compressor *PDFCompressor, maxWorkers int, logger repositories.Logger) *ParallelCompressor {
	return &ParallelCompressor{
		compressor: compressor,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// indexedTask задание вместе с позицией в исходном пакете
type indexedTask struct {
	index int
	task  entities.Task
}

// CompressBatch обрабатывает пакет заданий параллельно.
//
// onComplete вызывается ровно один раз на задание в порядке завершения,
// строго после того как итог задания полностью определен; вызовы
// сериализованы, вызывающему не нужна собственная блокировка.
// Возвращаемый срез сохраняет исходный порядок подачи заданий:
// i-й элемент соответствует i-му заданию.
//
// Отмена контекста не прерывает уже запущенные задания: они
// дорабатывают до конца, новые не диспетчеризуются.
func (pc *ParallelCompressor) CompressBatch(ctx context.Context, tasks []entities.Task, onComplete func(entities.CompressionOutcome)) []entities.CompressionOutcome {
	if len(tasks) == 0 {
		return nil
	}

	workers := pc.workerCount(len(tasks))

	jobs := make(chan indexedTask, len(tasks))
	// Слоты результатов адресуются индексом подачи, порядок
	// завершения на итоговый срез не влияет
	outcomes := make([]entities.CompressionOutcome, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jt := range jobs {
				var outcome entities.CompressionOutcome
				if ctx.Err() != nil {
					// Остановка запрошена: задание из очереди не запускаем
					outcome = entities.NewErrorOutcome(jt.task, 0)
				} else {
					outcome = pc.runTask(ctx, jt.task)
				}
				outcomes[jt.index] = outcome
				pc.notify(onComplete, outcome)
			}
		}()
	}

	for i, task := range tasks {
		jobs <- indexedTask{index: i, task: task}
	}
	close(jobs)

	wg.Wait()

	return outcomes
}

// runTask выполняет одно задание с изоляцией сбоев: паника внутри
// стратегии не валит пакет, а превращается в итог с маркером "error"
// только для этого задания.
func (pc *ParallelCompressor) runTask(ctx context.Context, task entities.Task) (outcome entities.CompressionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			if pc.logger != nil {
				pc.logger.Error("паника при обработке %s: %v", task.InputPath, r)
			}
			outcome = entities.NewErrorOutcome(task, 0)
		}
	}()

	return pc.compressor.Compress(ctx, task.InputPath, task.OutputPath)
}

// notify вызывает onComplete под блокировкой
func (pc *ParallelCompressor) notify(onComplete func(entities.CompressionOutcome), outcome entities.CompressionOutcome) {
	if onComplete == nil {
		return
	}
	pc.callbackMu.Lock()
	defer pc.callbackMu.Unlock()
	onComplete(outcome)
}

// workerCount ограничивает число воркеров диапазоном [1, len(tasks)]
func (pc *ParallelCompressor) workerCount(taskCount int) int {
	workers := pc.maxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > taskCount {
		workers = taskCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
