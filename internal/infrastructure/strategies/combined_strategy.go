package strategies

import (
	"context"
	"fmt"

	"squeezer/internal/domain/entities"
	"squeezer/internal/domain/repositories"
)

// CombinedStrategy запускает библиотечную и инструментальную стратегии
// и берет меньший из успешных результатов. Обе подстратегии выполняются
// всегда, даже если первая уже успешна. Наружу отдается результат под
// именем победившей подстратегии, чтобы в отчетах был виден реально
// сработавший метод.
type CombinedStrategy struct {
	library repositories.CompressionStrategy
	tool    repositories.CompressionStrategy
}

// NewCombinedStrategy создает комбинированную стратегию
func NewCombinedStrategy(library, tool repositories.CompressionStrategy) *CombinedStrategy {
	return &CombinedStrategy{
		library: library,
		tool:    tool,
	}
}

// Name возвращает имя стратегии
func (s *CombinedStrategy) Name() string {
	return entities.AlgorithmCombined
}

// Attempt выполняет обе подстратегии и возвращает меньший успешный
// результат. При равных размерах побеждает библиотечная подстратегия.
func (s *CombinedStrategy) Attempt(ctx context.Context, inputPath string, preset entities.QualityPreset) *entities.CompressionResult {
	libraryResult := s.library.Attempt(ctx, inputPath, preset)
	toolResult := s.tool.Attempt(ctx, inputPath, preset)

	best := entities.BestResult(libraryResult, toolResult)
	if best == nil {
		return entities.NewFailedResult(s.Name(), fmt.Errorf("%w: %s: %v; %s: %v",
			entities.ErrNoStrategySucceeded,
			s.library.Name(), libraryResult.Err,
			s.tool.Name(), toolResult.Err))
	}

	// Артефакт проигравшей подстратегии больше не нужен
	if libraryResult != best {
		libraryResult.Discard()
	}
	if toolResult != best {
		toolResult.Discard()
	}

	return best
}
