package repositories

import (
	"context"

	"squeezer/internal/domain/entities"
)

// CompressionStrategy одна стратегия сжатия PDF файла.
// Attempt никогда не паникует и не возвращает ошибку наружу:
// любая внутренняя неудача кодируется в CompressionResult.
// Стратегия не изменяет входной файл; результат пишется в частный
// временный файл, владение которым переходит к вызывающему
// только при успехе.
type CompressionStrategy interface {
	Name() string
	Attempt(ctx context.Context, inputPath string, preset entities.QualityPreset) *entities.CompressionResult
}

// FileRepository интерфейс для работы с файловой системой
type FileRepository interface {
	GetFileInfo(path string) (*entities.PDFDocument, error)
	FileExists(path string) bool
	CreateDirectory(path string) error
	ListPDFFiles(directory string) ([]string, error)
	// ReplaceFile атомарно перемещает source на место dest:
	// запись идет в соседний временный файл с последующим rename,
	// так что dest никогда не остается усеченным.
	ReplaceFile(sourcePath, destPath string) error
	CopyFile(sourcePath, destPath string) error
}

// AppConfigRepository интерфейс для работы с конфигурацией приложения
type AppConfigRepository interface {
	Load(configPath string) (*entities.Config, error)
	Save(configPath string, config *entities.Config) error
}
