package strategies

import (
	"context"
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/model/optimize"

	"squeezer/internal/domain/entities"
)

// UniPDFStrategy альтернативная библиотечная стратегия на базе UniPDF.
// Требует лицензионный ключ; без ключа каждая попытка возвращает
// неудачный результат, и выбор остается за остальными стратегиями.
type UniPDFStrategy struct {
	licenseKey string
}

// NewUniPDFStrategy создает новую UniPDF стратегию
func NewUniPDFStrategy(licenseKey string) *UniPDFStrategy {
	return &UniPDFStrategy{licenseKey: licenseKey}
}

// Name возвращает имя стратегии
func (s *UniPDFStrategy) Name() string {
	return entities.AlgorithmUniPDF
}

// Attempt пытается сжать PDF файл оптимизатором UniPDF
func (s *UniPDFStrategy) Attempt(ctx context.Context, inputPath string, preset entities.QualityPreset) *entities.CompressionResult {
	if err := ctx.Err(); err != nil {
		return entities.NewFailedResult(s.Name(), err)
	}

	licenseKey := s.licenseKey
	if licenseKey == "" {
		licenseKey = os.Getenv("UNIDOC_LICENSE_API_KEY")
	}
	if licenseKey == "" {
		return entities.NewFailedResult(s.Name(), entities.ErrLicenseNotConfigured)
	}
	os.Setenv("UNIDOC_LICENSE_API_KEY", licenseKey)

	pdfReader, file, err := model.NewPdfReaderFromFile(inputPath, nil)
	if err != nil {
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка открытия файла: %w", err))
	}
	defer file.Close()

	pdfWriter := model.NewPdfWriter()
	pdfWriter.SetOptimizer(optimize.New(optimize.Options{
		CombineDuplicateDirectObjects:   true,
		CombineIdenticalIndirectObjects: true,
		ImageUpperPPI:                   float64(preset.ImageDPI()),
		ImageQuality:                    preset.ImageQuality(),
	}))

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка получения количества страниц: %w", err))
	}

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка получения страницы %d: %w", i, err))
		}
		if err := pdfWriter.AddPage(page); err != nil {
			return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка добавления страницы %d: %w", i, err))
		}
	}

	artifact := artifactPath(s.Name())
	outputFile, err := os.Create(artifact)
	if err != nil {
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка создания выходного файла: %w", err))
	}

	if err := pdfWriter.Write(outputFile); err != nil {
		outputFile.Close()
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка записи файла: %w", err))
	}
	if err := outputFile.Close(); err != nil {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка закрытия файла: %w", err))
	}

	info, err := os.Stat(artifact)
	if err != nil {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), fmt.Errorf("ошибка чтения результата UniPDF: %w", err))
	}
	if info.Size() == 0 {
		_ = os.Remove(artifact)
		return entities.NewFailedResult(s.Name(), entities.ErrEmptyOutput)
	}

	return entities.NewSuccessResult(s.Name(), artifact, info.Size())
}
