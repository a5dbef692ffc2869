package entities

import "errors"

// Доменные ошибки
var (
	ErrInvalidQualityPreset = errors.New("неизвестный профиль качества")
	ErrUnknownAlgorithm     = errors.New("неизвестный алгоритм сжатия")
	ErrFileNotFound         = errors.New("файл не найден")
	ErrInvalidFileFormat    = errors.New("неверный формат файла")
	ErrDirectoryNotFound    = errors.New("директория не найдена")
	ErrNoFilesFound         = errors.New("PDF файлы не найдены")
	ErrGhostscriptNotFound  = errors.New("ghostscript не найден в PATH")
	ErrEmptyOutput          = errors.New("стратегия вернула пустой выходной файл")
	ErrNoStrategySucceeded  = errors.New("ни одна стратегия не смогла сжать файл")
	ErrLicenseNotConfigured = errors.New("лицензионный ключ UniPDF не настроен")
)
