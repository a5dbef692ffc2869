package repositories

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"squeezer/internal/domain/entities"
)

// FileSystemRepository реализация репозитория для работы с файловой системой
type FileSystemRepository struct{}

// NewFileSystemRepository создает новый репозиторий файловой системы
func NewFileSystemRepository() *FileSystemRepository {
	return &FileSystemRepository{}
}

// GetFileInfo получает информацию о PDF файле
func (r *FileSystemRepository) GetFileInfo(path string) (*entities.PDFDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	return &entities.PDFDocument{
		Path:         path,
		Size:         info.Size(),
		ModifiedTime: info.ModTime(),
	}, nil
}

// FileExists проверяет существование файла
func (r *FileSystemRepository) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// CreateDirectory создает директорию
func (r *FileSystemRepository) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// ListPDFFiles возвращает список PDF файлов в директории и всех подпапках
func (r *FileSystemRepository) ListPDFFiles(directory string) ([]string, error) {
	var pdfFiles []string

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			pdfFiles = append(pdfFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(pdfFiles)
	return pdfFiles, nil
}

// ReplaceFile атомарно перемещает source на место dest.
// Содержимое сначала попадает в соседний временный файл в директории
// назначения, затем заменяет dest через rename, поэтому обрыв на
// середине записи не оставляет dest усеченным. Критично для режима
// замены оригинала.
func (r *FileSystemRepository) ReplaceFile(sourcePath, destPath string) error {
	tmpPath := siblingTempPath(destPath)

	// Сначала пробуем прямой rename артефакта в соседний временный файл
	if err := os.Rename(sourcePath, tmpPath); err != nil {
		// Источник на другом разделе файловой системы, копируем
		if copyErr := copyContents(sourcePath, tmpPath); copyErr != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("ошибка подготовки временного файла: %w", copyErr)
		}
		_ = os.Remove(sourcePath)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка замены файла %s: %w", destPath, err)
	}

	return nil
}

// CopyFile атомарно копирует source в dest через соседний временный файл
func (r *FileSystemRepository) CopyFile(sourcePath, destPath string) error {
	tmpPath := siblingTempPath(destPath)

	if err := copyContents(sourcePath, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка копирования файла: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ошибка замены файла %s: %w", destPath, err)
	}

	return nil
}

// siblingTempPath возвращает уникальное имя временного файла рядом с dest
func siblingTempPath(destPath string) string {
	return filepath.Join(filepath.Dir(destPath), "."+filepath.Base(destPath)+".tmp-"+uuid.New().String())
}

// copyContents копирует содержимое файла с сохранением на диск
func copyContents(sourcePath, destPath string) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
