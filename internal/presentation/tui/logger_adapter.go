package tui

import (
	"fmt"

	"squeezer/internal/domain/repositories"
)

// UILogger адаптер логгера: дублирует записи в файловый логгер
// и в журнал событий TUI
type UILogger struct {
	fileLogger repositories.Logger
	tuiManager *Manager
}

// NewUILogger создает новый UI логгер
func NewUILogger(fileLogger repositories.Logger, tuiManager *Manager) *UILogger {
	return &UILogger{
		fileLogger: fileLogger,
		tuiManager: tuiManager,
	}
}

// forward передает сообщение в файловый логгер и в TUI
func (l *UILogger) forward(level string, fileLog func(string, ...interface{}), format string, args ...interface{}) {
	if fileLog != nil {
		fileLog(format, args...)
	}
	if l.tuiManager != nil {
		l.tuiManager.AddLog(level, fmt.Sprintf(format, args...))
	}
}

// Debug логирует отладочное сообщение
func (l *UILogger) Debug(format string, args ...interface{}) {
	if l.fileLogger != nil {
		l.forward("DEBUG", l.fileLogger.Debug, format, args...)
	} else {
		l.forward("DEBUG", nil, format, args...)
	}
}

// Info логирует информационное сообщение
func (l *UILogger) Info(format string, args ...interface{}) {
	if l.fileLogger != nil {
		l.forward("INFO", l.fileLogger.Info, format, args...)
	} else {
		l.forward("INFO", nil, format, args...)
	}
}

// Warning логирует предупреждение
func (l *UILogger) Warning(format string, args ...interface{}) {
	if l.fileLogger != nil {
		l.forward("WARNING", l.fileLogger.Warning, format, args...)
	} else {
		l.forward("WARNING", nil, format, args...)
	}
}

// Error логирует ошибку
func (l *UILogger) Error(format string, args ...interface{}) {
	if l.fileLogger != nil {
		l.forward("ERROR", l.fileLogger.Error, format, args...)
	} else {
		l.forward("ERROR", nil, format, args...)
	}
}

// Success логирует успешное выполнение
func (l *UILogger) Success(format string, args ...interface{}) {
	if l.fileLogger != nil {
		l.forward("SUCCESS", l.fileLogger.Success, format, args...)
	} else {
		l.forward("SUCCESS", nil, format, args...)
	}
}

// Close закрывает логгер
func (l *UILogger) Close() error {
	if l.fileLogger != nil {
		return l.fileLogger.Close()
	}
	return nil
}
