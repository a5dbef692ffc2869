package logging

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileLogger реализация логгера в файл на базе logrus с ротацией
// через lumberjack
type FileLogger struct {
	logger *logrus.Logger
	writer *lumberjack.Logger
}

// NewFileLogger создает новый файловый логгер.
// Когда логирование в файл выключено, возвращает nil без ошибки.
func NewFileLogger(filename, logLevel string, maxSizeMB, maxBackups int, logToFile bool) (*FileLogger, error) {
	if !logToFile {
		return nil, nil
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	writer := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(writer)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &FileLogger{
		logger: logger,
		writer: writer,
	}, nil
}

// Debug логирует отладочное сообщение
func (l *FileLogger) Debug(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// Info логирует информационное сообщение
func (l *FileLogger) Info(format string, args ...interface{}) {
	l.logger.Infof(format, args...)
}

// Warning логирует предупреждение
func (l *FileLogger) Warning(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

// Error логирует ошибку
func (l *FileLogger) Error(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

// Success логирует успешное выполнение
func (l *FileLogger) Success(format string, args ...interface{}) {
	l.logger.WithField("status", "success").Infof(format, args...)
}

// Close закрывает логгер
func (l *FileLogger) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}
