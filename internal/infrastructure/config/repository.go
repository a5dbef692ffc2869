package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"squeezer/internal/domain/entities"
)

// Repository реализация репозитория конфигурации
type Repository struct{}

// NewRepository создает новый репозиторий конфигурации
func NewRepository() *Repository {
	return &Repository{}
}

// Load загружает конфигурацию из файла
func (r *Repository) Load(configPath string) (*entities.Config, error) {
	// Если файл не существует, создаем конфигурацию по умолчанию
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config entities.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// Save сохраняет конфигурацию в файл
func (r *Repository) Save(configPath string, config *entities.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// DefaultConfig создает конфигурацию по умолчанию
func DefaultConfig() *entities.Config {
	return &entities.Config{
		Scanner: entities.ScannerConfig{
			SourceDirectory: "./pdfs",
			TargetDirectory: "./compressed",
			ReplaceOriginal: false,
		},
		Compression: entities.AppCompressionConfig{
			Quality:   string(entities.PresetEbook),
			Algorithm: entities.AlgorithmCombined,
			AutoStart: false,
		},
		Processing: entities.ProcessingConfig{
			ParallelWorkers: 0,
			TimeoutSeconds:  120,
		},
		Output: entities.OutputConfig{
			LogLevel:      "info",
			LogToFile:     true,
			LogFileName:   "squeezer.log",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
		},
	}
}

// applyDefaults заполняет пропущенные в файле поля значениями по умолчанию
func applyDefaults(config *entities.Config) {
	defaults := DefaultConfig()

	if config.Compression.Quality == "" {
		config.Compression.Quality = defaults.Compression.Quality
	}
	if config.Compression.Algorithm == "" {
		config.Compression.Algorithm = defaults.Compression.Algorithm
	}
	if config.Processing.TimeoutSeconds <= 0 {
		config.Processing.TimeoutSeconds = defaults.Processing.TimeoutSeconds
	}
	if config.Output.LogLevel == "" {
		config.Output.LogLevel = defaults.Output.LogLevel
	}
	if config.Output.LogFileName == "" {
		config.Output.LogFileName = defaults.Output.LogFileName
	}
	if config.Output.LogMaxSizeMB <= 0 {
		config.Output.LogMaxSizeMB = defaults.Output.LogMaxSizeMB
	}
	if config.Output.LogMaxBackups <= 0 {
		config.Output.LogMaxBackups = defaults.Output.LogMaxBackups
	}
}
