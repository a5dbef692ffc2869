package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"squeezer/internal/domain/entities"
	"squeezer/internal/infrastructure/config"
)

func TestRepository_LoadMissingFile(t *testing.T) {
	repo := config.NewRepository()

	cfg, err := repo.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Missing config file must fall back to defaults: %v", err)
	}
	if cfg.Compression.Quality != string(entities.PresetEbook) {
		t.Errorf("Expected default quality ebook, got %q", cfg.Compression.Quality)
	}
	if cfg.Compression.Algorithm != entities.AlgorithmCombined {
		t.Errorf("Expected default algorithm combined, got %q", cfg.Compression.Algorithm)
	}
	if cfg.Processing.TimeoutSeconds != 120 {
		t.Errorf("Expected default timeout 120, got %d", cfg.Processing.TimeoutSeconds)
	}
}

func TestRepository_LoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	partial := `scanner:
  source_directory: /data/in
  target_directory: /data/out
compression:
  algorithm: pdfcpu
`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	repo := config.NewRepository()
	cfg, err := repo.Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Scanner.SourceDirectory != "/data/in" {
		t.Errorf("Expected source /data/in, got %q", cfg.Scanner.SourceDirectory)
	}
	if cfg.Compression.Algorithm != entities.AlgorithmPDFCPU {
		t.Errorf("Expected algorithm pdfcpu, got %q", cfg.Compression.Algorithm)
	}
	// Пропущенные поля заполнены значениями по умолчанию
	if cfg.Compression.Quality != string(entities.PresetEbook) {
		t.Errorf("Expected default quality, got %q", cfg.Compression.Quality)
	}
	if cfg.Output.LogFileName != "squeezer.log" {
		t.Errorf("Expected default log file name, got %q", cfg.Output.LogFileName)
	}
}

func TestRepository_LoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("scanner: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	repo := config.NewRepository()
	if _, err := repo.Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestRepository_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	repo := config.NewRepository()
	original := config.DefaultConfig()
	original.Scanner.SourceDirectory = "/var/pdfs"
	original.Compression.Quality = string(entities.PresetScreen)
	original.Processing.ParallelWorkers = 4

	if err := repo.Save(path, original); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded, err := repo.Load(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	if loaded.Scanner.SourceDirectory != original.Scanner.SourceDirectory {
		t.Errorf("Source directory lost: %q", loaded.Scanner.SourceDirectory)
	}
	if loaded.Compression.Quality != original.Compression.Quality {
		t.Errorf("Quality lost: %q", loaded.Compression.Quality)
	}
	if loaded.Processing.ParallelWorkers != original.Processing.ParallelWorkers {
		t.Errorf("Worker count lost: %d", loaded.Processing.ParallelWorkers)
	}
}
