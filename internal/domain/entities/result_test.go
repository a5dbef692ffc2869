package entities_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"squeezer/internal/domain/entities"
)

func TestBestResult(t *testing.T) {
	failed := entities.NewFailedResult("ghostscript", errors.New("gs not found"))

	tests := []struct {
		name     string
		results  []*entities.CompressionResult
		expected string // имя ожидаемого победителя, пустая строка значит nil
	}{
		{
			name:     "No results",
			results:  nil,
			expected: "",
		},
		{
			name:     "All failed",
			results:  []*entities.CompressionResult{failed, entities.NewFailedResult("pdfcpu", errors.New("broken"))},
			expected: "",
		},
		{
			name: "Smallest successful wins",
			results: []*entities.CompressionResult{
				entities.NewSuccessResult("pdfcpu", "a.pdf", 900),
				entities.NewSuccessResult("ghostscript", "b.pdf", 400),
			},
			expected: "ghostscript",
		},
		{
			name: "Failure between successes is skipped",
			results: []*entities.CompressionResult{
				failed,
				entities.NewSuccessResult("pdfcpu", "a.pdf", 700),
			},
			expected: "pdfcpu",
		},
		{
			name: "Tie keeps the earlier result",
			results: []*entities.CompressionResult{
				entities.NewSuccessResult("pdfcpu", "a.pdf", 500),
				entities.NewSuccessResult("ghostscript", "b.pdf", 500),
			},
			expected: "pdfcpu",
		},
		{
			name: "Nil entries are ignored",
			results: []*entities.CompressionResult{
				nil,
				entities.NewSuccessResult("unipdf", "c.pdf", 300),
			},
			expected: "unipdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best := entities.BestResult(tt.results...)
			if tt.expected == "" {
				if best != nil {
					t.Errorf("Expected nil, got %+v", best)
				}
				return
			}
			if best == nil {
				t.Fatal("Expected a winner, got nil")
			}
			if best.Strategy != tt.expected {
				t.Errorf("Expected winner %q, got %q", tt.expected, best.Strategy)
			}
		})
	}
}

func TestCompressionResult_Discard(t *testing.T) {
	artifact := filepath.Join(t.TempDir(), "artifact.pdf")
	if err := os.WriteFile(artifact, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to create artifact: %v", err)
	}

	result := entities.NewSuccessResult("pdfcpu", artifact, 4)
	result.Discard()

	if _, err := os.Stat(artifact); !os.IsNotExist(err) {
		t.Error("Artifact file must be removed after Discard")
	}
	if result.ArtifactPath != "" {
		t.Errorf("ArtifactPath must be cleared, got %q", result.ArtifactPath)
	}

	// Повторный Discard безопасен
	result.Discard()
}
