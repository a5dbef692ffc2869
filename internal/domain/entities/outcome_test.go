package entities_test

import (
	"testing"

	"squeezer/internal/domain/entities"
)

func TestReductionPercent(t *testing.T) {
	tests := []struct {
		name         string
		originalSize int64
		finalSize    int64
		expected     int
	}{
		{"Half size", 1000, 500, 50},
		{"45 percent reduction", 10 * 1024 * 1024, 5767168, 45},
		{"No reduction", 1000, 1000, 0},
		{"File got bigger", 1000, 1100, -10},
		{"Empty original", 0, 0, 0},
		{"Rounds to nearest", 1000, 994, 1},
		{"Rounds half up", 1000, 995, 1},
		{"Full reduction", 1000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entities.ReductionPercent(tt.originalSize, tt.finalSize)
			if got != tt.expected {
				t.Errorf("Expected %d%%, got %d%%", tt.expected, got)
			}
		})
	}
}

func TestNewCompressionOutcome(t *testing.T) {
	task := entities.Task{InputPath: "in.pdf", OutputPath: "out.pdf"}

	tests := []struct {
		name           string
		originalSize   int64
		finalSize      int64
		bestStrategy   string
		wantImproved   bool
		wantReduction  int
		wantFailed     bool
		wantSavedBytes int64
	}{
		{
			name:           "Improved by winning strategy",
			originalSize:   1000,
			finalSize:      600,
			bestStrategy:   "pdfcpu",
			wantImproved:   true,
			wantReduction:  40,
			wantSavedBytes: 400,
		},
		{
			name:         "Winner did not shrink the file",
			originalSize: 1000,
			finalSize:    1000,
			bestStrategy: "ghostscript",
		},
		{
			name:         "All strategies failed",
			originalSize: 500,
			finalSize:    500,
			bestStrategy: entities.StrategyNone,
		},
		{
			name:         "Error marker never reports improvement",
			originalSize: 1000,
			finalSize:    0,
			bestStrategy: entities.StrategyError,
			wantFailed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := entities.NewCompressionOutcome(task, tt.originalSize, tt.finalSize, tt.bestStrategy)

			if outcome.InputPath != task.InputPath || outcome.OutputPath != task.OutputPath {
				t.Errorf("Task paths not propagated: %+v", outcome)
			}
			if outcome.Improved != tt.wantImproved {
				t.Errorf("Expected Improved=%v, got %v", tt.wantImproved, outcome.Improved)
			}
			if outcome.ReductionPercent != tt.wantReduction {
				t.Errorf("Expected reduction %d%%, got %d%%", tt.wantReduction, outcome.ReductionPercent)
			}
			if outcome.Failed() != tt.wantFailed {
				t.Errorf("Expected Failed()=%v, got %v", tt.wantFailed, outcome.Failed())
			}
			if outcome.SavedBytes() != tt.wantSavedBytes {
				t.Errorf("Expected saved %d bytes, got %d", tt.wantSavedBytes, outcome.SavedBytes())
			}
		})
	}
}

func TestNewErrorOutcome(t *testing.T) {
	task := entities.Task{InputPath: "broken.pdf", OutputPath: "out.pdf"}
	outcome := entities.NewErrorOutcome(task, 1234)

	if !outcome.Failed() {
		t.Error("Error outcome must report Failed()")
	}
	if outcome.BestStrategy != entities.StrategyError {
		t.Errorf("Expected strategy %q, got %q", entities.StrategyError, outcome.BestStrategy)
	}
	if outcome.OriginalSize != 1234 {
		t.Errorf("Expected original size 1234, got %d", outcome.OriginalSize)
	}
	if outcome.FinalSize != 0 {
		t.Errorf("Expected final size 0, got %d", outcome.FinalSize)
	}
	if outcome.Improved {
		t.Error("Error outcome must not report improvement")
	}
	if outcome.SavedBytes() != 0 {
		t.Errorf("Expected saved 0 bytes, got %d", outcome.SavedBytes())
	}
}
