package entities

import (
	"time"
)

// PDFDocument представляет PDF документ на диске
type PDFDocument struct {
	Path         string
	Size         int64
	ModifiedTime time.Time
}
