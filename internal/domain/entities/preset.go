package entities

import "strings"

// QualityPreset профиль качества сжатия. Каждый профиль задает
// фиксированное соотношение разрешения и качества изображений.
type QualityPreset string

const (
	PresetScreen   QualityPreset = "screen"   // 72 dpi, максимальное сжатие
	PresetEbook    QualityPreset = "ebook"    // 150 dpi, средний вариант
	PresetPrinter  QualityPreset = "printer"  // 300 dpi, высокая точность
	PresetPrepress QualityPreset = "prepress" // 300 dpi, предпечатная подготовка
	PresetDefault  QualityPreset = "default"  // настройки по умолчанию
)

// ParseQualityPreset разбирает строку профиля качества.
// Неизвестные значения отклоняются.
func ParseQualityPreset(s string) (QualityPreset, error) {
	preset := QualityPreset(strings.ToLower(strings.TrimSpace(s)))
	if !preset.Valid() {
		return "", ErrInvalidQualityPreset
	}
	return preset, nil
}

// Valid проверяет, что профиль принадлежит допустимому набору
func (p QualityPreset) Valid() bool {
	switch p {
	case PresetScreen, PresetEbook, PresetPrinter, PresetPrepress, PresetDefault:
		return true
	}
	return false
}

// PDFSettings возвращает значение параметра -dPDFSETTINGS для ghostscript
func (p QualityPreset) PDFSettings() string {
	switch p {
	case PresetScreen:
		return "/screen"
	case PresetEbook:
		return "/ebook"
	case PresetPrinter:
		return "/printer"
	case PresetPrepress:
		return "/prepress"
	default:
		return "/default"
	}
}

// ImageDPI возвращает целевое разрешение изображений для профиля
func (p QualityPreset) ImageDPI() int {
	switch p {
	case PresetScreen:
		return 72
	case PresetEbook:
		return 150
	case PresetPrinter, PresetPrepress:
		return 300
	default:
		return 150
	}
}

// ImageQuality возвращает качество перекодирования изображений (0-100)
func (p QualityPreset) ImageQuality() int {
	switch p {
	case PresetScreen:
		return 40
	case PresetEbook:
		return 65
	case PresetPrinter:
		return 80
	case PresetPrepress:
		return 90
	default:
		return 75
	}
}

// String возвращает строковое представление профиля
func (p QualityPreset) String() string {
	return string(p)
}
