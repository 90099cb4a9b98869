package model

import "math"

const (
	MinFontSize = 14
	MaxFontSize = 24

	MinLineHeight = 1.5
	MaxLineHeight = 2.5
)

// ReadingSettings is persisted wholesale to local storage on every
// change. It has no server-side representation.
type ReadingSettings struct {
	FontSize   int     `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
	PanelOpen  bool    `json:"panelOpen"`
}

func DefaultReadingSettings() ReadingSettings {
	return ReadingSettings{FontSize: 16, LineHeight: 1.8}
}

// Clamped bounds the font size to [14,24] and the line height to
// [1.5,2.5] rounded to the nearest 0.1 step.
func (s ReadingSettings) Clamped() ReadingSettings {
	if s.FontSize < MinFontSize {
		s.FontSize = MinFontSize
	}
	if s.FontSize > MaxFontSize {
		s.FontSize = MaxFontSize
	}
	s.LineHeight = math.Round(s.LineHeight*10) / 10
	if s.LineHeight < MinLineHeight {
		s.LineHeight = MinLineHeight
	}
	if s.LineHeight > MaxLineHeight {
		s.LineHeight = MaxLineHeight
	}
	return s
}
