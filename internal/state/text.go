package state

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the longest text, in runes, an element may hold.
const MaxTextLength = 100

// Bounds used by font size step controls. They are narrower than the
// element bounds on purpose.
const (
	MinStepFontSize = float32(12)
	MaxStepFontSize = float32(32)
	FontSizeStep    = float32(2)
)

var ErrEmptyText = errors.New("text cannot be empty")

// ValidateText checks text the way the edit dialog does: surrounding
// whitespace is ignored, the rest must be non-empty and at most
// MaxTextLength runes. Reduce silently drops text that fails this check,
// so callers that want to show a message validate first.
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyText
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxTextLength {
		return fmt.Errorf("text is too long (max %d characters, got %d)", MaxTextLength, n)
	}
	return nil
}

// StepFontSize moves size by delta and clamps the result to the step range.
func StepFontSize(size, delta float32) float32 {
	size += delta
	if size < MinStepFontSize {
		return MinStepFontSize
	}
	if size > MaxStepFontSize {
		return MaxStepFontSize
	}
	return size
}
