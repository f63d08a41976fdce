package errors

import (
	"strings"
	"unicode"
)

// MaxSide bounds the grid side accepted by the renderers and scene loader.
// A figure allocates side*side colours, so the bound keeps a hostile scene
// from exhausting memory.
const MaxSide = 512

// ValidateSide validates a grid side length.
func ValidateSide(side int) error {
	if side < 1 {
		return New(ErrCodeInvalidInput, "grid side must be positive, got %d", side)
	}
	if side > MaxSide {
		return New(ErrCodeInvalidInput, "grid side too large (max %d), got %d", MaxSide, side)
	}
	return nil
}

// ValidateCell checks that (x, y) lies on a side x side grid.
// what names the offending input in the error message ("start", "barrier", ...).
func ValidateCell(what string, x, y, side int) error {
	if x < 0 || y < 0 || x >= side || y >= side {
		return New(ErrCodeInvalidCell, "%s (%d, %d) outside %dx%d grid", what, x, y, side, side)
	}
	return nil
}

// ValidateNodeID validates a graph node identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	return nil
}
