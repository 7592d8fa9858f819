package habit

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyName is returned when a habit name is blank after normalisation.
var ErrEmptyName = errors.New("habit name is required")

// NormalizeName trims surrounding whitespace and converts the name to NFC so
// that composed and decomposed spellings of the same name are one habit.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ValidateName normalises name and rejects blank names.
func ValidateName(name string) (string, error) {
	n := NormalizeName(name)
	if n == "" {
		return "", ErrEmptyName
	}
	return n, nil
}
