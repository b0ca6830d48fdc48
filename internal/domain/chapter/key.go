package chapter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/chapterdex/internal/domain"
)

// Key renders a chapter number as a master index key: the decimal form with
// "." replaced by "-". Integral chapters keep one decimal, so 2 becomes "2-0"
// and 12.5 becomes "12-5".
func Key(num float64) string {
	s := strconv.FormatFloat(num, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return strings.Replace(s, ".", "-", 1)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (float64, error) {
	i := strings.LastIndex(key, "-")
	if i <= 0 {
		return 0, fmt.Errorf("chapter key %q: %w", key, domain.ErrInvalidChapter)
	}
	num, err := strconv.ParseFloat(key[:i]+"."+key[i+1:], 64)
	if err != nil {
		return 0, fmt.Errorf("chapter key %q: %v: %w", key, err, domain.ErrInvalidChapter)
	}
	return num, nil
}

// Validate reports whether num can identify a chapter.
func Validate(num float64) error {
	if math.IsNaN(num) || math.IsInf(num, 0) || num < 0 {
		return fmt.Errorf("chapter %v must be a finite number >= 0: %w", num, domain.ErrInvalidChapter)
	}
	return nil
}
