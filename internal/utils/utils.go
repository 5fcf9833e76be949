package utils

import (
	"errors"
	"strconv"
)

var ErrInvalidID = errors.New("invalid id")

func StrPtr(s string) *string {
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToID parses a positive integer identifier from a path or query segment.
func ToID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return n, nil
}
