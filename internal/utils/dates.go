package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// ParseDay reads "YYYY-MM-DD" and returns the UTC bounds used by the day
// listing: midnight and 23:59:59.000 of that day. Callers compare with both
// bounds excluded.
func ParseDay(s string) (after, before time.Time, err error) {
	parts, err := splitNumbers(s, 3)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	year, month, day := fullYear(parts[0]), time.Month(parts[1]), parts[2]

	after = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	before = time.Date(year, month, day, 23, 59, 59, 0, time.UTC)

	return after, before, nil
}

// ParseDateTime reads "YYYY-MM-DD-HH-MM-SS" as a UTC instant. Out of range
// components roll over the way time.Date normalizes them.
func ParseDateTime(s string) (time.Time, error) {
	parts, err := splitNumbers(s, 6)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(fullYear(parts[0]), time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.UTC), nil
}

// fullYear reads years 0 through 99 as 1900 through 1999.
func fullYear(y int) int {
	if y >= 0 && y <= 99 {
		return 1900 + y
	}
	return y
}

func splitNumbers(s string, n int) ([]int, error) {
	fields := strings.Split(s, "-")
	if len(fields) != n {
		return nil, fmt.Errorf("%w: %q: want %d dash separated parts", ErrInvalidDate, s, n)
	}

	nums := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: part %d is not a number", ErrInvalidDate, s, i+1)
		}
		nums[i] = v
	}

	return nums, nil
}
