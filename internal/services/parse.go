package services

import (
	"errors"
	"strconv"
	"time"
)

// Input validation errors. Each one maps to a re-prompt in the same
// conversation step; they never bubble up to the webhook handler.
var (
	errInvalidOption = errors.New("option out of range")
	errInvalidDate   = errors.New("date not in DD/MM/YYYY format")
	errInvalidTime   = errors.New("time not in HH:MM format")
)

// parseIndex parses a 1-based menu selection and returns the
// zero-based index. count is the size of the listing shown to the user.
func parseIndex(text string, count int) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > count {
		return 0, errInvalidOption
	}
	return n - 1, nil
}

// parseDate parses a strict DD/MM/YYYY date and returns it in ISO
// form ("2006-01-02"). time.Parse alone would accept single-digit day
// and month, so the shape is checked first.
func parseDate(text string) (string, error) {
	if len(text) != 10 || text[2] != '/' || text[5] != '/' {
		return "", errInvalidDate
	}
	d, err := time.Parse("02/01/2006", text)
	if err != nil {
		return "", errInvalidDate
	}
	return d.Format("2006-01-02"), nil
}

// parseTime parses a strict 24-hour HH:MM time
func parseTime(text string) (string, error) {
	if len(text) != 5 || text[2] != ':' {
		return "", errInvalidTime
	}
	t, err := time.Parse("15:04", text)
	if err != nil {
		return "", errInvalidTime
	}
	return t.Format("15:04"), nil
}
