package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBootcampDates(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 24, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sep 1, 2026 – Nov 24, 2026", FormatBootcampDates(start, &end))
	assert.Equal(t, "Starts: Sep 1, 2026", FormatBootcampDates(start, nil))
}

func TestReplaceAllFillsEveryPlaceholder(t *testing.T) {
	body := replaceAll("Hello {fullname}, code {code}", map[string]string{
		"{fullname}": "Ada",
		"{code}":     "123456",
	})
	assert.Equal(t, "Hello Ada, code 123456", body)
}
