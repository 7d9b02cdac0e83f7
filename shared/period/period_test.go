package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loft/shared/period"
)

func TestQuarter(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1},
		{time.February, 1},
		{time.March, 1},
		{time.April, 2},
		{time.June, 2},
		{time.July, 3},
		{time.September, 3},
		{time.October, 4},
		{time.December, 4},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			ts := time.Date(2026, tt.month, 15, 10, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.want, period.Quarter(ts))
		})
	}
}

func TestQuarterRange(t *testing.T) {
	tests := []struct {
		name      string
		at        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "middle of second quarter",
			at:        time.Date(2026, time.May, 20, 13, 30, 0, 0, time.UTC),
			wantStart: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "first day of year",
			at:        time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "last quarter spills into next year",
			at:        time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := period.QuarterRange(tt.at)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestMonthRange(t *testing.T) {
	start, end := period.MonthRange(time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), end)
}
