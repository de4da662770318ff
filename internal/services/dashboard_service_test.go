package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentFiscalYear(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		startYear int
		endYear   int
	}{
		{"June belongs to the previous start year", time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), 2025, 2026},
		{"July opens a new lodge year", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), 2026, 2027},
		{"December stays in the opening half", time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), 2025, 2026},
		{"January rolls into the closing half", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 2025, 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fy := CurrentFiscalYear(tt.now)
			assert.Equal(t, tt.startYear, fy.StartYear)
			assert.Equal(t, tt.endYear, fy.EndYear)
		})
	}
}

func TestFiscalYearInfo_YearFor(t *testing.T) {
	fy := FiscalYearInfo{StartYear: 2025, EndYear: 2026}

	assert.Equal(t, 2025, fy.YearFor(7))
	assert.Equal(t, 2025, fy.YearFor(12))
	assert.Equal(t, 2026, fy.YearFor(1))
	assert.Equal(t, 2026, fy.YearFor(6))
}

func TestFiscalYearInfo_Contains(t *testing.T) {
	fy := FiscalYearInfo{StartYear: 2025, EndYear: 2026}

	assert.True(t, fy.Contains(7, 2025))
	assert.True(t, fy.Contains(6, 2026))
	assert.False(t, fy.Contains(6, 2025))
	assert.False(t, fy.Contains(7, 2026))
	assert.False(t, fy.Contains(0, 2025))
	assert.False(t, fy.Contains(13, 2025))
}

func TestFiscalYearInfo_Months(t *testing.T) {
	fy := FiscalYearInfo{StartYear: 2025, EndYear: 2026}
	months := fy.Months()

	assert.Len(t, months, 12)
	assert.Equal(t, FiscalMonth{Month: 7, Year: 2025}, months[0])
	assert.Equal(t, FiscalMonth{Month: 12, Year: 2025}, months[5])
	assert.Equal(t, FiscalMonth{Month: 1, Year: 2026}, months[6])
	assert.Equal(t, FiscalMonth{Month: 6, Year: 2026}, months[11])
}
