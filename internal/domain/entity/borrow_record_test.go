package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBorrowRecord_DaysOverdue(t *testing.T) {
	record := &BorrowRecord{
		BorrowDate: date(2025, time.March, 1),
		DueDate:    date(2025, time.March, 15),
	}

	tests := []struct {
		name       string
		returnDate time.Time
		want       int
	}{
		{
			name:       "returned before due date",
			returnDate: date(2025, time.March, 10),
			want:       0,
		},
		{
			name:       "returned on due date",
			returnDate: date(2025, time.March, 15),
			want:       0,
		},
		{
			name:       "returned one day late",
			returnDate: date(2025, time.March, 16),
			want:       1,
		},
		{
			name:       "returned six days late",
			returnDate: date(2025, time.March, 21),
			want:       6,
		},
		{
			name:       "time of day does not change the day count",
			returnDate: time.Date(2025, time.March, 16, 23, 59, 59, 0, time.UTC),
			want:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, record.DaysOverdue(tt.returnDate))
		})
	}
}

func TestBorrowRecord_Close(t *testing.T) {
	rate := decimal.NewFromInt(1)

	tests := []struct {
		name       string
		dueDate    time.Time
		returnDate time.Time
		ratePerDay decimal.Decimal
		wantDays   int
		wantFine   string
	}{
		{
			name:       "on-time return has no fine",
			dueDate:    date(2025, time.March, 15),
			returnDate: date(2025, time.March, 15),
			ratePerDay: rate,
			wantDays:   0,
			wantFine:   "0",
		},
		{
			name:       "one day late",
			dueDate:    date(2025, time.March, 15),
			returnDate: date(2025, time.March, 16),
			ratePerDay: rate,
			wantDays:   1,
			wantFine:   "1",
		},
		{
			name:       "six days late",
			dueDate:    date(2025, time.March, 15),
			returnDate: date(2025, time.March, 21),
			ratePerDay: rate,
			wantDays:   6,
			wantFine:   "6",
		},
		{
			name:       "fractional rate",
			dueDate:    date(2025, time.March, 15),
			returnDate: date(2025, time.March, 18),
			ratePerDay: decimal.RequireFromString("0.50"),
			wantDays:   3,
			wantFine:   "1.5",
		},
		{
			name:       "early return stays at zero",
			dueDate:    date(2025, time.March, 15),
			returnDate: date(2025, time.March, 2),
			ratePerDay: rate,
			wantDays:   0,
			wantFine:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &BorrowRecord{
				BorrowDate: date(2025, time.March, 1),
				DueDate:    tt.dueDate,
			}

			days := record.Close(tt.returnDate, tt.ratePerDay)

			assert.Equal(t, tt.wantDays, days)
			assert.False(t, record.IsOpen())
			assert.True(t, record.FineAmount.Equal(decimal.RequireFromString(tt.wantFine)),
				"fine = %s, want %s", record.FineAmount, tt.wantFine)
		})
	}
}

func TestBorrowRecord_Close_StampsReturnDay(t *testing.T) {
	record := &BorrowRecord{
		BorrowDate: date(2025, time.March, 1),
		DueDate:    date(2025, time.March, 15),
	}

	record.Close(time.Date(2025, time.March, 21, 14, 30, 0, 0, time.UTC), decimal.NewFromInt(1))

	assert.NotNil(t, record.ReturnDate)
	assert.Equal(t, date(2025, time.March, 21), *record.ReturnDate)
}

func TestBorrowRecord_IsOpen(t *testing.T) {
	record := &BorrowRecord{
		BorrowDate: date(2025, time.March, 1),
		DueDate:    date(2025, time.March, 15),
	}
	assert.True(t, record.IsOpen())

	returned := date(2025, time.March, 10)
	record.ReturnDate = &returned
	assert.False(t, record.IsOpen())
}
