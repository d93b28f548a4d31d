package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/stubs"
)

func seedRecord(t *testing.T, store *stubs.Store, paperID primitive.ObjectID, date time.Time, received bool) {
	t.Helper()
	_, err := store.UpsertRecord(context.Background(), paperID, date, received)
	require.NoError(t, err)
}

func TestGenerateValidation(t *testing.T) {
	testCases := []struct {
		name  string
		month int
		year  int
	}{
		{name: "month zero", month: 0, year: 2024},
		{name: "month thirteen", month: 13, year: 2024},
		{name: "year too small", month: 1, year: 1899},
		{name: "year too large", month: 1, year: 3001},
	}

	store := stubs.NewStore()
	store.FailWith = assert.AnError // validation must reject before any data access
	svc := NewService(store, store, nil)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), tc.month, tc.year)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestGenerateNoRecords(t *testing.T) {
	store := stubs.NewStore()
	svc := NewService(store, store, nil)

	_, err := svc.Generate(context.Background(), 1, 2024)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGenerateAllReferencesDangling(t *testing.T) {
	store := stubs.NewStore()
	seedRecord(t, store, primitive.NewObjectID(), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true)

	svc := NewService(store, store, nil)
	_, err := svc.Generate(context.Background(), 1, 2024)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGenerateMondayRateScenario(t *testing.T) {
	store := stubs.NewStore()
	paperID := store.AddNewspaper(models.Newspaper{
		Name:  "Daily Times",
		Month: 1,
		Year:  2024,
		Rates: models.Rates{Monday: 10},
	})

	// 2024-01-01 and 2024-01-08 are both Mondays.
	seedRecord(t, store, paperID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true)
	seedRecord(t, store, paperID, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), false)

	svc := NewService(store, store, nil)
	rep, err := svc.Generate(context.Background(), 1, 2024)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	row := rep.Rows[0]
	assert.Equal(t, "Daily Times", row.NewspaperName)
	assert.Equal(t, 31, rep.DaysInMonth)
	require.Len(t, row.Days, 31)

	assert.Equal(t, 10.0, row.Days[0], "received Monday prices at the Monday rate")
	assert.Equal(t, 0.0, row.Days[7], "non-received Monday prices at zero")
	for day := 1; day <= 31; day++ {
		if day == 1 {
			continue
		}
		assert.Equalf(t, 0.0, row.Days[day-1], "day %d should be zero", day)
	}
	assert.Equal(t, 10.0, row.Total)
}

func TestGenerateFebruaryDayCount(t *testing.T) {
	testCases := []struct {
		name string
		year int
		days int
	}{
		{name: "leap year", year: 2024, days: 29},
		{name: "non-leap year", year: 2023, days: 28},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := stubs.NewStore()
			paperID := store.AddNewspaper(models.Newspaper{Name: "Weekly", Month: 2, Year: tc.year})
			seedRecord(t, store, paperID, time.Date(tc.year, 2, 10, 0, 0, 0, 0, time.UTC), true)

			svc := NewService(store, store, nil)
			rep, err := svc.Generate(context.Background(), 2, tc.year)
			require.NoError(t, err)

			assert.Equal(t, tc.days, rep.DaysInMonth)
			require.Len(t, rep.Rows, 1)
			assert.Len(t, rep.Rows[0].Days, tc.days)
		})
	}
}

func TestGenerateRowOrderFollowsDiscovery(t *testing.T) {
	store := stubs.NewStore()
	second := store.AddNewspaper(models.Newspaper{Name: "Second Seen", Month: 3, Year: 2024})
	first := store.AddNewspaper(models.Newspaper{Name: "First Seen", Month: 3, Year: 2024})

	seedRecord(t, store, first, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true)
	seedRecord(t, store, second, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), true)

	svc := NewService(store, store, nil)
	rep, err := svc.Generate(context.Background(), 3, 2024)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "First Seen", rep.Rows[0].NewspaperName)
	assert.Equal(t, "Second Seen", rep.Rows[1].NewspaperName)
}

func TestGenerateSkipsDanglingReference(t *testing.T) {
	store := stubs.NewStore()
	paperID := store.AddNewspaper(models.Newspaper{
		Name:  "Survivor",
		Month: 4,
		Year:  2024,
		Rates: models.Rates{Monday: 5, Tuesday: 5, Wednesday: 5, Thursday: 5, Friday: 5, Saturday: 5, Sunday: 5},
	})

	seedRecord(t, store, primitive.NewObjectID(), time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), true)
	seedRecord(t, store, paperID, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), true)

	svc := NewService(store, store, nil)
	rep, err := svc.Generate(context.Background(), 4, 2024)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Survivor", rep.Rows[0].NewspaperName)
	assert.Equal(t, 5.0, rep.Rows[0].Total)
}

func TestGenerateTotalSumsReceivedDays(t *testing.T) {
	store := stubs.NewStore()
	paperID := store.AddNewspaper(models.Newspaper{
		Name:  "Gazette",
		Month: 1,
		Year:  2024,
		Rates: models.Rates{Sunday: 12.5, Monday: 10, Saturday: 7.5},
	})

	// 2024-01-06 Saturday, 2024-01-07 Sunday, 2024-01-15 Monday.
	seedRecord(t, store, paperID, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), true)
	seedRecord(t, store, paperID, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), true)
	seedRecord(t, store, paperID, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true)
	// A mid-month Wednesday with no rate configured still counts as 0.
	seedRecord(t, store, paperID, time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), true)

	svc := NewService(store, store, nil)
	rep, err := svc.Generate(context.Background(), 1, 2024)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	row := rep.Rows[0]
	assert.Equal(t, 7.5, row.Days[5])
	assert.Equal(t, 12.5, row.Days[6])
	assert.Equal(t, 10.0, row.Days[14])
	assert.Equal(t, 0.0, row.Days[16])
	assert.Equal(t, 30.0, row.Total)
}

func TestGenerateNormalizesTimeOfDay(t *testing.T) {
	store := stubs.NewStore()
	paperID := store.AddNewspaper(models.Newspaper{
		Name:  "Evening Post",
		Month: 1,
		Year:  2024,
		Rates: models.Rates{Friday: 3},
	})

	// Reported late in the day; must still land on Friday the 5th.
	seedRecord(t, store, paperID, time.Date(2024, 1, 5, 22, 45, 0, 0, time.UTC), true)

	svc := NewService(store, store, nil)
	rep, err := svc.Generate(context.Background(), 1, 2024)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, 3.0, rep.Rows[0].Days[4])
	assert.Equal(t, 3.0, rep.Rows[0].Total)
}
