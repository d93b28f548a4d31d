package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/mongodb"
)

// ErrInvalidPeriod is returned before any data access when the requested
// month or year is out of range.
var ErrInvalidPeriod = errors.New("invalid month or year")

// ErrNoData is returned when the requested month has no usable ledger
// entries, so there is nothing to price.
var ErrNoData = errors.New("no records found for this month")

const (
	minYear = 1900
	maxYear = 3000
)

// Service builds the monthly pricing report from the rate tables and the
// delivery ledger.
type Service struct {
	newspapers mongodb.NewspaperStore
	records    mongodb.RecordStore
	logger     *zap.Logger
}

// NewService wires a new report service instance.
func NewService(newspapers mongodb.NewspaperStore, records mongodb.RecordStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{newspapers: newspapers, records: records, logger: logger}
}

// Generate reconciles the month's ledger entries against each referenced
// newspaper's weekday rates. A day counts at the weekday rate only when a
// record exists for it with received=true; every other day prices at 0.
// Rows appear in the order their newspapers were first seen in the ledger.
func (s *Service) Generate(ctx context.Context, month, year int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 || year < minYear || year > maxYear {
		return nil, ErrInvalidPeriod
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	daysInMonth := end.AddDate(0, 0, -1).Day()

	records, err := s.records.FindRecordsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	// Distinct referenced newspapers in first-seen order. The ledger holds
	// weak references, so some ids may no longer resolve; those records are
	// dropped silently.
	var ids []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool)
	for _, rec := range records {
		if !seen[rec.NewspaperID] {
			seen[rec.NewspaperID] = true
			ids = append(ids, rec.NewspaperID)
		}
	}

	papers, err := s.newspapers.FindNewspapersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve newspapers: %w", err)
	}
	if len(papers) == 0 {
		return nil, ErrNoData
	}

	byID := make(map[primitive.ObjectID]models.Newspaper, len(papers))
	for _, p := range papers {
		byID[p.ID] = p
	}

	received := make(map[dayKey]bool, len(records))
	for _, rec := range records {
		key := dayKey{newspaper: rec.NewspaperID, day: rec.Date.UTC().Day()}
		if _, ok := received[key]; !ok {
			received[key] = rec.Received
		}
	}

	rep := &models.MonthlyReport{Month: month, Year: year, DaysInMonth: daysInMonth}
	for _, id := range ids {
		paper, ok := byID[id]
		if !ok {
			s.logger.Debug("skipping dangling newspaper reference", zap.String("newspaper_id", id.Hex()))
			continue
		}

		row := models.ReportRow{
			NewspaperName: paper.Name,
			Days:          make([]float64, daysInMonth),
		}
		for day := 1; day <= daysInMonth; day++ {
			weekday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
			if received[dayKey{newspaper: id, day: day}] {
				rate := paper.Rates.ForWeekday(weekday)
				row.Days[day-1] = rate
				row.Total += rate
			}
		}
		rep.Rows = append(rep.Rows, row)
	}

	if len(rep.Rows) == 0 {
		return nil, ErrNoData
	}

	s.logger.Info("report generated",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("rows", len(rep.Rows)))

	return rep, nil
}

type dayKey struct {
	newspaper primitive.ObjectID
	day       int
}
