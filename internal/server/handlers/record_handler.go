package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/mongodb"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/service/report"
)

// RecordHandler serves the delivery ledger and the monthly report download.
type RecordHandler struct {
	records    mongodb.RecordStore
	newspapers mongodb.NewspaperStore
	reports    *report.Service
	logger     *zap.Logger
}

// NewRecordHandler constructs the records HTTP adapter.
func NewRecordHandler(records mongodb.RecordStore, newspapers mongodb.NewspaperStore, reports *report.Service, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{records: records, newspapers: newspapers, reports: reports, logger: logger}
}

type upsertRecordRequest struct {
	NewspaperID string `json:"newspaperId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Received    *bool  `json:"received" binding:"required"`
}

// ListByDate returns every record for one calendar day, newspaper expanded.
func (h *RecordHandler) ListByDate(c *gin.Context) {
	day, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date, expected YYYY-MM-DD"})
		return
	}

	records, err := h.records.FindRecordsByDay(c.Request.Context(), day)
	if err != nil {
		h.logger.Error("failed listing records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	expanded, err := h.expandRecords(c, records)
	if err != nil {
		h.logger.Error("failed expanding records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, expanded)
}

// Upsert writes the delivery status for one (newspaper, day) pair. The same
// pair reported again mutates the existing entry instead of creating a new
// one.
func (h *RecordHandler) Upsert(c *gin.Context) {
	var req upsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "newspaperId, date and received are required"})
		return
	}

	newspaperID, err := primitive.ObjectIDFromHex(req.NewspaperID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid newspaper id"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date, expected YYYY-MM-DD"})
		return
	}

	record, err := h.records.UpsertRecord(c.Request.Context(), newspaperID, date, *req.Received)
	if err != nil {
		h.logger.Error("failed upserting record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	// Resolve the reference for display. A newspaper deleted in the
	// meantime shows up as null, same as an unresolvable populate.
	paper, err := h.newspapers.FindNewspaperByID(c.Request.Context(), record.NewspaperID)
	if err != nil && !errors.Is(err, mongodb.ErrNotFound) {
		h.logger.Error("failed resolving newspaper", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, record.Expand(paper))
}

// MonthlyReport streams the month's pricing grid as an xlsx attachment.
func (h *RecordHandler) MonthlyReport(c *gin.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month or year"})
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month or year"})
		return
	}

	rep, err := h.reports.Generate(c.Request.Context(), month, year)
	switch {
	case errors.Is(err, report.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid month or year"})
		return
	case errors.Is(err, report.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"message": "No records found for this month"})
		return
	case err != nil:
		h.logger.Error("failed generating report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating report"})
		return
	}

	data, err := report.EncodeXLSX(rep)
	if err != nil {
		h.logger.Error("failed encoding report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename(month, year)))
	c.Data(http.StatusOK, report.ContentTypeXLSX, data)
}

func (h *RecordHandler) expandRecords(c *gin.Context, records []models.Record) ([]models.ExpandedRecord, error) {
	ids := make([]primitive.ObjectID, 0, len(records))
	seen := make(map[primitive.ObjectID]bool, len(records))
	for _, rec := range records {
		if !seen[rec.NewspaperID] {
			seen[rec.NewspaperID] = true
			ids = append(ids, rec.NewspaperID)
		}
	}

	papers, err := h.newspapers.FindNewspapersByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*models.Newspaper, len(papers))
	for i := range papers {
		byID[papers[i].ID] = &papers[i]
	}

	expanded := make([]models.ExpandedRecord, 0, len(records))
	for _, rec := range records {
		expanded = append(expanded, rec.Expand(byID[rec.NewspaperID]))
	}
	return expanded, nil
}

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp;
// either way only the calendar day is kept.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}
