package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/mongodb"
)

// NewspaperHandler serves CRUD on newspaper definitions.
type NewspaperHandler struct {
	store  mongodb.NewspaperStore
	logger *zap.Logger
}

// NewNewspaperHandler constructs the newspaper HTTP adapter.
func NewNewspaperHandler(store mongodb.NewspaperStore, logger *zap.Logger) *NewspaperHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewspaperHandler{store: store, logger: logger}
}

type newspaperInput struct {
	Name  string       `json:"name" binding:"required"`
	Month int          `json:"month" binding:"required,min=1,max=12"`
	Year  int          `json:"year" binding:"required,min=1900,max=3000"`
	Rates models.Rates `json:"rates"`
}

// List returns the newspapers defined for a month/year.
func (h *NewspaperHandler) List(c *gin.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "month must be an integer"})
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "year must be an integer"})
		return
	}

	papers, err := h.store.ListNewspapersByPeriod(c.Request.Context(), month, year)
	if err != nil {
		h.logger.Error("failed listing newspapers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if papers == nil {
		papers = []models.Newspaper{}
	}

	c.JSON(http.StatusOK, papers)
}

// Create adds a newspaper definition.
func (h *NewspaperHandler) Create(c *gin.Context) {
	var input newspaperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	paper := models.Newspaper{
		Name:  input.Name,
		Month: input.Month,
		Year:  input.Year,
		Rates: input.Rates,
	}
	if err := h.store.InsertNewspaper(c.Request.Context(), &paper); err != nil {
		h.logger.Error("failed inserting newspaper", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, paper)
}

// Update replaces a newspaper's definition by id.
func (h *NewspaperHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid newspaper id"})
		return
	}

	var input newspaperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	paper := models.Newspaper{
		Name:  input.Name,
		Month: input.Month,
		Year:  input.Year,
		Rates: input.Rates,
	}
	updated, err := h.store.UpdateNewspaper(c.Request.Context(), id, &paper)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Newspaper not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed updating newspaper", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete removes a newspaper by id. Ledger entries referencing it are kept;
// the report generator filters them out.
func (h *NewspaperHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid newspaper id"})
		return
	}

	err = h.store.DeleteNewspaper(c.Request.Context(), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Newspaper not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed deleting newspaper", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Newspaper deleted"})
}
