package holidays

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
	httperr "github.com/rollcall-app/rollcall/internal/core/errors"
	"github.com/rollcall-app/rollcall/internal/core/storage"
)

// RegisterRoutes registers the holiday and period administration routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/holidays", s.DeclareHandler)
	r.DELETE("/v1/holidays/:id", s.RemoveHandler)
	r.GET("/v1/holidays", s.ListHandler)

	r.PUT("/v1/classes/:class_id/period", s.SetPeriodHandler)
	r.GET("/v1/classes/:class_id/period", s.PeriodHandler)
}

// DeclareHandler handles POST /v1/holidays.
func (s *Service) DeclareHandler(c *gin.Context) {
	var decl v1.HolidayDeclaration
	if err := c.ShouldBindJSON(&decl); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	if vErr := decl.Validate(); vErr != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   vErr.Error(),
		})
		return
	}

	holiday, err := s.Declare(c.Request.Context(), decl)
	if err != nil {
		slog.Error("Failed to declare holiday", "error", err, "date", decl.Date)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to declare holiday",
		})
		return
	}

	c.JSON(http.StatusCreated, holiday)
}

// RemoveHandler handles DELETE /v1/holidays/:id.
func (s *Service) RemoveHandler(c *gin.Context) {
	id := c.Param("id")

	if err := s.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   "Holiday not found",
			})
			return
		}
		slog.Error("Failed to remove holiday", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to remove holiday",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed", "id": id})
}

// ListHandler handles GET /v1/holidays.
func (s *Service) ListHandler(c *gin.Context) {
	holidays, err := s.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list holidays", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to list holidays",
		})
		return
	}

	if holidays == nil {
		holidays = []storage.Holiday{}
	}
	c.JSON(http.StatusOK, gin.H{"holidays": holidays})
}

// SetPeriodHandler handles PUT /v1/classes/:class_id/period.
func (s *Service) SetPeriodHandler(c *gin.Context) {
	var body struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	period := &storage.Period{
		ClassID:   c.Param("class_id"),
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	}
	if err := s.SetPeriod(c.Request.Context(), period); err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   err.Error(),
			})
			return
		}
		slog.Error("Failed to set period", "error", err, "class_id", period.ClassID)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to set period",
		})
		return
	}

	c.JSON(http.StatusOK, period)
}

// PeriodHandler handles GET /v1/classes/:class_id/period.
func (s *Service) PeriodHandler(c *gin.Context) {
	period, err := s.Period(c.Request.Context(), c.Param("class_id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   "No attendance period configured",
			})
			return
		}
		slog.Error("Failed to load period", "error", err, "class_id", c.Param("class_id"))
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to load period",
		})
		return
	}

	c.JSON(http.StatusOK, period)
}
