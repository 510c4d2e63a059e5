package reporting

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/rollcall-app/rollcall/internal/core/errors"
)

// RegisterRoutes registers all reporting API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/students/:student_id/summary", s.HandleSummary)
	r.GET("/v1/classes/:class_id/tally", s.HandleTally)
}

// HandleSummary handles GET /v1/students/:student_id/summary?class_id=...
func (s *Service) HandleSummary(c *gin.Context) {
	var uri struct {
		StudentID string `uri:"student_id" binding:"required"`
	}
	var query struct {
		ClassID string `form:"class_id" binding:"required"`
	}

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Summarize(c.Request.Context(), SummaryRequest{
		ClassID:   query.ClassID,
		StudentID: uri.StudentID,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to compute summary")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleTally handles GET /v1/classes/:class_id/tally
func (s *Service) HandleTally(c *gin.Context) {
	tally, err := s.Tally(c.Request.Context(), c.Param("class_id"))
	if err != nil {
		writeServiceError(c, err, "Failed to compute tally")
		return
	}

	c.JSON(http.StatusOK, tally)
}

func writeServiceError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   message,
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   message,
		Details:   err.Error(),
	})
}
