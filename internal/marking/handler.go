package marking

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
	httperr "github.com/rollcall-app/rollcall/internal/core/errors"
)

const (
	msgReadBodyFailed = "Failed to read request body"
	msgInvalidJSON    = "Invalid JSON body"
	msgPersistFailed  = "Failed to persist mark"
)

// markingError carries the structured HTTP error shape from a helper back to
// the orchestrator. Helpers return this instead of writing to gin.Context
// directly, keeping them decoupled from HTTP.
type markingError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *markingError) Error() string {
	return e.message
}

// MarkHandler handles HTTP POST requests for attendance marks. The same
// endpoint serves both first marks and edits: a repeat mark for the same
// (class, student, date) overwrites the earlier status, last write wins.
func (s *Service) MarkHandler(c *gin.Context) {
	mark, err := s.parseMark(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if vErr := mark.Validate(); vErr != nil {
		slog.Warn("Mark validation failed", "error", vErr, "mark_id", mark.ID)
		writeError(c, &markingError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    vErr.Error(),
		})
		return
	}

	slog.Info("Received mark",
		"mark_id", mark.ID,
		"class_id", mark.ClassID,
		"student_id", mark.StudentID,
		"date", mark.Date,
		"status", mark.Status,
		"marked_by", mark.MarkedBy)

	if err := s.persistMark(c, mark); err != nil {
		writeError(c, err)
		return
	}

	if s.publisher != nil {
		s.publisher.Publish(mark)
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded", "id": mark.ID})
}

// ListMarksHandler handles GET /v1/classes/:class_id/students/:student_id/marks.
// Returns the student's full history for the class, oldest first.
func (s *Service) ListMarksHandler(c *gin.Context) {
	classID := c.Param("class_id")
	studentID := c.Param("student_id")

	marks, err := s.store.ListMarks(c.Request.Context(), classID, studentID)
	if err != nil {
		slog.Error("Failed to list marks", "error", err, "class_id", classID, "student_id", studentID)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to list marks",
		})
		return
	}

	if marks == nil {
		marks = []*v1.Mark{}
	}
	c.JSON(http.StatusOK, gin.H{"marks": marks})
}

// parseMark reads the raw request body and binds it into a Mark struct,
// stamping server-side fields (MarkedAt, a generated ID when absent).
func (s *Service) parseMark(c *gin.Context) (*v1.Mark, *markingError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, &markingError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, &markingError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var mark v1.Mark
	if err := c.ShouldBindJSON(&mark); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, &markingError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	if mark.ID == "" {
		mark.ID = uuid.New().String()
	}
	mark.MarkedAt = s.nowFn()
	return &mark, nil
}

// persistMark saves the mark to the backing store.
func (s *Service) persistMark(c *gin.Context, mark *v1.Mark) *markingError {
	if err := s.store.SaveMark(c.Request.Context(), mark); err != nil {
		slog.Error("Failed to persist mark", "error", err, "mark_id", mark.ID)
		return &markingError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}
	return nil
}

// writeError serializes a markingError as the JSON HTTP response.
func writeError(c *gin.Context, err *markingError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
