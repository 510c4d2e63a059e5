package stream

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
	httperr "github.com/rollcall-app/rollcall/internal/core/errors"
)

// Service exposes the hub over server-sent events.
type Service struct {
	hub *Hub
}

// NewService creates the stream service.
func NewService(hub *Hub) *Service {
	if hub == nil {
		panic("stream: hub must not be nil")
	}
	return &Service{hub: hub}
}

// RegisterRoutes registers the stream routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/students/:student_id/stream", s.StreamHandler)
}

// StreamHandler handles GET /v1/students/:student_id/stream.
// It holds the connection open and emits one SSE event per attendance
// update until the client disconnects. Reconnection is the client's job;
// the server makes no delivery guarantee beyond best effort, since a full
// history fetch resynchronizes any missed updates.
func (s *Service) StreamHandler(c *gin.Context) {
	studentID := c.Param("student_id")
	if studentID == "" {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "student_id is required",
		})
		return
	}

	updates, cancel := s.hub.Subscribe(studentID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case update, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("attendance", update)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Publish forwards a mark to the hub as a stream update.
func (s *Service) Publish(mark *v1.Mark) {
	s.hub.Publish(v1.StreamUpdate{
		StudentID: mark.StudentID,
		ClassID:   mark.ClassID,
		Date:      mark.Date,
		Status:    mark.Status,
		Reason:    mark.Reason,
	})
}
