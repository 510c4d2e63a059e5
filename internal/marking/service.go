package marking

import (
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
	"github.com/rollcall-app/rollcall/internal/core/storage"
)

// Publisher receives every successfully persisted mark, typically to fan it
// out to attendance stream subscribers.
type Publisher interface {
	Publish(mark *v1.Mark)
}

// Service handles faculty attendance marking.
type Service struct {
	store            storage.MarkStore
	publisher        Publisher
	maxBodySizeBytes int
	nowFn            func() time.Time
}

func NewService(store storage.MarkStore, publisher Publisher, maxBodySizeMB int) *Service {
	if store == nil {
		panic("marking: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		publisher:        publisher,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn:            func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRoutes registers the marking service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/marks", s.MarkHandler)
	r.GET("/v1/classes/:class_id/students/:student_id/marks", s.ListMarksHandler)
}
