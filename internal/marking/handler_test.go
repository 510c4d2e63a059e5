package marking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
	httperr "github.com/rollcall-app/rollcall/internal/core/errors"
)

type fakeMarkStore struct {
	mu    sync.Mutex
	saved []*v1.Mark
	err   error
}

func (f *fakeMarkStore) SaveMark(_ context.Context, mark *v1.Mark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	mark.Seq = int64(len(f.saved) + 1)
	f.saved = append(f.saved, mark)
	return nil
}

func (f *fakeMarkStore) ListMarks(_ context.Context, classID, studentID string) ([]*v1.Mark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*v1.Mark
	for _, m := range f.saved {
		if m.ClassID == classID && m.StudentID == studentID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakePublisher struct {
	published []*v1.Mark
}

func (f *fakePublisher) Publish(mark *v1.Mark) {
	f.published = append(f.published, mark)
}

func newTestRouter(store *fakeMarkStore, pub Publisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(store, pub, 1)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func TestMarkHandler_Success(t *testing.T) {
	store := &fakeMarkStore{}
	pub := &fakePublisher{}
	r := newTestRouter(store, pub)

	body, _ := json.Marshal(v1.Mark{
		ClassID:   "cse-3a",
		StudentID: "stu-42",
		Date:      "2024-01-02",
		Status:    "Present",
		MarkedBy:  "fac-7",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/marks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var result map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "recorded", result["status"])
	require.NotEmpty(t, result["id"]) // server generates an id when absent

	require.Len(t, store.saved, 1)
	require.False(t, store.saved[0].MarkedAt.IsZero())
	require.Len(t, pub.published, 1)
	require.Equal(t, "2024-01-02", pub.published[0].Date)
}

func TestMarkHandler_InvalidJSON(t *testing.T) {
	r := newTestRouter(&fakeMarkStore{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/marks", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}

func TestMarkHandler_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		mark v1.Mark
	}{
		{
			name: "unknown status",
			mark: v1.Mark{ClassID: "cse-3a", StudentID: "stu-42", Date: "2024-01-02", Status: "Late", MarkedBy: "fac-7"},
		},
		{
			name: "bad date",
			mark: v1.Mark{ClassID: "cse-3a", StudentID: "stu-42", Date: "2024-1-2", Status: "Present", MarkedBy: "fac-7"},
		},
		{
			name: "missing student",
			mark: v1.Mark{ClassID: "cse-3a", Date: "2024-01-02", Status: "Present", MarkedBy: "fac-7"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeMarkStore{}
			r := newTestRouter(store, nil)

			body, _ := json.Marshal(tc.mark)
			req := httptest.NewRequest(http.MethodPost, "/v1/marks", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, http.StatusBadRequest, resp.Code)
			require.Empty(t, store.saved)
		})
	}
}

func TestMarkHandler_OversizedBody(t *testing.T) {
	r := newTestRouter(&fakeMarkStore{}, nil)

	big := bytes.Repeat([]byte("x"), 1024*1024+1)
	req := httptest.NewRequest(http.MethodPost, "/v1/marks", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestMarkHandler_PersistFailure(t *testing.T) {
	store := &fakeMarkStore{err: errors.New("db down")}
	pub := &fakePublisher{}
	r := newTestRouter(store, pub)

	body, _ := json.Marshal(v1.Mark{
		ClassID:   "cse-3a",
		StudentID: "stu-42",
		Date:      "2024-01-02",
		Status:    "Present",
		MarkedBy:  "fac-7",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/marks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
	// Nothing is pushed to subscribers when the write fails.
	require.Empty(t, pub.published)
}

func TestListMarksHandler(t *testing.T) {
	store := &fakeMarkStore{saved: []*v1.Mark{
		{ID: "m1", ClassID: "cse-3a", StudentID: "stu-42", Date: "2024-01-01", Status: "Present", MarkedBy: "fac-7"},
		{ID: "m2", ClassID: "cse-3a", StudentID: "stu-99", Date: "2024-01-01", Status: "Absent", MarkedBy: "fac-7"},
	}}
	r := newTestRouter(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/classes/cse-3a/students/stu-42/marks", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Marks []*v1.Mark `json:"marks"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Len(t, result.Marks, 1)
	require.Equal(t, "stu-42", result.Marks[0].StudentID)
}
