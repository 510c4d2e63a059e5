package reporting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
	"github.com/rollcall-app/rollcall/internal/core/calendar"
	httperr "github.com/rollcall-app/rollcall/internal/core/errors"
	"github.com/rollcall-app/rollcall/internal/core/storage"
)

func newTestRouter(stores *fakeStores, today calendar.Date) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := newTestService(stores, today)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func TestHandleSummary(t *testing.T) {
	stores := &fakeStores{
		marks: []*v1.Mark{
			mark("cse-3a", "stu-42", "2024-01-01", "Present"),
			mark("cse-3a", "stu-42", "2024-01-02", "Absent"),
		},
		periods: map[string]*storage.Period{
			"cse-3a": {ClassID: "cse-3a", StartDate: "2024-01-01", EndDate: "2024-01-02"},
		},
	}
	r := newTestRouter(stores, calendar.Date{Year: 2024, Month: time.June, Day: 1})

	req := httptest.NewRequest(http.MethodGet, "/v1/students/stu-42/summary?class_id=cse-3a", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var result SummaryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "stu-42", result.StudentID)
	require.Equal(t, 2, result.TotalWorkingDays)
	require.NotNil(t, result.AttendancePercentage)
	require.Equal(t, 50, *result.AttendancePercentage)
}

func TestHandleSummary_MissingClassID(t *testing.T) {
	r := newTestRouter(&fakeStores{periods: map[string]*storage.Period{}}, calendar.Date{Year: 2024, Month: time.June, Day: 1})

	req := httptest.NewRequest(http.MethodGet, "/v1/students/stu-42/summary", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}

func TestHandleTally(t *testing.T) {
	stores := &fakeStores{
		periods: map[string]*storage.Period{
			"cse-3a": {ClassID: "cse-3a", StartDate: "2024-01-01", EndDate: "2024-01-07"},
		},
	}
	r := newTestRouter(stores, calendar.Date{Year: 2024, Month: time.June, Day: 1})

	req := httptest.NewRequest(http.MethodGet, "/v1/classes/cse-3a/tally", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var tally calendar.Tally
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tally))
	require.Equal(t, 5, tally.WorkingDays)
	require.Equal(t, 1, tally.SkippedSaturdays)
	require.Equal(t, 1, tally.SkippedSundays)
}
