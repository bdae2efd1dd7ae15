package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrops/internal/attendance"
	attendanceerrors "go-hrops/internal/attendance/errors"
	"go-hrops/internal/domain"
	"go-hrops/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	createFn func(ctx context.Context, actor domain.Actor, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error)
	updateFn func(ctx context.Context, actor domain.Actor, id uint, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error)
	getAllFn func(ctx context.Context, actor domain.Actor, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) Create(ctx context.Context, actor domain.Actor, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeService) Update(ctx context.Context, actor domain.Actor, id uint, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.updateFn(ctx, actor, id, req)
}
func (f *fakeService) GetAll(ctx context.Context, actor domain.Actor, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, actor, filter)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == "" {
		c.Request = httptest.NewRequest(method, target, nil)
	} else {
		c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	c.Set(middleware.ContextActor, domain.Actor{ID: 5, Role: domain.Predefined(domain.RoleEmployee)})
	return c, w
}

func TestHandler_CreateAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, actor domain.Actor, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, uint(5), actor.ID)
			require.NotNil(t, req.CheckIn)
			return attendance.AttendanceResponse{ID: 1, UserID: actor.ID, Status: "Present"}, nil
		},
		getAllFn: func(ctx context.Context, actor domain.Actor, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			require.NotNil(t, filter.Date)
			assert.Equal(t, "2025-03-03", filter.Date.Format("2006-01-02"))
			return []attendance.AttendanceResponse{{ID: 1}, {ID: 2}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	c, w := newContext(http.MethodPost, "/attendance", `{"check_in":"2025-03-03T09:00:00Z"}`)
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c2, w2 := newContext(http.MethodGet, "/attendance?date=2025-03-03&page=1&page_size=1", "")
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_GetAllRejectsBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{})

	c, w := newContext(http.MethodGet, "/attendance?date=03-03-2025", "")
	h.GetAll(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		updateFn: func(ctx context.Context, actor domain.Actor, id uint, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
			if id == 2 {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
			}
			return attendance.AttendanceResponse{ID: id, Status: "Half Day"}, nil
		},
	}
	h := attendance.NewHandler(svc)

	t.Run("ok", func(t *testing.T) {
		c, w := newContext(http.MethodPatch, "/attendance/1", `{"check_out":"2025-03-03T14:00:00Z"}`)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		h.Update(c)
		require.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Data attendance.AttendanceResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "Half Day", env.Data.Status)
	})

	t.Run("conflict", func(t *testing.T) {
		c, w := newContext(http.MethodPatch, "/attendance/2", `{"check_out":"2025-03-03T14:00:00Z"}`)
		c.Params = gin.Params{{Key: "id", Value: "2"}}
		h.Update(c)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("non numeric id", func(t *testing.T) {
		c, w := newContext(http.MethodPatch, "/attendance/abc", `{}`)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		h.Update(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		c, w := newContext(http.MethodPatch, "/attendance/1", `{"check_out":"five pm"}`)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		h.Update(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
