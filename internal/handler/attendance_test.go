package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
	"github.com/iliyamo/festival-schedule-planner/internal/schedule"
)

func putAttendance(e *echo.Echo, h *AttendanceHandler, showID, name, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/shows/:id/attendance")
	c.SetParamNames("id")
	c.SetParamValues(showID)
	if name != "" {
		c.Set("name", name)
	}
	_ = h.SetAttendance(c)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) model.AttendanceState {
	t.Helper()
	var resp struct {
		State model.AttendanceState `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.State
}

func TestSetAttendanceToggleCycle(t *testing.T) {
	h := NewAttendanceHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()

	rec := putAttendance(e, h, alphaID, "dana", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StateNormal, decodeState(t, rec))

	rec = putAttendance(e, h, alphaID, "dana", "")
	assert.Equal(t, model.StateMustSee, decodeState(t, rec))

	rec = putAttendance(e, h, alphaID, "dana", "")
	assert.Equal(t, model.StateDeleted, decodeState(t, rec))

	// the tombstone toggles back to normal, not must-see
	rec = putAttendance(e, h, alphaID, "dana", "")
	assert.Equal(t, model.StateNormal, decodeState(t, rec))
}

func TestSetAttendanceExplicitState(t *testing.T) {
	h := NewAttendanceHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()

	rec := putAttendance(e, h, gammaID, "lee", `{"state":"must-see"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StateMustSee, decodeState(t, rec))

	rec = putAttendance(e, h, gammaID, "lee", `{"state":"definitely"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetAttendanceUnknownShow(t *testing.T) {
	h := NewAttendanceHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()

	rec := putAttendance(e, h, "show_1_water_nobody_100am", "dana", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetAttendanceRequiresDisplayName(t *testing.T) {
	h := NewAttendanceHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()

	rec := putAttendance(e, h, alphaID, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMyScheduleFiltersAndOrders(t *testing.T) {
	holder := newTestHolder(t)
	store := newTestPlanner(t)
	h := NewAttendanceHandler(holder, store)
	e := echo.New()

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	require.NoError(t, store.SetAttendance(ctx, gammaID, "dana", model.StateNormal))
	require.NoError(t, store.SetAttendance(ctx, alphaID, "dana", model.StateMustSee))
	// deleted marks drop out of the personal schedule
	require.NoError(t, store.SetAttendance(ctx, betaID, "dana", model.StateDeleted))

	c, rec := doGET(e, "/v1/attendees/dana/schedule")
	c.SetParamNames("name")
	c.SetParamValues("dana")
	require.NoError(t, h.GetMySchedule(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Attendee string                 `json:"attendee"`
		Shows    []schedule.ChronoEntry `json:"shows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dana", resp.Attendee)
	require.Len(t, resp.Shows, 2)
	// chronological order, not marking order
	assert.Equal(t, alphaID, resp.Shows[0].ID)
	assert.Equal(t, gammaID, resp.Shows[1].ID)
}

func TestGetMyScheduleRequiresName(t *testing.T) {
	h := NewAttendanceHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()
	c, rec := doGET(e, "/v1/attendees//schedule")
	c.SetParamNames("name")
	c.SetParamValues("")

	require.NoError(t, h.GetMySchedule(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
