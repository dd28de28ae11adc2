package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
	"github.com/iliyamo/festival-schedule-planner/internal/planner"
	"github.com/iliyamo/festival-schedule-planner/internal/schedule"
)

const sampleCSV = `day,time,stage,artist
Friday,9:00PM-10:00PM,Water,Alpha
Friday,12:30AM-1:30AM,Water,Beta
Saturday,8:00PM,Air,Gamma
`

const (
	alphaID = "show_1_water_alpha_900pm1000pm"
	betaID  = "show_1_water_beta_1230am130am"
	gammaID = "show_2_air_gamma_800pm"
)

func newTestHolder(t *testing.T) *schedule.Holder {
	t.Helper()
	store, err := schedule.Parse(sampleCSV)
	require.NoError(t, err)
	return schedule.NewHolder(store)
}

func newTestPlanner(t *testing.T) planner.Store {
	t.Helper()
	s, err := planner.OpenLocalStore(filepath.Join(t.TempDir(), "planner.json"))
	require.NoError(t, err)
	return s
}

func doGET(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Pins the shared fixture to the ingest column order (day, time, stage,
// artist): every ID constant must resolve and the fields must land in the
// right slots, or every test built on the fixture chases ghosts.
func TestSampleScheduleIdentities(t *testing.T) {
	store, err := schedule.Parse(sampleCSV)
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	for _, id := range []string{alphaID, betaID, gammaID} {
		_, ok := store.Lookup(id)
		assert.True(t, ok, "missing %s", id)
	}

	alpha, ok := store.Lookup(alphaID)
	require.True(t, ok)
	assert.Equal(t, "Water", alpha.Stage)
	assert.Equal(t, "9:00PM-10:00PM", alpha.Time)
	assert.Equal(t, "Alpha", alpha.Artist)
}

func TestGetScheduleSourceOrder(t *testing.T) {
	h := NewScheduleHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()
	c, rec := doGET(e, "/v1/schedule")

	require.NoError(t, h.GetSchedule(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Days []schedule.DayGroup `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "Friday", resp.Days[0].Day)
	assert.Equal(t, "Saturday", resp.Days[1].Day)
	require.Len(t, resp.Days[0].Stages, 1)
	// arrival order within a stage, not time order
	assert.Equal(t, "Alpha", resp.Days[0].Stages[0].Shows[0].Artist)
	assert.Equal(t, "Beta", resp.Days[0].Stages[0].Shows[1].Artist)
}

func TestGetScheduleNoDatasetLoaded(t *testing.T) {
	h := NewScheduleHandler(schedule.NewHolder(nil), newTestPlanner(t))
	e := echo.New()
	c, rec := doGET(e, "/v1/schedule")

	require.NoError(t, h.GetSchedule(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetChronologicalDayAndAttendeeFilters(t *testing.T) {
	holder := newTestHolder(t)
	store := newTestPlanner(t)
	h := NewScheduleHandler(holder, store)
	e := echo.New()

	// Beta starts 12:30AM on the Friday lineup, so it rolls into Saturday;
	// the day filter matches the printed day, which stays Friday.
	c, rec := doGET(e, "/v1/schedule/chronological?day=friday")
	require.NoError(t, h.GetChronological(c))
	var resp struct {
		Shows []schedule.ChronoEntry `json:"shows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Shows, 2)
	assert.Equal(t, alphaID, resp.Shows[0].ID)
	assert.Equal(t, betaID, resp.Shows[1].ID)

	require.NoError(t, store.SetAttendance(c.Request().Context(), gammaID, "dana", model.StateNormal))
	c, rec = doGET(e, "/v1/schedule/chronological?attendee=dana")
	require.NoError(t, h.GetChronological(c))
	resp.Shows = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Shows, 1)
	assert.Equal(t, gammaID, resp.Shows[0].ID)
}

func TestGetDays(t *testing.T) {
	h := NewScheduleHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()
	c, rec := doGET(e, "/v1/schedule/days")

	require.NoError(t, h.GetDays(c))
	var resp struct {
		Days []string `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Friday", "Saturday"}, resp.Days)
}

func TestGetStages(t *testing.T) {
	h := NewScheduleHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()

	c, rec := doGET(e, "/v1/schedule/stages")
	require.NoError(t, h.GetStages(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = doGET(e, "/v1/schedule/stages?day=Friday")
	require.NoError(t, h.GetStages(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Stages []string `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Water"}, resp.Stages)
}

func TestGetShowDetail(t *testing.T) {
	holder := newTestHolder(t)
	store := newTestPlanner(t)
	h := NewScheduleHandler(holder, store)
	e := echo.New()

	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	require.NoError(t, store.SetAttendance(ctx, alphaID, "dana", model.StateMustSee))
	require.NoError(t, store.AddComment(ctx, model.Comment{
		ID: "c1", ShowID: alphaID, Author: "dana", Text: "meet at the rail",
	}))

	c, rec := doGET(e, "/v1/shows/"+alphaID)
	c.SetParamNames("id")
	c.SetParamValues(alphaID)
	require.NoError(t, h.GetShow(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Show       schedule.Show      `json:"show"`
		Display    string             `json:"display_time"`
		Attendance []model.Attendance `json:"attendance"`
		Comments   []model.Comment    `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alpha", resp.Show.Artist)
	assert.Equal(t, "9:00PM - 10:00PM", resp.Display)
	require.Len(t, resp.Attendance, 1)
	assert.Equal(t, model.StateMustSee, resp.Attendance[0].State)
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "meet at the rail", resp.Comments[0].Text)
}

func TestGetShowNotFound(t *testing.T) {
	h := NewScheduleHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()
	c, rec := doGET(e, "/v1/shows/show_9_nope_nope_0")
	c.SetParamNames("id")
	c.SetParamValues("show_9_nope_nope_0")

	require.NoError(t, h.GetShow(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
