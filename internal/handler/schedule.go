// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public schedule views: the stage grid in
// source order, the flattened chronological timeline, and the day/stage
// metadata the client builds its filter bar from. These routes require no
// authentication — anyone with the link can read the schedule.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
	"github.com/iliyamo/festival-schedule-planner/internal/planner"
	"github.com/iliyamo/festival-schedule-planner/internal/schedule"
)

// ScheduleHandler serves read-only views over the schedule currently held
// in memory. The planner store is consulted only for the attendee filter on
// the chronological view and for the per-show detail endpoint.
type ScheduleHandler struct {
	Schedule *schedule.Holder
	Store    planner.Store
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(h *schedule.Holder, store planner.Store) *ScheduleHandler {
	return &ScheduleHandler{Schedule: h, Store: store}
}

// currentStore returns the served schedule, or nil plus a rendered 503 when
// no dataset has been loaded yet.
func (h *ScheduleHandler) currentStore(c echo.Context) *schedule.Store {
	store := h.Schedule.Current()
	if store == nil {
		_ = c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "no schedule loaded"})
		return nil
	}
	return store
}

// GetSchedule returns the default grid view: days in festival order, stages
// in source order, shows in arrival order. Response JSON contains a "days"
// array of day groups.
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	store := h.currentStore(c)
	if store == nil {
		return nil
	}
	// ?sort=time switches to the per-stage time-sorted variant; the
	// default stays source order.
	if c.QueryParam("sort") == "time" {
		return c.JSON(http.StatusOK, echo.Map{"days": store.TimeSorted()})
	}
	return c.JSON(http.StatusOK, echo.Map{"days": store.SourceOrder()})
}

// GetChronological returns the flattened timeline. Optional query
// parameters narrow it down: ?day= matches the display day by substring,
// ?attendee= keeps only shows that attendee is marked on. Filters apply to
// the already-sorted sequence; they never reorder it.
func (h *ScheduleHandler) GetChronological(c echo.Context) error {
	store := h.currentStore(c)
	if store == nil {
		return nil
	}
	entries := store.Chronological()
	entries = schedule.FilterDay(entries, c.QueryParam("day"))

	if attendee := c.QueryParam("attendee"); attendee != "" {
		ids, err := h.Store.ShowIDsFor(c.Request().Context(), attendee)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
		}
		entries = schedule.FilterIDs(entries, ids)
	}
	if entries == nil {
		entries = []schedule.ChronoEntry{}
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": entries})
}

// GetDays lists the dataset's days in festival order.
func (h *ScheduleHandler) GetDays(c echo.Context) error {
	store := h.currentStore(c)
	if store == nil {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"days": store.Days()})
}

// GetStages lists the stage display order for the day given by ?day=.
func (h *ScheduleHandler) GetStages(c echo.Context) error {
	store := h.currentStore(c)
	if store == nil {
		return nil
	}
	day := c.QueryParam("day")
	if day == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day parameter required"})
	}
	stages := store.StageOrderForDay(day)
	if stages == nil {
		stages = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"day": day, "stages": stages})
}

// showDetail is the per-show response: the show itself plus the shared
// state attached to its ID.
type showDetail struct {
	Show       schedule.Show      `json:"show"`
	Display    string             `json:"display_time"`
	Attendance []model.Attendance `json:"attendance"`
	Comments   []model.Comment    `json:"comments"`
}

// GetShow returns one show with its attendance marks and comment thread.
func (h *ScheduleHandler) GetShow(c echo.Context) error {
	store := h.currentStore(c)
	if store == nil {
		return nil
	}
	show, ok := store.Lookup(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}

	ctx := c.Request().Context()
	marks, err := h.Store.ListAttendance(ctx, show.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	comments, err := h.Store.ListComments(ctx, show.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	if marks == nil {
		marks = []model.Attendance{}
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return c.JSON(http.StatusOK, showDetail{
		Show:       show,
		Display:    schedule.FormatRange(show.Time),
		Attendance: marks,
		Comments:   comments,
	})
}
