// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the attendance endpoints: marking, toggling
// and reading which shows each named attendee plans to be at.
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
	"github.com/iliyamo/festival-schedule-planner/internal/planner"
	"github.com/iliyamo/festival-schedule-planner/internal/queue"
	"github.com/iliyamo/festival-schedule-planner/internal/schedule"
	queue_publisher "github.com/iliyamo/festival-schedule-planner/internal/service"
)

// AttendanceHandler manages attendance marks. Writers are identified by the
// display name carried in their access token; the planner trusts names, it
// does not verify who is behind them.
type AttendanceHandler struct {
	Schedule *schedule.Holder
	Store    planner.Store
}

// NewAttendanceHandler constructs an AttendanceHandler.
func NewAttendanceHandler(h *schedule.Holder, store planner.Store) *AttendanceHandler {
	return &AttendanceHandler{Schedule: h, Store: store}
}

type attendanceReq struct {
	// State is optional. When present it must be one of the known states
	// and is applied directly; when absent the mark toggles through the
	// normal -> must-see -> deleted -> normal cycle.
	State string `json:"state"`
}

// SetAttendance applies or toggles the caller's mark on a show. The show
// must exist in the currently served schedule.
func (h *AttendanceHandler) SetAttendance(c echo.Context) error {
	name := displayName(c)
	if name == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no display name in token"})
	}

	store := h.Schedule.Current()
	if store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "no schedule loaded"})
	}
	show, ok := store.Lookup(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}

	var req attendanceReq
	_ = c.Bind(&req) // an empty body means "toggle"

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var next model.AttendanceState
	if req.State != "" {
		next = model.AttendanceState(strings.ToLower(strings.TrimSpace(req.State)))
		if !next.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown state"})
		}
	} else {
		current, err := h.Store.GetAttendance(ctx, show.ID, name)
		switch {
		case err == nil:
			next = current.State.Next()
		case err == planner.ErrNotFound:
			next = model.StateNormal // first touch marks attendance
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
		}
	}

	if err := h.Store.SetAttendance(ctx, show.ID, name, next); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}

	// Advisory event; the write already happened, so a broker outage must
	// not fail the request.
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishAttendanceChanged(pubCtx, queue.AttendanceChangedEvent{
			ShowID:    show.ID,
			ShowTitle: show.Artist,
			Stage:     show.Stage,
			Day:       show.Day,
			Attendee:  name,
			State:     string(next),
			ChangedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"show_id": show.ID,
		"name":    name,
		"state":   next,
	})
}

// GetMySchedule returns the chronological view filtered to the shows the
// named attendee is marked on. The name comes from the path so the group
// can look at each other's plans, matching how the planner has always
// worked.
func (h *AttendanceHandler) GetMySchedule(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "attendee name required"})
	}
	store := h.Schedule.Current()
	if store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "no schedule loaded"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ids, err := h.Store.ShowIDsFor(ctx, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	entries := schedule.FilterIDs(store.Chronological(), ids)
	if entries == nil {
		entries = []schedule.ChronoEntry{}
	}
	return c.JSON(http.StatusOK, echo.Map{"attendee": name, "shows": entries})
}

// displayName pulls the attendee's display name claim set by the JWT
// middleware. Returns "" when the token carried none.
func displayName(c echo.Context) string {
	if v, ok := c.Get("name").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
