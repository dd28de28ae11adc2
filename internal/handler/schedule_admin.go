// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the owner-only administration endpoints:
// uploading a new schedule dataset and exporting the group's planner state.
package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-schedule-planner/internal/planner"
	"github.com/iliyamo/festival-schedule-planner/internal/queue"
	"github.com/iliyamo/festival-schedule-planner/internal/schedule"
	queue_publisher "github.com/iliyamo/festival-schedule-planner/internal/service"
)

// AdminHandler bundles the owner-facing operations.
type AdminHandler struct {
	Schedule *schedule.Holder
	Store    planner.Store
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(h *schedule.Holder, store planner.Store) *AdminHandler {
	return &AdminHandler{Schedule: h, Store: store}
}

// maxUploadBytes caps schedule uploads; festival datasets are a few hundred
// rows, so anything past this is a mistake, not a schedule.
const maxUploadBytes = 1 << 20

// UploadSchedule replaces the served schedule with the CSV in the request
// body. The new dataset is parsed into a fresh store off to the side and
// swapped in wholesale; the old store is discarded. Attendance and comments
// survive the swap because show IDs are deterministic.
func (a *AdminHandler) UploadSchedule(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxUploadBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read body"})
	}

	store, err := schedule.Parse(string(body))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty schedule"})
	}
	a.Schedule.Swap(store)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishScheduleReloaded(ctx, queue.ScheduleReloadedEvent{
			Source:     "upload",
			Days:       store.Days(),
			ShowCount:  store.Len(),
			ReloadedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"days":       store.Days(),
		"show_count": store.Len(),
	})
}

// Export returns the group's complete planner state (attendance and
// comments grouped by show ID) for backup or migration to another
// deployment.
func (a *AdminHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	export, err := a.Store.Export(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusOK, export)
}
