// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the comment endpoints: adding to and
// deleting from a show's thread. Reading happens through the show detail
// endpoint.
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
	"github.com/iliyamo/festival-schedule-planner/internal/planner"
	"github.com/iliyamo/festival-schedule-planner/internal/schedule"
)

// CommentHandler manages per-show comment threads.
type CommentHandler struct {
	Schedule *schedule.Holder
	Store    planner.Store
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(h *schedule.Holder, store planner.Store) *CommentHandler {
	return &CommentHandler{Schedule: h, Store: store}
}

type commentReq struct {
	Text string `json:"text"`
}

// AddComment appends a comment by the calling attendee to a show's thread.
func (h *CommentHandler) AddComment(c echo.Context) error {
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

	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}

	cm := model.Comment{
		ID:        uuid.NewString(),
		ShowID:    show.ID,
		Author:    name,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Store.AddComment(ctx, cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// DeleteComment removes one of the caller's own comments from a show.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	name := displayName(c)
	if name == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no display name in token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Store.DeleteComment(ctx, c.Param("id"), c.Param("commentID"), name)
	switch err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case planner.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
	case planner.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your comment"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
}
