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
)

func postComment(e *echo.Echo, h *CommentHandler, showID, name, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/shows/:id/comments")
	c.SetParamNames("id")
	c.SetParamValues(showID)
	c.Set("name", name)
	_ = h.AddComment(c)
	return rec
}

func deleteComment(e *echo.Echo, h *CommentHandler, showID, commentID, name string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/shows/:id/comments/:commentID")
	c.SetParamNames("id", "commentID")
	c.SetParamValues(showID, commentID)
	c.Set("name", name)
	_ = h.DeleteComment(c)
	return rec
}

func TestCommentLifecycle(t *testing.T) {
	h := NewCommentHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()

	rec := postComment(e, h, alphaID, "dana", `{"text":"who's in?"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "dana", created.Author)
	assert.Equal(t, alphaID, created.ShowID)
	require.NotEmpty(t, created.ID)

	// only the author can delete
	rec = deleteComment(e, h, alphaID, created.ID, "lee")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = deleteComment(e, h, alphaID, created.ID, "dana")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = deleteComment(e, h, alphaID, created.ID, "dana")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddCommentValidation(t *testing.T) {
	h := NewCommentHandler(newTestHolder(t), newTestPlanner(t))
	e := echo.New()

	rec := postComment(e, h, alphaID, "dana", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postComment(e, h, "show_3_fire_ghost_300am", "dana", `{"text":"hi"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
