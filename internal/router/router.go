// Package router maps the HTTP surface onto handlers. Public schedule views
// need no session; marking attendance and commenting need a valid access
// token; uploading a new lineup and exporting planner data are owner-only.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-schedule-planner/internal/handler"
	"github.com/iliyamo/festival-schedule-planner/internal/middleware"
)

// RegisterPublic registers the unauthenticated schedule views. The cache
// middleware may be nil when Redis is unavailable.
func RegisterPublic(e *echo.Echo, s *handler.ScheduleHandler, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/v1/schedule")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", s.GetSchedule)                   // source order, ?sort=time for per-stage time sort
	g.GET("/chronological", s.GetChronological) // ?day=Friday&attendee=dana
	g.GET("/days", s.GetDays)
	g.GET("/stages", s.GetStages) // ?day= required

	// show detail carries attendance and comments, so it skips the cache
	e.GET("/v1/shows/:id", s.GetShow)
}

// RegisterAuth registers session endpoints and /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// logout works with either a bearer token or a refresh token in the body
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPlanner registers the collaborative endpoints: attendance marks,
// per-attendee schedules and comments. Any authenticated role may use them.
func RegisterPlanner(e *echo.Echo, at *handler.AttendanceHandler, cm *handler.CommentHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("OWNER", "ATTENDEE"))

	g.PUT("/shows/:id/attendance", at.SetAttendance)
	g.GET("/attendees/:name/schedule", at.GetMySchedule)

	g.POST("/shows/:id/comments", cm.AddComment)
	g.DELETE("/shows/:id/comments/:commentID", cm.DeleteComment)
}

// RegisterOwner registers lineup upload and planner export, owner-only.
func RegisterOwner(e *echo.Echo, ad *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("OWNER"))

	g.POST("/schedule", ad.UploadSchedule)
	g.GET("/export", ad.Export)
}
