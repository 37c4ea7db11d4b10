package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-reviews/internal/handler"
)

// RegisterRoutes registers the health check. It is kept outside any cache or
// rate limit so probes always reach the process.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCourses registers the course lookup under its three paths. The
// optional middleware (rate limit, response cache) applies to these routes
// only.
//
//	GET /courses?courseNumber=KIEI-451
//	GET /.netlify/functions/courses?courseNumber=KIEI-451  (path of the original deployment)
//	GET /v1/courses/:courseNumber
func RegisterCourses(e *echo.Echo, h *handler.CourseHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/courses", h.GetCourse, mw...)
	e.GET("/.netlify/functions/courses", h.GetCourse, mw...)
	e.GET("/v1/courses/:courseNumber", h.GetCourse, mw...)
}
