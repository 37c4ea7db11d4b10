// Package handler exposes HTTP handlers for the public course review API.
// This file defines the course lookup: given a course number it returns the
// course, its sections with lecturer names and reviews, and the review
// rollups per section and per course.
package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/course-reviews/internal/logger"
    "github.com/iliyamo/course-reviews/internal/repository"
    "github.com/iliyamo/course-reviews/internal/service"
)

// CourseAggregator is what the handler needs from the service layer.
type CourseAggregator interface {
    Aggregate(ctx context.Context, courseNumber string) (*service.CourseReport, error)
}

// CourseHandler serves course reports.
type CourseHandler struct {
    Agg     CourseAggregator
    Log     *logger.Logger
    Timeout time.Duration // upper bound for one aggregation; 0 means none
}

// NewCourseHandler wires a CourseHandler.
func NewCourseHandler(agg CourseAggregator, log *logger.Logger) *CourseHandler {
    return &CourseHandler{Agg: agg, Log: log, Timeout: 10 * time.Second}
}

// GetCourse handles GET /courses?courseNumber=KIEI-451 and
// GET /v1/courses/:courseNumber.  The query parameter wins when both are set.
//
//   400 – courseNumber missing or blank
//   404 – no course with that number
//   500 – store failure or a section pointing at a missing lecturer
func (h *CourseHandler) GetCourse(c echo.Context) error {
    number := strings.TrimSpace(c.QueryParam("courseNumber"))
    if number == "" {
        number = strings.TrimSpace(c.Param("courseNumber"))
    }
    if number == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "courseNumber is required"})
    }

    ctx := c.Request().Context()
    if h.Timeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, h.Timeout)
        defer cancel()
    }

    report, err := h.Agg.Aggregate(ctx, number)
    if err != nil {
        if errors.Is(err, repository.ErrCourseNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
        }
        h.Log.Error("course aggregation failed", "course_number", number, "error", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    return c.JSON(http.StatusOK, report)
}
