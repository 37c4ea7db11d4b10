package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/course-reviews/internal/model"
)

// CourseStore is the read side of the course review data: the four lookups
// the aggregator needs. Implementations must return list results in
// insertion order and never return nil slices alongside a nil error.
type CourseStore interface {
	// FindCourseByNumber returns the first course whose courseNumber equals
	// number, or ErrCourseNotFound.
	FindCourseByNumber(ctx context.Context, number string) (*model.Course, error)
	// ListSectionsByCourse returns every section of the course.
	ListSectionsByCourse(ctx context.Context, courseID string) ([]*model.Section, error)
	// GetLecturer returns the lecturer with the given id, or ErrLecturerNotFound.
	GetLecturer(ctx context.Context, id string) (*model.Lecturer, error)
	// ListReviewsBySection returns every review of the section.
	ListReviewsBySection(ctx context.Context, sectionID string) ([]*model.Review, error)
}

// CourseWriter inserts seed data. Each Insert assigns the entity's ID.
// It is used by the seed command only; the HTTP service never writes.
type CourseWriter interface {
	InsertCourse(ctx context.Context, c *model.Course) error
	InsertLecturer(ctx context.Context, l *model.Lecturer) error
	InsertSection(ctx context.Context, s *model.Section) error
	InsertReview(ctx context.Context, r *model.Review) error
}

// Store combines both sides. Every backend in this package implements it.
type Store interface {
	CourseStore
	CourseWriter
}

// validateRating enforces the rating range shared by all writers.
func validateRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	return nil
}
