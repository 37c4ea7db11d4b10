// This file implements the store on top of database/sql. The same queries
// run against MySQL and SQLite; both drivers accept `?` placeholders. Ids are
// UUID strings generated here, and the auto-increment `seq` column preserves
// insertion order for list queries.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iliyamo/course-reviews/internal/model"
)

// SQLStore encapsulates all queries over the courses, lecturers, sections and
// reviews tables. It depends on a sql.DB pool configured elsewhere.
type SQLStore struct {
	db *sql.DB // db is the underlying connection pool
}

// NewSQLStore constructs a SQLStore with the provided DB handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// FindCourseByNumber returns the earliest inserted course with the given
// number. ErrCourseNotFound is returned when no row matches.
func (r *SQLStore) FindCourseByNumber(ctx context.Context, number string) (*model.Course, error) {
	const q = `SELECT id, course_number, name FROM courses
	           WHERE course_number = ? ORDER BY seq LIMIT 1`
	var c model.Course
	if err := r.db.QueryRowContext(ctx, q, number).Scan(&c.ID, &c.CourseNumber, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course %q: %w", number, err)
	}
	return &c, nil
}

// ListSectionsByCourse returns the sections of a course ordered by insertion.
func (r *SQLStore) ListSectionsByCourse(ctx context.Context, courseID string) ([]*model.Section, error) {
	const q = `SELECT id, course_id, lecturer_id FROM sections
	           WHERE course_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, courseID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Section, 0)
	for rows.Next() {
		s := new(model.Section)
		if err := rows.Scan(&s.ID, &s.CourseID, &s.LecturerID); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return out, nil
}

// GetLecturer fetches a lecturer by id. It returns ErrLecturerNotFound if
// no row is found.
func (r *SQLStore) GetLecturer(ctx context.Context, id string) (*model.Lecturer, error) {
	const q = "SELECT id, name FROM lecturers WHERE id = ?"
	var l model.Lecturer
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&l.ID, &l.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLecturerNotFound
		}
		return nil, fmt.Errorf("get lecturer %q: %w", id, err)
	}
	return &l, nil
}

// ListReviewsBySection returns the reviews of a section ordered by insertion.
func (r *SQLStore) ListReviewsBySection(ctx context.Context, sectionID string) ([]*model.Review, error) {
	const q = `SELECT id, section_id, body, rating FROM reviews
	           WHERE section_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Review, 0)
	for rows.Next() {
		rv := new(model.Review)
		if err := rows.Scan(&rv.ID, &rv.SectionID, &rv.Body, &rv.Rating); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

// InsertCourse inserts a course and populates its ID.
func (r *SQLStore) InsertCourse(ctx context.Context, c *model.Course) error {
	id := uuid.NewString()
	const q = "INSERT INTO courses (id, course_number, name) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, c.CourseNumber, c.Name); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	c.ID = id
	return nil
}

// InsertLecturer inserts a lecturer and populates its ID.
func (r *SQLStore) InsertLecturer(ctx context.Context, l *model.Lecturer) error {
	id := uuid.NewString()
	const q = "INSERT INTO lecturers (id, name) VALUES (?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, l.Name); err != nil {
		return fmt.Errorf("insert lecturer: %w", err)
	}
	l.ID = id
	return nil
}

// InsertSection inserts a section and populates its ID. References are not
// checked; the schema carries no foreign keys.
func (r *SQLStore) InsertSection(ctx context.Context, s *model.Section) error {
	id := uuid.NewString()
	const q = "INSERT INTO sections (id, course_id, lecturer_id) VALUES (?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, s.CourseID, s.LecturerID); err != nil {
		return fmt.Errorf("insert section: %w", err)
	}
	s.ID = id
	return nil
}

// InsertReview validates the rating, inserts the review and populates its ID.
func (r *SQLStore) InsertReview(ctx context.Context, rv *model.Review) error {
	if err := validateRating(rv.Rating); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	id := uuid.NewString()
	const q = "INSERT INTO reviews (id, section_id, body, rating) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, rv.SectionID, rv.Body, rv.Rating); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	rv.ID = id
	return nil
}
