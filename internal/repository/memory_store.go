package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/course-reviews/internal/model"
)

// MemoryStore keeps all four collections in process memory. It backs the
// tests and the "memory" store driver used for local development with a
// seed file. Returned values are copies, so callers may modify them freely.
type MemoryStore struct {
	mu        sync.RWMutex
	courses   []model.Course
	lecturers []model.Lecturer
	sections  []model.Section
	reviews   []model.Review
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) FindCourseByNumber(ctx context.Context, number string) (*model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.CourseNumber == number {
			out := c
			return &out, nil
		}
	}
	return nil, ErrCourseNotFound
}

func (s *MemoryStore) ListSectionsByCourse(ctx context.Context, courseID string) ([]*model.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Section, 0)
	for _, sec := range s.sections {
		if sec.CourseID == courseID {
			cp := sec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetLecturer(ctx context.Context, id string) (*model.Lecturer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lecturers {
		if l.ID == id {
			out := l
			return &out, nil
		}
	}
	return nil, ErrLecturerNotFound
}

func (s *MemoryStore) ListReviewsBySection(ctx context.Context, sectionID string) ([]*model.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Review, 0)
	for _, r := range s.reviews {
		if r.SectionID == sectionID {
			cp := r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryStore) InsertCourse(ctx context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.courses = append(s.courses, *c)
	return nil
}

func (s *MemoryStore) InsertLecturer(ctx context.Context, l *model.Lecturer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = uuid.NewString()
	s.lecturers = append(s.lecturers, *l)
	return nil
}

// InsertSection does not check that the referenced course and lecturer
// exist; dangling references are how the missing-lecturer path is tested.
func (s *MemoryStore) InsertSection(ctx context.Context, sec *model.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec.ID = uuid.NewString()
	s.sections = append(s.sections, *sec)
	return nil
}

func (s *MemoryStore) InsertReview(ctx context.Context, r *model.Review) error {
	if err := validateRating(r.Rating); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	s.reviews = append(s.reviews, *r)
	return nil
}
