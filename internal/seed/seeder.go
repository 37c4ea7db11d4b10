package seed

import (
	"context"
	"fmt"

	"github.com/iliyamo/course-reviews/internal/logger"
	"github.com/iliyamo/course-reviews/internal/model"
	"github.com/iliyamo/course-reviews/internal/queue"
	"github.com/iliyamo/course-reviews/internal/repository"
)

// Announcer publishes review events. *queue.Publisher satisfies it.
type Announcer interface {
	PublishReviewPosted(ctx context.Context, ev queue.ReviewPostedEvent) error
}

// Result counts what a seeding run inserted.
type Result struct {
	Courses   int
	Lecturers int
	Sections  int
	Reviews   int
	Announced int
}

// Seeder writes fixtures through a CourseWriter.
type Seeder struct {
	Writer    repository.CourseWriter
	Announcer Announcer // optional
	Log       *logger.Logger
}

// Run inserts every course, lecturer, section and review of fx in order.
// Lecturers are inserted once per distinct name. When an Announcer is set,
// every inserted review is announced; a failed announcement is logged and
// does not stop the run. The first write error aborts the run; rows written
// before it stay in place.
func (s *Seeder) Run(ctx context.Context, fx *Fixture) (Result, error) {
	log := s.Log
	if log == nil {
		log = logger.Nop()
	}
	var res Result
	lecturers := map[string]string{} // name -> id

	for _, cf := range fx.Courses {
		course := &model.Course{CourseNumber: cf.CourseNumber, Name: cf.Name}
		if err := s.Writer.InsertCourse(ctx, course); err != nil {
			return res, fmt.Errorf("course %s: %w", cf.CourseNumber, err)
		}
		res.Courses++

		for _, sf := range cf.Sections {
			lecturerID, ok := lecturers[sf.Lecturer]
			if !ok {
				l := &model.Lecturer{Name: sf.Lecturer}
				if err := s.Writer.InsertLecturer(ctx, l); err != nil {
					return res, fmt.Errorf("lecturer %q: %w", sf.Lecturer, err)
				}
				lecturerID = l.ID
				lecturers[sf.Lecturer] = l.ID
				res.Lecturers++
			}

			sec := &model.Section{CourseID: course.ID, LecturerID: lecturerID}
			if err := s.Writer.InsertSection(ctx, sec); err != nil {
				return res, fmt.Errorf("section %s/%s: %w", cf.CourseNumber, sf.Lecturer, err)
			}
			res.Sections++

			for _, rf := range sf.Reviews {
				rv := &model.Review{SectionID: sec.ID, Body: rf.Body, Rating: rf.Rating}
				if err := s.Writer.InsertReview(ctx, rv); err != nil {
					return res, fmt.Errorf("review of %s/%s: %w", cf.CourseNumber, sf.Lecturer, err)
				}
				res.Reviews++

				if s.Announcer == nil {
					continue
				}
				ev := queue.ReviewPostedEvent{
					CourseNumber: cf.CourseNumber,
					SectionID:    sec.ID,
					ReviewID:     rv.ID,
					Rating:       rv.Rating,
				}
				if err := s.Announcer.PublishReviewPosted(ctx, ev); err != nil {
					log.Warn("review announcement failed", "course_number", cf.CourseNumber, "review_id", rv.ID, "error", err)
					continue
				}
				res.Announced++
			}
		}
	}
	log.Info("seed complete",
		"courses", res.Courses, "lecturers", res.Lecturers,
		"sections", res.Sections, "reviews", res.Reviews, "announced", res.Announced)
	return res, nil
}
