// Package service holds the course aggregation: it walks a course's sections,
// lecturers and reviews in a store and folds them into one response tree with
// review-count and average-rating rollups per section and per course.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/course-reviews/internal/logger"
	"github.com/iliyamo/course-reviews/internal/repository"
)

// CourseReport is the aggregated view of one course.
type CourseReport struct {
	CourseNumber    string          `json:"courseNumber"`
	Name            string          `json:"name"`
	Sections        []SectionReport `json:"sections"`
	CourseSummaries []CourseSummary `json:"courseSummaries"`
}

// SectionReport describes one lecturer's offering of the course.
// SectionReviewSum always holds exactly one element.
type SectionReport struct {
	LecturerName     string           `json:"lecturerName"`
	SectionReviews   []ReviewItem     `json:"sectionReviews"`
	SectionReviewSum []SectionSummary `json:"sectionReviewSum"`
}

type ReviewItem struct {
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

// SectionSummary is the rollup of one section. The average is nil when the
// section has no reviews.
type SectionSummary struct {
	NumberOfSectionReviews     int      `json:"numberOfSectionReviews"`
	AverageSectionReviewRating *float64 `json:"averageSectionReviewRating"`
}

// CourseSummary is the rollup over every section of the course.
type CourseSummary struct {
	NumberOfCourseReviews     int      `json:"numberOfCourseReviews"`
	AverageCourseReviewRating *float64 `json:"averageCourseReviewRating"`
}

// Aggregator builds CourseReports from a CourseStore.
type Aggregator struct {
	store repository.CourseStore
	log   *logger.Logger
}

// NewAggregator returns an Aggregator reading from store. A nil log
// discards diagnostics.
func NewAggregator(store repository.CourseStore, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{store: store, log: log}
}

// Aggregate fetches the course identified by courseNumber and everything
// hanging off it, then computes the rollups. Reads are issued one after
// another: for each section the lecturer is fetched before its reviews.
//
// The returned error wraps repository.ErrCourseNotFound when no course
// matches and repository.ErrLecturerNotFound when a section points at a
// lecturer that does not exist.
func (a *Aggregator) Aggregate(ctx context.Context, courseNumber string) (*CourseReport, error) {
	course, err := a.store.FindCourseByNumber(ctx, courseNumber)
	if err != nil {
		return nil, fmt.Errorf("course %q: %w", courseNumber, err)
	}
	a.log.Debug("course resolved", "course_number", courseNumber, "course_id", course.ID)

	sections, err := a.store.ListSectionsByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("sections of %q: %w", courseNumber, err)
	}

	report := &CourseReport{
		CourseNumber: course.CourseNumber,
		Name:         course.Name,
		Sections:     make([]SectionReport, 0, len(sections)),
	}

	var courseTally tally
	for _, sec := range sections {
		lecturer, err := a.store.GetLecturer(ctx, sec.LecturerID)
		if err != nil {
			if errors.Is(err, repository.ErrLecturerNotFound) {
				a.log.Warn("section references missing lecturer",
					"course_number", courseNumber, "section_id", sec.ID, "lecturer_id", sec.LecturerID)
			}
			return nil, fmt.Errorf("lecturer of section %s: %w", sec.ID, err)
		}

		reviews, err := a.store.ListReviewsBySection(ctx, sec.ID)
		if err != nil {
			return nil, fmt.Errorf("reviews of section %s: %w", sec.ID, err)
		}

		var sectionTally tally
		items := make([]ReviewItem, 0, len(reviews))
		for _, r := range reviews {
			items = append(items, ReviewItem{Body: r.Body, Rating: r.Rating})
			sectionTally.add(r.Rating)
		}
		courseTally.merge(sectionTally)

		report.Sections = append(report.Sections, SectionReport{
			LecturerName:   lecturer.Name,
			SectionReviews: items,
			SectionReviewSum: []SectionSummary{{
				NumberOfSectionReviews:     sectionTally.count,
				AverageSectionReviewRating: sectionTally.average(),
			}},
		})
	}

	report.CourseSummaries = []CourseSummary{{
		NumberOfCourseReviews:     courseTally.count,
		AverageCourseReviewRating: courseTally.average(),
	}}
	return report, nil
}
