package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-reviews/internal/logger"
	"github.com/iliyamo/course-reviews/internal/model"
	"github.com/iliyamo/course-reviews/internal/repository"
	"github.com/iliyamo/course-reviews/internal/service"
)

func seededStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := repository.NewMemoryStore()
	course := &model.Course{CourseNumber: "KIEI-451", Name: "Intro to Software Development"}
	must(t, s.InsertCourse(ctx, course))
	for _, sec := range []struct {
		name    string
		ratings []int
	}{
		{"Brian Eng", []int{3, 5}},
		{"Ben Block", nil},
	} {
		l := &model.Lecturer{Name: sec.name}
		must(t, s.InsertLecturer(ctx, l))
		ms := &model.Section{CourseID: course.ID, LecturerID: l.ID}
		must(t, s.InsertSection(ctx, ms))
		for _, r := range sec.ratings {
			must(t, s.InsertReview(ctx, &model.Review{SectionID: ms.ID, Body: "good", Rating: r}))
		}
	}
	return s
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func serve(h *CourseHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/courses", h.GetCourse)
	e.GET("/v1/courses/:courseNumber", h.GetCourse)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetCourseOK(t *testing.T) {
	h := NewCourseHandler(service.NewAggregator(seededStore(t), nil), logger.Nop())

	rec := serve(h, "/courses?courseNumber=KIEI-451")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var body struct {
		CourseNumber string `json:"courseNumber"`
		Name         string `json:"name"`
		Sections     []struct {
			LecturerName     string `json:"lecturerName"`
			SectionReviews   []map[string]any
			SectionReviewSum []struct {
				NumberOfSectionReviews     int      `json:"numberOfSectionReviews"`
				AverageSectionReviewRating *float64 `json:"averageSectionReviewRating"`
			} `json:"sectionReviewSum"`
		} `json:"sections"`
		CourseSummaries []struct {
			NumberOfCourseReviews     int      `json:"numberOfCourseReviews"`
			AverageCourseReviewRating *float64 `json:"averageCourseReviewRating"`
		} `json:"courseSummaries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CourseNumber != "KIEI-451" || body.Name != "Intro to Software Development" {
		t.Fatalf("course: got=%q/%q", body.CourseNumber, body.Name)
	}
	if len(body.Sections) != 2 {
		t.Fatalf("sections: want=2 got=%d", len(body.Sections))
	}
	if body.Sections[0].LecturerName != "Brian Eng" || body.Sections[1].LecturerName != "Ben Block" {
		t.Fatalf("lecturers: got=%q,%q", body.Sections[0].LecturerName, body.Sections[1].LecturerName)
	}
	first := body.Sections[0].SectionReviewSum[0]
	if first.NumberOfSectionReviews != 2 || first.AverageSectionReviewRating == nil || *first.AverageSectionReviewRating != 4 {
		t.Fatalf("first section summary: got=%+v", first)
	}
	if body.Sections[1].SectionReviewSum[0].AverageSectionReviewRating != nil {
		t.Fatalf("empty section average should be null")
	}
	cs := body.CourseSummaries[0]
	if cs.NumberOfCourseReviews != 2 || cs.AverageCourseReviewRating == nil || *cs.AverageCourseReviewRating != 4 {
		t.Fatalf("course summary: got=%+v", cs)
	}
}

func TestGetCoursePathParam(t *testing.T) {
	h := NewCourseHandler(service.NewAggregator(seededStore(t), nil), logger.Nop())
	if rec := serve(h, "/v1/courses/KIEI-451"); rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d", http.StatusOK, rec.Code)
	}
}

func TestGetCourseErrors(t *testing.T) {
	h := NewCourseHandler(service.NewAggregator(seededStore(t), nil), logger.Nop())
	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"missing key", "/courses", http.StatusBadRequest},
		{"blank key", "/courses?courseNumber=%20%20", http.StatusBadRequest},
		{"unknown course", "/courses?courseNumber=KIEI-000", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(h, tc.target)
			if rec.Code != tc.want {
				t.Fatalf("status: want=%d got=%d", tc.want, rec.Code)
			}
		})
	}
}

type failingAggregator struct{ err error }

func (f failingAggregator) Aggregate(ctx context.Context, courseNumber string) (*service.CourseReport, error) {
	return nil, f.err
}

func TestGetCourseInternalError(t *testing.T) {
	h := NewCourseHandler(failingAggregator{err: errors.New("connection reset")}, logger.Nop())
	rec := serve(h, "/courses?courseNumber=KIEI-451")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: want=%d got=%d", http.StatusInternalServerError, rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "internal error" {
		t.Fatalf("error body should not leak details: got=%v", body)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health: code=%d body=%q", rec.Code, rec.Body.String())
	}
}
