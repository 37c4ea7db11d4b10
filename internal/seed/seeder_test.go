package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iliyamo/course-reviews/internal/queue"
	"github.com/iliyamo/course-reviews/internal/repository"
	"github.com/iliyamo/course-reviews/internal/service"
)

type recordingAnnouncer struct {
	events []queue.ReviewPostedEvent
	failOn int // 1-based index of the call that fails; 0 never fails
}

func (r *recordingAnnouncer) PublishReviewPosted(ctx context.Context, ev queue.ReviewPostedEvent) error {
	r.events = append(r.events, ev)
	if r.failOn == len(r.events) {
		return errors.New("broker down")
	}
	return nil
}

func TestLoadFixture(t *testing.T) {
	fx, err := LoadFixture("testdata/courses.yaml")
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(fx.Courses) != 2 {
		t.Fatalf("courses: want=2 got=%d", len(fx.Courses))
	}
	if got := fx.Courses[0].Sections[0].Reviews[1].Rating; got != 4 {
		t.Fatalf("rating: want=4 got=%d", got)
	}
}

func TestParseFixtureRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown field":    "courses:\n  - courseNumber: A\n    title: x\n",
		"missing number":   "courses:\n  - name: x\n",
		"missing lecturer": "courses:\n  - courseNumber: A\n    sections:\n      - reviews: []\n",
	}
	for name, doc := range cases {
		if _, err := ParseFixture(strings.NewReader(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	fx, err := ParseFixture(strings.NewReader(""))
	if err != nil || len(fx.Courses) != 0 {
		t.Fatalf("empty document: fx=%+v err=%v", fx, err)
	}
}

func TestSeederRun(t *testing.T) {
	fx, err := LoadFixture("testdata/courses.yaml")
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	store := repository.NewMemoryStore()
	ann := &recordingAnnouncer{failOn: 2}
	res, err := (&Seeder{Writer: store, Announcer: ann}).Run(context.Background(), fx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := Result{Courses: 2, Lecturers: 2, Sections: 3, Reviews: 3, Announced: 2}
	if res != want {
		t.Fatalf("result: want=%+v got=%+v", want, res)
	}
	if len(ann.events) != 3 || ann.events[0].CourseNumber != "KIEI-451" || ann.events[0].ReviewID == "" {
		t.Fatalf("events: got=%+v", ann.events)
	}

	report, err := service.NewAggregator(store, nil).Aggregate(context.Background(), "KIEI-925")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(report.Sections) != 1 || report.Sections[0].LecturerName != "Brian Eng" {
		t.Fatalf("KIEI-925 should reuse Brian Eng: got=%+v", report.Sections)
	}
}

func TestSeederStopsOnInvalidRating(t *testing.T) {
	fx := &Fixture{Courses: []CourseFixture{{
		CourseNumber: "KIEI-451",
		Sections: []SectionFixture{{
			Lecturer: "Brian Eng",
			Reviews:  []ReviewFixture{{Body: "ok", Rating: 4}, {Body: "bad", Rating: 9}},
		}},
	}}}
	res, err := (&Seeder{Writer: repository.NewMemoryStore()}).Run(context.Background(), fx)
	if !errors.Is(err, repository.ErrInvalidRating) {
		t.Fatalf("want ErrInvalidRating got=%v", err)
	}
	if res.Reviews != 1 {
		t.Fatalf("reviews before failure: want=1 got=%d", res.Reviews)
	}
}
