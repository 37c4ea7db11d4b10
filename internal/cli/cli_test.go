package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iliyamo/course-reviews/internal/config"
	"github.com/iliyamo/course-reviews/internal/logger"
	"github.com/iliyamo/course-reviews/internal/service"
)

func TestOpenStoreMemoryWithSeedFile(t *testing.T) {
	cfg := config.Config{StoreDriver: config.DriverMemory, SeedFile: "../seed/testdata/courses.yaml"}
	store, closeStore, err := openStore(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer closeStore()

	r, err := service.NewAggregator(store, nil).Aggregate(context.Background(), "KIEI-451")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(r.Sections) != 2 {
		t.Fatalf("sections: want=2 got=%d", len(r.Sections))
	}
}

func TestOpenStoreSQLiteCreatesTables(t *testing.T) {
	cfg := config.Config{StoreDriver: config.DriverSQLite, SQLitePath: t.TempDir() + "/reviews.db"}
	store, closeStore, err := openStore(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer closeStore()
	if _, err := store.ListSectionsByCourse(context.Background(), "x"); err != nil {
		t.Fatalf("tables should exist: %v", err)
	}
}

func TestWriteReportFormats(t *testing.T) {
	avg := 4.0
	r := &service.CourseReport{
		CourseNumber:    "KIEI-451",
		Name:            "Intro",
		Sections:        []service.SectionReport{},
		CourseSummaries: []service.CourseSummary{{NumberOfCourseReviews: 2, AverageCourseReviewRating: &avg}},
	}

	var js bytes.Buffer
	if err := writeReport(&js, r, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"averageCourseReviewRating": 4`) {
		t.Fatalf("json output: %s", js.String())
	}

	var csv bytes.Buffer
	if err := writeReport(&csv, r, "csv"); err != nil {
		t.Fatalf("csv: %v", err)
	}
	if !strings.Contains(csv.String(), "KIEI-451,Intro,ALL,2,4.00") {
		t.Fatalf("csv output: %s", csv.String())
	}
}
