// Package report renders course reports for offline use.
package report

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/iliyamo/course-reviews/internal/service"
)

// SectionRow is one CSV line: a section of the course and its rollup.
// The final row (LecturerName "ALL") carries the course-wide rollup.
type SectionRow struct {
	CourseNumber  string `csv:"courseNumber"`
	CourseName    string `csv:"courseName"`
	LecturerName  string `csv:"lecturerName"`
	ReviewCount   int    `csv:"numberOfReviews"`
	AverageRating string `csv:"averageRating"`
}

// CourseTotalLabel marks the course-wide row.
const CourseTotalLabel = "ALL"

// Rows flattens a report into CSV rows.
func Rows(r *service.CourseReport) []*SectionRow {
	rows := make([]*SectionRow, 0, len(r.Sections)+1)
	for _, sec := range r.Sections {
		row := &SectionRow{CourseNumber: r.CourseNumber, CourseName: r.Name, LecturerName: sec.LecturerName}
		if len(sec.SectionReviewSum) > 0 {
			row.ReviewCount = sec.SectionReviewSum[0].NumberOfSectionReviews
			row.AverageRating = formatAverage(sec.SectionReviewSum[0].AverageSectionReviewRating)
		}
		rows = append(rows, row)
	}
	total := &SectionRow{CourseNumber: r.CourseNumber, CourseName: r.Name, LecturerName: CourseTotalLabel}
	if len(r.CourseSummaries) > 0 {
		total.ReviewCount = r.CourseSummaries[0].NumberOfCourseReviews
		total.AverageRating = formatAverage(r.CourseSummaries[0].AverageCourseReviewRating)
	}
	return append(rows, total)
}

// WriteSectionsCSV writes the report as CSV with a header line.
func WriteSectionsCSV(w io.Writer, r *service.CourseReport) error {
	return gocsv.Marshal(Rows(r), w)
}

// a section without reviews has no average; leave the cell blank
func formatAverage(avg *float64) string {
	if avg == nil {
		return ""
	}
	return strconv.FormatFloat(*avg, 'f', 2, 64)
}
