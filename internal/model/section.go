package model

// Section is one lecturer teaching one course.  The course <-> lecturer
// many-to-many relation is realised through section documents, and reviews
// are written against a section rather than a course or a lecturer.
//
// Fields:
//  ID         – opaque identifier assigned by the store.
//  CourseID   – references courses._id.
//  LecturerID – references lecturers._id.
type Section struct {
    ID         string `json:"id"`         // sections._id
    CourseID   string `json:"courseId"`   // sections.courseId
    LecturerID string `json:"lecturerId"` // sections.lecturerId
}
