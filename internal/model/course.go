package model

// Course is a catalogue entry such as KIEI-451.  A course may be taught by
// several lecturers; each pairing is a Section.  This struct corresponds to a
// document in the `courses` collection (or a row in the `courses` table).
//
// Fields:
//  ID           – opaque identifier assigned by the store.
//  CourseNumber – catalogue number, assumed unique (e.g. "KIEI-451").
//  Name         – human readable title.
type Course struct {
    ID           string `json:"id"`           // courses._id
    CourseNumber string `json:"courseNumber"` // courses.courseNumber
    Name         string `json:"name"`         // courses.name
}
