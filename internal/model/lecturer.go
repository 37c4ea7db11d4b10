package model

// Lecturer is a person who teaches one or more courses.
type Lecturer struct {
    ID   string `json:"id"`   // lecturers._id
    Name string `json:"name"` // lecturers.name
}
