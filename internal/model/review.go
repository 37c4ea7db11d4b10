package model

// Rating bounds.  Reviews outside [MinRating, MaxRating] are rejected by
// the store writers.
const (
    MinRating = 1
    MaxRating = 5
)

// Review is an anonymous review of a section.  There is no user reference.
type Review struct {
    ID        string `json:"id"`        // reviews._id
    SectionID string `json:"sectionId"` // reviews.sectionId
    Body      string `json:"body"`      // free text
    Rating    int    `json:"rating"`    // 1..5
}
