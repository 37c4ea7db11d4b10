// Package queue defines message payloads exchanged over the message broker.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "time"
)

// DefaultReviewQueue is the durable queue carrying ReviewPostedEvent messages.
const DefaultReviewQueue = "review.posted"

// ReviewPostedEvent is published whenever a review is written for a section.
// Consumers use it to drop cached course responses; it carries enough
// context to log or route without a database lookup.
type ReviewPostedEvent struct {
    CourseNumber string    `json:"courseNumber"`
    SectionID    string    `json:"sectionId"`
    ReviewID     string    `json:"reviewId"`
    Rating       int       `json:"rating"`
    PostedAt     time.Time `json:"postedAt"`
}

var errMissingCourseNumber = errors.New("courseNumber is required")

// decodeReviewPosted parses and sanity-checks a message body.
func decodeReviewPosted(body []byte) (ReviewPostedEvent, error) {
    var ev ReviewPostedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return ev, fmt.Errorf("unmarshal: %w", err)
    }
    if ev.CourseNumber == "" {
        return ev, errMissingCourseNumber
    }
    return ev, nil
}
