// This file implements the store on MongoDB. Each entity lives in its own
// collection (courses, lecturers, sections, reviews) with an ObjectID `_id`;
// references between documents are ObjectIDs too. The model layer only sees
// the hex form of those ids.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/course-reviews/internal/model"
)

// Collection names shared with the seed tooling.
const (
	CoursesCollection   = "courses"
	LecturersCollection = "lecturers"
	SectionsCollection  = "sections"
	ReviewsCollection   = "reviews"
)

type courseDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CourseNumber string             `bson:"courseNumber"`
	Name         string             `bson:"name"`
}

type lecturerDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type sectionDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CourseID   primitive.ObjectID `bson:"courseId"`
	LecturerID primitive.ObjectID `bson:"lecturerId"`
}

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SectionID primitive.ObjectID `bson:"sectionId"`
	Body      string             `bson:"body"`
	Rating    int                `bson:"rating"`
}

// MongoStore reads and seeds the four collections of a single database.
type MongoStore struct {
	courses   *mongo.Collection
	lecturers *mongo.Collection
	sections  *mongo.Collection
	reviews   *mongo.Collection
}

// NewMongoStore binds a MongoStore to db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		courses:   db.Collection(CoursesCollection),
		lecturers: db.Collection(LecturersCollection),
		sections:  db.Collection(SectionsCollection),
		reviews:   db.Collection(ReviewsCollection),
	}
}

// byInsertion sorts by _id; ObjectIDs are time-ordered.
var byInsertion = bson.D{{Key: "_id", Value: 1}}

func (s *MongoStore) FindCourseByNumber(ctx context.Context, number string) (*model.Course, error) {
	var doc courseDoc
	opts := options.FindOne().SetSort(byInsertion)
	if err := s.courses.FindOne(ctx, bson.M{"courseNumber": number}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course %q: %w", number, err)
	}
	return &model.Course{ID: doc.ID.Hex(), CourseNumber: doc.CourseNumber, Name: doc.Name}, nil
}

func (s *MongoStore) ListSectionsByCourse(ctx context.Context, courseID string) ([]*model.Section, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		// an id that is not an ObjectID cannot be referenced by any section
		return []*model.Section{}, nil
	}
	cur, err := s.sections.Find(ctx, bson.M{"courseId": oid}, options.Find().SetSort(byInsertion))
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	var docs []sectionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	out := make([]*model.Section, 0, len(docs))
	for _, d := range docs {
		out = append(out, &model.Section{
			ID:         d.ID.Hex(),
			CourseID:   d.CourseID.Hex(),
			LecturerID: d.LecturerID.Hex(),
		})
	}
	return out, nil
}

func (s *MongoStore) GetLecturer(ctx context.Context, id string) (*model.Lecturer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrLecturerNotFound
	}
	var doc lecturerDoc
	if err := s.lecturers.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLecturerNotFound
		}
		return nil, fmt.Errorf("get lecturer %q: %w", id, err)
	}
	return &model.Lecturer{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

func (s *MongoStore) ListReviewsBySection(ctx context.Context, sectionID string) ([]*model.Review, error) {
	oid, err := primitive.ObjectIDFromHex(sectionID)
	if err != nil {
		return []*model.Review{}, nil
	}
	cur, err := s.reviews.Find(ctx, bson.M{"sectionId": oid}, options.Find().SetSort(byInsertion))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	out := make([]*model.Review, 0, len(docs))
	for _, d := range docs {
		out = append(out, &model.Review{
			ID:        d.ID.Hex(),
			SectionID: d.SectionID.Hex(),
			Body:      d.Body,
			Rating:    d.Rating,
		})
	}
	return out, nil
}

func (s *MongoStore) InsertCourse(ctx context.Context, c *model.Course) error {
	doc := courseDoc{ID: primitive.NewObjectID(), CourseNumber: c.CourseNumber, Name: c.Name}
	if _, err := s.courses.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) InsertLecturer(ctx context.Context, l *model.Lecturer) error {
	doc := lecturerDoc{ID: primitive.NewObjectID(), Name: l.Name}
	if _, err := s.lecturers.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert lecturer: %w", err)
	}
	l.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) InsertSection(ctx context.Context, sec *model.Section) error {
	courseID, err := primitive.ObjectIDFromHex(sec.CourseID)
	if err != nil {
		return fmt.Errorf("insert section: course id: %w", err)
	}
	lecturerID, err := primitive.ObjectIDFromHex(sec.LecturerID)
	if err != nil {
		return fmt.Errorf("insert section: lecturer id: %w", err)
	}
	doc := sectionDoc{ID: primitive.NewObjectID(), CourseID: courseID, LecturerID: lecturerID}
	if _, err := s.sections.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert section: %w", err)
	}
	sec.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) InsertReview(ctx context.Context, r *model.Review) error {
	if err := validateRating(r.Rating); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	sectionID, err := primitive.ObjectIDFromHex(r.SectionID)
	if err != nil {
		return fmt.Errorf("insert review: section id: %w", err)
	}
	doc := reviewDoc{ID: primitive.NewObjectID(), SectionID: sectionID, Body: r.Body, Rating: r.Rating}
	if _, err := s.reviews.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	r.ID = doc.ID.Hex()
	return nil
}
