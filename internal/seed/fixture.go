// Package seed loads sample course review data into a store. Fixtures are
// YAML documents nesting sections and reviews under their course, which is
// how the sample data is easiest to write by hand.
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is the root of a seed file.
type Fixture struct {
	Courses []CourseFixture `yaml:"courses"`
}

type CourseFixture struct {
	CourseNumber string           `yaml:"courseNumber"`
	Name         string           `yaml:"name"`
	Sections     []SectionFixture `yaml:"sections"`
}

// SectionFixture names its lecturer; lecturers are shared across courses by
// name.
type SectionFixture struct {
	Lecturer string          `yaml:"lecturer"`
	Reviews  []ReviewFixture `yaml:"reviews"`
}

type ReviewFixture struct {
	Body   string `yaml:"body"`
	Rating int    `yaml:"rating"`
}

// ParseFixture decodes a fixture and rejects unknown fields.
func ParseFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		if err == io.EOF {
			return &fx, nil
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, c := range fx.Courses {
		if c.CourseNumber == "" {
			return nil, fmt.Errorf("parse fixture: course #%d has no courseNumber", i+1)
		}
		for j, s := range c.Sections {
			if s.Lecturer == "" {
				return nil, fmt.Errorf("parse fixture: %s section #%d has no lecturer", c.CourseNumber, j+1)
			}
		}
	}
	return &fx, nil
}

// LoadFixture reads and parses the fixture file at path.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFixture(f)
}
