// Package courselist implements the caller-side operations on a course list:
// id assignment, edits, and removal that never leaves the list empty.
package courselist

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/unigrade/internal/model"
)

var (
	// ErrLastCourse is returned when removing the only remaining course.
	ErrLastCourse = errors.New("cannot remove the last course")
	// ErrNotFound is returned for an unknown course id.
	ErrNotFound = errors.New("course not found")
	// ErrAmbiguous is returned when an id prefix matches several courses.
	ErrAmbiguous = errors.New("course id prefix is ambiguous")
)

// New returns a blank course with a fresh id.
func New(system model.GradingSystem, credits string) model.Course {
	return model.Course{
		ID:      uuid.NewString(),
		System:  system,
		Credits: credits,
	}
}

// Ensure returns courses unchanged when non-empty, otherwise a single blank course.
func Ensure(courses []model.Course, system model.GradingSystem, credits string) []model.Course {
	if len(courses) > 0 {
		return courses
	}
	return []model.Course{New(system, credits)}
}

// Add appends a course, assigning an id when it has none.
func Add(courses []model.Course, c model.Course) []model.Course {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	out := make([]model.Course, 0, len(courses)+1)
	out = append(out, courses...)
	return append(out, c)
}

// Update applies fn to the course with the given id.
func Update(courses []model.Course, id string, fn func(*model.Course)) ([]model.Course, bool) {
	idx := indexOf(courses, id)
	if idx < 0 {
		return courses, false
	}
	out := append([]model.Course(nil), courses...)
	fn(&out[idx])
	out[idx].ID = id
	return out, true
}

// Remove deletes the course with the given id.
func Remove(courses []model.Course, id string) ([]model.Course, error) {
	idx := indexOf(courses, id)
	if idx < 0 {
		return courses, ErrNotFound
	}
	if len(courses) == 1 {
		return courses, ErrLastCourse
	}
	out := make([]model.Course, 0, len(courses)-1)
	out = append(out, courses[:idx]...)
	return append(out, courses[idx+1:]...), nil
}

// Find resolves a full id or a unique id prefix.
func Find(courses []model.Course, prefix string) (model.Course, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return model.Course{}, ErrNotFound
	}
	for _, c := range courses {
		if strings.ToLower(c.ID) == prefix {
			return c, nil
		}
	}
	var found *model.Course
	for i := range courses {
		if strings.HasPrefix(strings.ToLower(courses[i].ID), prefix) {
			if found != nil {
				return model.Course{}, ErrAmbiguous
			}
			found = &courses[i]
		}
	}
	if found == nil {
		return model.Course{}, ErrNotFound
	}
	return *found, nil
}

func indexOf(courses []model.Course, id string) int {
	for i, c := range courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}
