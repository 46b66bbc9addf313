package postgres

import (
	"database/sql"

	"edusync/internal/model"
	"edusync/internal/repository"
)

// NewCourses creates the courses repository. Course listings support the
// instructor filter, bound to the instructor_id column.
func NewCourses(db *sql.DB) repository.Crud[model.Course] {
	return newCrudTable[model.Course](
		db,
		"courses",
		[]string{"course_id", "title", "description", "instructor_id", "media_url"},
		"instructor_id",
		func(s scanner) (*model.Course, error) {
			var c model.Course
			if err := s.Scan(&c.CourseID, &c.Title, &c.Description, &c.InstructorID, &c.MediaURL); err != nil {
				return nil, err
			}
			return &c, nil
		},
		func(c *model.Course) []any {
			return []any{c.CourseID, c.Title, c.Description, c.InstructorID, c.MediaURL}
		},
	)
}
