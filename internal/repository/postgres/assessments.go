package postgres

import (
	"database/sql"

	"edusync/internal/model"
	"edusync/internal/repository"
)

// NewAssessments creates the assessments repository.
func NewAssessments(db *sql.DB) repository.Crud[model.Assessment] {
	return newCrudTable[model.Assessment](
		db,
		"assessments",
		[]string{"assessment_id", "title", "questions", "max_score", "course_id"},
		"",
		func(s scanner) (*model.Assessment, error) {
			var a model.Assessment
			if err := s.Scan(&a.AssessmentID, &a.Title, &a.Questions, &a.MaxScore, &a.CourseID); err != nil {
				return nil, err
			}
			return &a, nil
		},
		func(a *model.Assessment) []any {
			return []any{a.AssessmentID, a.Title, a.Questions, a.MaxScore, a.CourseID}
		},
	)
}
