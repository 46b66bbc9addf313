package postgres

import (
	"database/sql"

	"edusync/internal/model"
	"edusync/internal/repository"
)

// NewResults creates the results repository.
func NewResults(db *sql.DB) repository.Crud[model.Result] {
	return newCrudTable[model.Result](
		db,
		"results",
		[]string{"result_id", "assessment_id", "user_id", "score", "attempt_date"},
		"",
		func(s scanner) (*model.Result, error) {
			var r model.Result
			if err := s.Scan(&r.ResultID, &r.AssessmentID, &r.UserID, &r.Score, &r.AttemptDate); err != nil {
				return nil, err
			}
			return &r, nil
		},
		func(r *model.Result) []any {
			return []any{r.ResultID, r.AssessmentID, r.UserID, r.Score, r.AttemptDate}
		},
	)
}
