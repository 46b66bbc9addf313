package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  user_id       UUID PRIMARY KEY,
  name          TEXT NOT NULL,
  email         TEXT NOT NULL UNIQUE,
  role          TEXT NOT NULL,
  password_hash TEXT NOT NULL
);`,
	},
	{
		Name: "create_table_courses",
		SQL: `CREATE TABLE IF NOT EXISTS courses (
  course_id     UUID PRIMARY KEY,
  title         TEXT NOT NULL,
  description   TEXT NOT NULL,
  instructor_id UUID NOT NULL REFERENCES users (user_id),
  media_url     TEXT NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_assessments",
		SQL: `CREATE TABLE IF NOT EXISTS assessments (
  assessment_id UUID PRIMARY KEY,
  title         TEXT NOT NULL,
  questions     TEXT NOT NULL,
  max_score     INT  NOT NULL,
  course_id     UUID NOT NULL REFERENCES courses (course_id)
);`,
	},
	{
		Name: "create_table_results",
		SQL: `CREATE TABLE IF NOT EXISTS results (
  result_id     UUID        PRIMARY KEY,
  assessment_id UUID        NOT NULL REFERENCES assessments (assessment_id),
  user_id       UUID        NOT NULL REFERENCES users (user_id),
  score         INT         NOT NULL,
  attempt_date  TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_index_courses_instructor_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_courses_instructor_id ON courses (instructor_id);`,
	},
	{
		Name: "create_index_assessments_course_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_assessments_course_id ON assessments (course_id);`,
	},
	{
		Name: "create_index_results_assessment_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_results_assessment_id ON results (assessment_id);`,
	},
	{
		Name: "create_index_results_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_results_user_id ON results (user_id);`,
	},
}

// EnsureMigrated checks if the 'users' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.users') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
