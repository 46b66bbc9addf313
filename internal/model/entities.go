package model

import "time"

// User is a platform account (student or instructor).
// PasswordHash stores a bcrypt hash, never the raw secret. Responses from the
// login endpoint blank it; CRUD reads return the record as stored.
type User struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash"`
}

func (u User) EntityID() string { return u.UserID }

// Course is taught by an instructor (FK to User) and owns assessments.
type Course struct {
	CourseID     string `json:"courseId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstructorID string `json:"instructorId"`
	MediaURL     string `json:"mediaUrl"`
}

func (c Course) EntityID() string { return c.CourseID }

// Assessment belongs to a course. Questions is an opaque serialized payload
// owned by the client; this layer stores it untouched.
type Assessment struct {
	AssessmentID string `json:"assessmentId"`
	Title        string `json:"title"`
	Questions    string `json:"questions"`
	MaxScore     int    `json:"maxScore"`
	CourseID     string `json:"courseId"`
}

func (a Assessment) EntityID() string { return a.AssessmentID }

// Result records one user's attempt at an assessment.
type Result struct {
	ResultID     string    `json:"resultId"`
	AssessmentID string    `json:"assessmentId"`
	UserID       string    `json:"userId"`
	Score        int       `json:"score"`
	AttemptDate  time.Time `json:"attemptDate"`
}

func (r Result) EntityID() string { return r.ResultID }
