// Package progress records per-lesson completion. It feeds the course
// progress percentage the enrollment engine consumes, but never calls into
// it: advancing an enrollment stays an explicit caller decision.
package progress

type LessonProgress struct {
	ID           string `json:"id"`
	StudentID    string `json:"student_id"`
	LessonID     string `json:"lesson_id"`
	IsCompleted  bool   `json:"is_completed"`
	StartedAt    int64  `json:"started_at"`
	CompletedAt  int64  `json:"completed_at,omitempty"`
	TimeSpentMin int    `json:"time_spent_min"`
}
