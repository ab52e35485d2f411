// Package enrollment is the lifecycle engine for a student's participation in
// a course: one record per (student, course), a progress percentage, and the
// active → completed / active → dropped transitions.
package enrollment

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

type Enrollment struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	CourseID    string `json:"course_id"`
	Status      Status `json:"status"`
	Progress    int    `json:"progress"`
	EnrolledAt  int64  `json:"enrolled_at"`
	CompletedAt int64  `json:"completed_at,omitempty"`
}

// View is the flat, relationship-denormalized shape handed to the API layer.
type View struct {
	Enrollment
	StudentName string `json:"student_name"`
	CourseTitle string `json:"course_title"`
}
