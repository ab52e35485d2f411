// Package submission is the review workflow for assignment deliverables:
// one submission per (student, assignment), graded, accepted, or rejected by
// the teaching side.
package submission

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusReviewed  Status = "reviewed"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

type Submission struct {
	ID           string `json:"id"`
	AssignmentID string `json:"assignment_id"`
	StudentID    string `json:"student_id"`
	Content      string `json:"content,omitempty"`
	FileURL      string `json:"file_url,omitempty"`
	SubmittedAt  int64  `json:"submitted_at"`
	Score        *int   `json:"score,omitempty"` // nil until graded
	Feedback     string `json:"feedback,omitempty"`
	Status       Status `json:"status"`
	ReviewedAt   int64  `json:"reviewed_at,omitempty"`
}

type View struct {
	Submission
	AssignmentTitle string `json:"assignment_title"`
	StudentName     string `json:"student_name"`
}
