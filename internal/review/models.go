// Package review holds course reviews: one per (student, course), rating
// 1–5, creation gated on enrollment.
package review

type Review struct {
	ID        string `json:"id"`
	CourseID  string `json:"course_id"`
	StudentID string `json:"student_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type View struct {
	Review
	CourseTitle string `json:"course_title"`
	StudentName string `json:"student_name"`
}
