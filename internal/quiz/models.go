// Package quiz scores quiz attempts and records the results. Quiz
// definitions live in the catalog; this package owns the grading algorithm
// and the attempt history.
package quiz

// Submission is one graded attempt. Attempts are append-only and unlimited;
// retrieval offers latest-by-timestamp ordering only, and callers wanting
// best-attempt semantics reduce the list themselves.
type Submission struct {
	ID             string `json:"id"`
	QuizID         string `json:"quiz_id"`
	StudentID      string `json:"student_id"`
	ScorePercent   int    `json:"score"`
	CorrectCount   int    `json:"correct_answers"`
	TotalQuestions int    `json:"total_questions"`
	Passed         bool   `json:"passed"`
	TakenAt        int64  `json:"taken_at"`
	TimeSpentSec   int    `json:"time_spent_sec,omitempty"`
}

type View struct {
	Submission
	QuizTitle   string `json:"quiz_title"`
	StudentName string `json:"student_name"`
}
