// Package catalog owns the Course → Module → Lesson hierarchy plus the
// assessment definitions hanging off it (assignments under lessons, one quiz
// per module). The lifecycle engines read the catalog; they never mutate it.
package catalog

const (
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
)

type Course struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	DurationHours int    `json:"duration_hours,omitempty"`
	StartDate     int64  `json:"start_date,omitempty"`
	EndDate       int64  `json:"end_date,omitempty"`
	IsPublished   bool   `json:"is_published"`
	TeacherID     string `json:"teacher_id"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
}

type Module struct {
	ID         string `json:"id"`
	CourseID   string `json:"course_id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
}

type Lesson struct {
	ID         string `json:"id"`
	ModuleID   string `json:"module_id"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	OrderIndex int    `json:"order_index"`
}

type Assignment struct {
	ID          string `json:"id"`
	LessonID    string `json:"lesson_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     int64  `json:"due_date,omitempty"`
	MaxScore    int    `json:"max_score"`
	CreatedAt   int64  `json:"created_at"`
}

type Quiz struct {
	ID           string     `json:"id"`
	ModuleID     string     `json:"module_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	TimeLimitMin int        `json:"time_limit_min,omitempty"`
	PassingScore int        `json:"passing_score"`
	Questions    []Question `json:"questions,omitempty"`
}

type Question struct {
	ID         string         `json:"id"`
	QuizID     string         `json:"quiz_id"`
	Text       string         `json:"text"`
	Type       string         `json:"type"`
	Points     int            `json:"points"`
	OrderIndex int            `json:"order_index"`
	Options    []AnswerOption `json:"options,omitempty"`
}

type AnswerOption struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// StudentView strips correctness flags before a quiz is served to a student.
func (q Quiz) StudentView() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, qu := range q.Questions {
		cp := qu
		cp.Options = make([]AnswerOption, len(qu.Options))
		for j, o := range qu.Options {
			o.IsCorrect = false
			cp.Options[j] = o
		}
		out.Questions[i] = cp
	}
	return out
}
