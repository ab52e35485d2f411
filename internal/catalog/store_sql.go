package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/db"
	"github.com/studyhall/studyhall-lms/internal/errs"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore { return &SQLStore{db: dbh} }

// ---- courses ----

func (s *SQLStore) CreateCourse(ctx context.Context, c Course) (Course, error) {
	c.ID = uuid.NewString()
	now := time.Now().Unix()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO courses (id,title,description,duration_hours,start_date,end_date,is_published,teacher_id,created_at,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		c.ID, c.Title, c.Description, c.DurationHours, nullInt(c.StartDate), nullInt(c.EndDate),
		c.IsPublished, c.TeacherID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return Course{}, err
	}
	return c, nil
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,description,duration_hours,start_date,end_date,is_published,teacher_id,created_at,updated_at
		   FROM courses WHERE id=$1`, id)
	return scanCourse(row)
}

func (s *SQLStore) UpdateCourse(ctx context.Context, c Course) (Course, error) {
	c.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE courses SET title=$1, description=$2, duration_hours=$3, start_date=$4, end_date=$5, is_published=$6, updated_at=$7
		  WHERE id=$8`,
		c.Title, c.Description, c.DurationHours, nullInt(c.StartDate), nullInt(c.EndDate), c.IsPublished, c.UpdatedAt, c.ID)
	if err != nil {
		return Course{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Course{}, errs.NotFoundf("course %s not found", c.ID)
	}
	return s.GetCourse(ctx, c.ID)
}

func (s *SQLStore) DeleteCourse(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("course %s not found", id)
	}
	return nil
}

func (s *SQLStore) ListCourses(ctx context.Context, opts ListOpts) ([]Course, error) {
	sqlStr := `SELECT id,title,description,duration_hours,start_date,end_date,is_published,teacher_id,created_at,updated_at
	             FROM courses WHERE 1=1`
	var args []any
	if opts.PublishedOnly {
		sqlStr += ` AND is_published=TRUE`
	}
	if opts.TeacherID != "" {
		args = append(args, opts.TeacherID)
		sqlStr += ` AND teacher_id=$` + strconv.Itoa(len(args))
	}
	if opts.Q != "" {
		args = append(args, "%"+opts.Q+"%")
		sqlStr += ` AND title LIKE $` + strconv.Itoa(len(args))
	}
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit, opts.Offset)
	sqlStr += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanCourse(row rowScanner) (Course, error) {
	var c Course
	var start, end sql.NullInt64
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.DurationHours, &start, &end,
		&c.IsPublished, &c.TeacherID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, errs.NotFoundf("course not found")
	}
	if err != nil {
		return Course{}, err
	}
	c.StartDate, c.EndDate = start.Int64, end.Int64
	return c, nil
}

// ---- modules & lessons ----

func (s *SQLStore) CreateModule(ctx context.Context, m Module) (Module, error) {
	m.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course_modules (id,course_id,title,order_index) VALUES ($1,$2,$3,$4)`,
		m.ID, m.CourseID, m.Title, m.OrderIndex)
	if err != nil {
		return Module{}, err
	}
	return m, nil
}

func (s *SQLStore) GetModule(ctx context.Context, id string) (Module, error) {
	var m Module
	err := s.db.QueryRowContext(ctx,
		`SELECT id,course_id,title,order_index FROM course_modules WHERE id=$1`, id).
		Scan(&m.ID, &m.CourseID, &m.Title, &m.OrderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return Module{}, errs.NotFoundf("module %s not found", id)
	}
	return m, err
}

func (s *SQLStore) ListModules(ctx context.Context, courseID string) ([]Module, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,course_id,title,order_index FROM course_modules WHERE course_id=$1 ORDER BY order_index`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.OrderIndex); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) CreateLesson(ctx context.Context, l Lesson) (Lesson, error) {
	l.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lessons (id,module_id,title,content,order_index) VALUES ($1,$2,$3,$4,$5)`,
		l.ID, l.ModuleID, l.Title, l.Content, l.OrderIndex)
	if err != nil {
		return Lesson{}, err
	}
	return l, nil
}

func (s *SQLStore) GetLesson(ctx context.Context, id string) (Lesson, error) {
	var l Lesson
	err := s.db.QueryRowContext(ctx,
		`SELECT id,module_id,title,content,order_index FROM lessons WHERE id=$1`, id).
		Scan(&l.ID, &l.ModuleID, &l.Title, &l.Content, &l.OrderIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return Lesson{}, errs.NotFoundf("lesson %s not found", id)
	}
	return l, err
}

func (s *SQLStore) ListLessons(ctx context.Context, moduleID string) ([]Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,module_id,title,content,order_index FROM lessons WHERE module_id=$1 ORDER BY order_index`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Lesson
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.ModuleID, &l.Title, &l.Content, &l.OrderIndex); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLStore) CountLessonsByCourse(ctx context.Context, courseID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lessons l JOIN course_modules m ON m.id=l.module_id WHERE m.course_id=$1`, courseID).
		Scan(&n)
	return n, err
}

// ---- assignments ----

func (s *SQLStore) CreateAssignment(ctx context.Context, a Assignment) (Assignment, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id,lesson_id,title,description,due_date,max_score,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.LessonID, a.Title, a.Description, nullInt(a.DueDate), a.MaxScore, a.CreatedAt)
	if err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *SQLStore) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	var a Assignment
	var due sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id,lesson_id,title,description,due_date,max_score,created_at FROM assignments WHERE id=$1`, id).
		Scan(&a.ID, &a.LessonID, &a.Title, &a.Description, &due, &a.MaxScore, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Assignment{}, errs.NotFoundf("assignment %s not found", id)
	}
	if err != nil {
		return Assignment{}, err
	}
	a.DueDate = due.Int64
	return a, nil
}

func (s *SQLStore) ListAssignmentsByLesson(ctx context.Context, lessonID string) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,lesson_id,title,description,due_date,max_score,created_at FROM assignments WHERE lesson_id=$1 ORDER BY created_at`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Assignment
	for rows.Next() {
		var a Assignment
		var due sql.NullInt64
		if err := rows.Scan(&a.ID, &a.LessonID, &a.Title, &a.Description, &due, &a.MaxScore, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.DueDate = due.Int64
		out = append(out, a)
	}
	return out, rows.Err()
}

// ---- quizzes ----

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	q.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,module_id,title,description,time_limit_min,passing_score)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		q.ID, q.ModuleID, q.Title, q.Description, q.TimeLimitMin, q.PassingScore)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Quiz{}, errs.Duplicate("module already has a quiz")
		}
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	var q Quiz
	err := s.db.QueryRowContext(ctx,
		`SELECT id,module_id,title,description,time_limit_min,passing_score FROM quizzes WHERE id=$1`, id).
		Scan(&q.ID, &q.ModuleID, &q.Title, &q.Description, &q.TimeLimitMin, &q.PassingScore)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, errs.NotFoundf("quiz %s not found", id)
	}
	return q, err
}

func (s *SQLStore) GetQuizByModule(ctx context.Context, moduleID string) (Quiz, error) {
	var q Quiz
	err := s.db.QueryRowContext(ctx,
		`SELECT id,module_id,title,description,time_limit_min,passing_score FROM quizzes WHERE module_id=$1`, moduleID).
		Scan(&q.ID, &q.ModuleID, &q.Title, &q.Description, &q.TimeLimitMin, &q.PassingScore)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, errs.NotFoundf("quiz not found for module %s", moduleID)
	}
	return q, err
}

func (s *SQLStore) GetQuizWithQuestions(ctx context.Context, id string) (Quiz, error) {
	q, err := s.GetQuiz(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	qrows, err := s.db.QueryContext(ctx,
		`SELECT id,quiz_id,text,qtype,points,order_index FROM questions WHERE quiz_id=$1 ORDER BY order_index`, id)
	if err != nil {
		return Quiz{}, err
	}
	defer qrows.Close()
	for qrows.Next() {
		var qu Question
		if err := qrows.Scan(&qu.ID, &qu.QuizID, &qu.Text, &qu.Type, &qu.Points, &qu.OrderIndex); err != nil {
			return Quiz{}, err
		}
		q.Questions = append(q.Questions, qu)
	}
	if err := qrows.Err(); err != nil {
		return Quiz{}, err
	}
	for i := range q.Questions {
		orows, err := s.db.QueryContext(ctx,
			`SELECT id,question_id,text,is_correct FROM answer_options WHERE question_id=$1 ORDER BY id`, q.Questions[i].ID)
		if err != nil {
			return Quiz{}, err
		}
		for orows.Next() {
			var o AnswerOption
			if err := orows.Scan(&o.ID, &o.QuestionID, &o.Text, &o.IsCorrect); err != nil {
				orows.Close()
				return Quiz{}, err
			}
			q.Questions[i].Options = append(q.Questions[i].Options, o)
		}
		if err := orows.Err(); err != nil {
			orows.Close()
			return Quiz{}, err
		}
		orows.Close()
	}
	return q, nil
}

func (s *SQLStore) AddQuestion(ctx context.Context, q Question) (Question, error) {
	q.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (id,quiz_id,text,qtype,points,order_index) VALUES ($1,$2,$3,$4,$5,$6)`,
		q.ID, q.QuizID, q.Text, q.Type, q.Points, q.OrderIndex)
	if err != nil {
		return Question{}, err
	}
	for i := range q.Options {
		q.Options[i].QuestionID = q.ID
		o, err := s.AddAnswerOption(ctx, q.Options[i])
		if err != nil {
			return Question{}, err
		}
		q.Options[i] = o
	}
	return q, nil
}

func (s *SQLStore) AddAnswerOption(ctx context.Context, o AnswerOption) (AnswerOption, error) {
	o.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answer_options (id,question_id,text,is_correct) VALUES ($1,$2,$3,$4)`,
		o.ID, o.QuestionID, o.Text, o.IsCorrect)
	if err != nil {
		return AnswerOption{}, err
	}
	return o, nil
}

func nullInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
