package progress

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/db"
	"github.com/studyhall/studyhall-lms/internal/errs"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore { return &SQLStore{db: dbh} }

func (s *SQLStore) Create(ctx context.Context, p LessonProgress) (LessonProgress, error) {
	p.ID = uuid.NewString()
	if p.StartedAt == 0 {
		p.StartedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lesson_progress (id,student_id,lesson_id,is_completed,started_at,completed_at,time_spent_min)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.StudentID, p.LessonID, p.IsCompleted, p.StartedAt, nullInt(p.CompletedAt), p.TimeSpentMin)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return LessonProgress{}, errs.Duplicate("lesson already started by this student")
		}
		return LessonProgress{}, err
	}
	return p, nil
}

func (s *SQLStore) GetByPair(ctx context.Context, studentID, lessonID string) (LessonProgress, error) {
	return scanProgress(s.db.QueryRowContext(ctx,
		`SELECT id,student_id,lesson_id,is_completed,started_at,completed_at,time_spent_min
		   FROM lesson_progress WHERE student_id=$1 AND lesson_id=$2`, studentID, lessonID))
}

func (s *SQLStore) Update(ctx context.Context, p LessonProgress) (LessonProgress, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lesson_progress SET is_completed=$1, completed_at=$2, time_spent_min=$3 WHERE id=$4`,
		p.IsCompleted, nullInt(p.CompletedAt), p.TimeSpentMin, p.ID)
	if err != nil {
		return LessonProgress{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return LessonProgress{}, errs.NotFoundf("lesson progress %s not found", p.ID)
	}
	return p, nil
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]LessonProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,student_id,lesson_id,is_completed,started_at,completed_at,time_spent_min
		   FROM lesson_progress WHERE student_id=$1 ORDER BY started_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LessonProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) CountCompletedInCourse(ctx context.Context, studentID, courseID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		   FROM lesson_progress p
		   JOIN lessons l ON l.id=p.lesson_id
		   JOIN course_modules m ON m.id=l.module_id
		  WHERE p.student_id=$1 AND m.course_id=$2 AND p.is_completed`, studentID, courseID).
		Scan(&n)
	return n, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProgress(row rowScanner) (LessonProgress, error) {
	var p LessonProgress
	var completed sql.NullInt64
	err := row.Scan(&p.ID, &p.StudentID, &p.LessonID, &p.IsCompleted, &p.StartedAt, &completed, &p.TimeSpentMin)
	if errors.Is(err, sql.ErrNoRows) {
		return LessonProgress{}, errs.NotFoundf("lesson progress not found")
	}
	if err != nil {
		return LessonProgress{}, err
	}
	p.CompletedAt = completed.Int64
	return p, nil
}

func nullInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
