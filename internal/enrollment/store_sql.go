package enrollment

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

func (s *SQLStore) Create(ctx context.Context, e Enrollment) (Enrollment, error) {
	e.ID = uuid.NewString()
	if e.EnrolledAt == 0 {
		e.EnrolledAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enrollments (id,student_id,course_id,status,progress,enrolled_at,completed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.StudentID, e.CourseID, e.Status, e.Progress, e.EnrolledAt, nullInt(e.CompletedAt))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Enrollment{}, errs.Duplicate("enrollment already exists for this student and course")
		}
		return Enrollment{}, err
	}
	return e, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Enrollment, error) {
	return scanEnrollment(s.db.QueryRowContext(ctx,
		`SELECT id,student_id,course_id,status,progress,enrolled_at,completed_at FROM enrollments WHERE id=$1`, id))
}

func (s *SQLStore) GetByPair(ctx context.Context, studentID, courseID string) (Enrollment, error) {
	return scanEnrollment(s.db.QueryRowContext(ctx,
		`SELECT id,student_id,course_id,status,progress,enrolled_at,completed_at
		   FROM enrollments WHERE student_id=$1 AND course_id=$2`, studentID, courseID))
}

func (s *SQLStore) ExistsPair(ctx context.Context, studentID, courseID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM enrollments WHERE student_id=$1 AND course_id=$2`, studentID, courseID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) Update(ctx context.Context, e Enrollment) (Enrollment, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE enrollments SET status=$1, progress=$2, completed_at=$3 WHERE id=$4`,
		e.Status, e.Progress, nullInt(e.CompletedAt), e.ID)
	if err != nil {
		return Enrollment{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Enrollment{}, errs.NotFoundf("enrollment %s not found", e.ID)
	}
	return e, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("enrollment %s not found", id)
	}
	return nil
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string, status Status) ([]Enrollment, error) {
	sqlStr := `SELECT id,student_id,course_id,status,progress,enrolled_at,completed_at
	             FROM enrollments WHERE student_id=$1`
	args := []any{studentID}
	if status != "" {
		sqlStr += ` AND status=$2`
		args = append(args, status)
	}
	sqlStr += ` ORDER BY enrolled_at DESC`
	return s.list(ctx, sqlStr, args...)
}

func (s *SQLStore) ListByCourse(ctx context.Context, courseID string) ([]Enrollment, error) {
	return s.list(ctx,
		`SELECT id,student_id,course_id,status,progress,enrolled_at,completed_at
		   FROM enrollments WHERE course_id=$1 ORDER BY enrolled_at DESC`, courseID)
}

func (s *SQLStore) list(ctx context.Context, query string, args ...any) ([]Enrollment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEnrollment(row rowScanner) (Enrollment, error) {
	var e Enrollment
	var completed sql.NullInt64
	err := row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.Progress, &e.EnrolledAt, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return Enrollment{}, errs.NotFoundf("enrollment not found")
	}
	if err != nil {
		return Enrollment{}, err
	}
	e.CompletedAt = completed.Int64
	return e, nil
}

func nullInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
