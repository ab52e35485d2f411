package review

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

func (s *SQLStore) Create(ctx context.Context, r Review) (Review, error) {
	r.ID = uuid.NewString()
	now := time.Now().Unix()
	r.CreatedAt, r.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course_reviews (id,course_id,student_id,rating,comment,created_at,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.CourseID, r.StudentID, r.Rating, r.Comment, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Review{}, errs.Duplicate("review already exists for this student and course")
		}
		if db.IsCheckViolation(err) {
			return Review{}, errs.Validationf("rating must be between 1 and 5")
		}
		return Review{}, err
	}
	return r, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Review, error) {
	return scanReview(s.db.QueryRowContext(ctx,
		`SELECT id,course_id,student_id,rating,comment,created_at,updated_at FROM course_reviews WHERE id=$1`, id))
}

func (s *SQLStore) ExistsPair(ctx context.Context, studentID, courseID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM course_reviews WHERE student_id=$1 AND course_id=$2`, studentID, courseID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) Update(ctx context.Context, r Review) (Review, error) {
	r.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE course_reviews SET rating=$1, comment=$2, updated_at=$3 WHERE id=$4`,
		r.Rating, r.Comment, r.UpdatedAt, r.ID)
	if err != nil {
		if db.IsCheckViolation(err) {
			return Review{}, errs.Validationf("rating must be between 1 and 5")
		}
		return Review{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Review{}, errs.NotFoundf("review %s not found", r.ID)
	}
	return r, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM course_reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("review %s not found", id)
	}
	return nil
}

func (s *SQLStore) ListByCourse(ctx context.Context, courseID string) ([]Review, error) {
	return s.list(ctx,
		`SELECT id,course_id,student_id,rating,comment,created_at,updated_at
		   FROM course_reviews WHERE course_id=$1 ORDER BY created_at DESC`, courseID)
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]Review, error) {
	return s.list(ctx,
		`SELECT id,course_id,student_id,rating,comment,created_at,updated_at
		   FROM course_reviews WHERE student_id=$1 ORDER BY created_at DESC`, studentID)
}

func (s *SQLStore) AverageRating(ctx context.Context, courseID string) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM course_reviews WHERE course_id=$1`, courseID).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (s *SQLStore) list(ctx context.Context, query string, args ...any) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanReview(row rowScanner) (Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.CourseID, &r.StudentID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Review{}, errs.NotFoundf("review not found")
	}
	return r, err
}
