package submission

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

func (s *SQLStore) Create(ctx context.Context, sub Submission) (Submission, error) {
	sub.ID = uuid.NewString()
	if sub.SubmittedAt == 0 {
		sub.SubmittedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id,assignment_id,student_id,content,file_url,submitted_at,score,feedback,status,reviewed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		sub.ID, sub.AssignmentID, sub.StudentID, sub.Content, sub.FileURL, sub.SubmittedAt,
		sub.Score, sub.Feedback, sub.Status, nullInt(sub.ReviewedAt))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Submission{}, errs.Duplicate("submission already exists for this student and assignment")
		}
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Submission, error) {
	return scanSubmission(s.db.QueryRowContext(ctx,
		`SELECT id,assignment_id,student_id,content,file_url,submitted_at,score,feedback,status,reviewed_at
		   FROM submissions WHERE id=$1`, id))
}

func (s *SQLStore) ExistsPair(ctx context.Context, studentID, assignmentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM submissions WHERE student_id=$1 AND assignment_id=$2`, studentID, assignmentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) Update(ctx context.Context, sub Submission) (Submission, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET score=$1, feedback=$2, status=$3, reviewed_at=$4 WHERE id=$5`,
		sub.Score, sub.Feedback, sub.Status, nullInt(sub.ReviewedAt), sub.ID)
	if err != nil {
		return Submission{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Submission{}, errs.NotFoundf("submission %s not found", sub.ID)
	}
	return sub, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("submission %s not found", id)
	}
	return nil
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]Submission, error) {
	return s.list(ctx,
		`SELECT id,assignment_id,student_id,content,file_url,submitted_at,score,feedback,status,reviewed_at
		   FROM submissions WHERE student_id=$1 ORDER BY submitted_at DESC`, studentID)
}

func (s *SQLStore) ListByAssignment(ctx context.Context, assignmentID string) ([]Submission, error) {
	return s.list(ctx,
		`SELECT id,assignment_id,student_id,content,file_url,submitted_at,score,feedback,status,reviewed_at
		   FROM submissions WHERE assignment_id=$1 ORDER BY submitted_at DESC`, assignmentID)
}

func (s *SQLStore) ListByStatus(ctx context.Context, status Status) ([]Submission, error) {
	return s.list(ctx,
		`SELECT id,assignment_id,student_id,content,file_url,submitted_at,score,feedback,status,reviewed_at
		   FROM submissions WHERE status=$1 ORDER BY submitted_at`, status)
}

func (s *SQLStore) list(ctx context.Context, query string, args ...any) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanSubmission(row rowScanner) (Submission, error) {
	var sub Submission
	var score sql.NullInt64
	var reviewed sql.NullInt64
	err := row.Scan(&sub.ID, &sub.AssignmentID, &sub.StudentID, &sub.Content, &sub.FileURL,
		&sub.SubmittedAt, &score, &sub.Feedback, &sub.Status, &reviewed)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, errs.NotFoundf("submission not found")
	}
	if err != nil {
		return Submission{}, err
	}
	if score.Valid {
		v := int(score.Int64)
		sub.Score = &v
	}
	sub.ReviewedAt = reviewed.Int64
	return sub, nil
}

func nullInt(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
