package quiz

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/errs"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(dbh *sql.DB) *SQLStore { return &SQLStore{db: dbh} }

func (s *SQLStore) Create(ctx context.Context, sub Submission) (Submission, error) {
	sub.ID = uuid.NewString()
	if sub.TakenAt == 0 {
		sub.TakenAt = time.Now().Unix()
	}
	var spent any
	if sub.TimeSpentSec > 0 {
		spent = sub.TimeSpentSec
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_submissions (id,quiz_id,student_id,score,correct_answers,total_questions,passed,taken_at,time_spent_sec)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		sub.ID, sub.QuizID, sub.StudentID, sub.ScorePercent, sub.CorrectCount,
		sub.TotalQuestions, sub.Passed, sub.TakenAt, spent)
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Submission, error) {
	return scanSubmission(s.db.QueryRowContext(ctx,
		`SELECT id,quiz_id,student_id,score,correct_answers,total_questions,passed,taken_at,time_spent_sec
		   FROM quiz_submissions WHERE id=$1`, id))
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]Submission, error) {
	return s.list(ctx,
		`SELECT id,quiz_id,student_id,score,correct_answers,total_questions,passed,taken_at,time_spent_sec
		   FROM quiz_submissions WHERE student_id=$1 ORDER BY taken_at DESC`, studentID)
}

func (s *SQLStore) ListByQuiz(ctx context.Context, quizID string) ([]Submission, error) {
	return s.list(ctx,
		`SELECT id,quiz_id,student_id,score,correct_answers,total_questions,passed,taken_at,time_spent_sec
		   FROM quiz_submissions WHERE quiz_id=$1 ORDER BY taken_at DESC`, quizID)
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
	var spent sql.NullInt64
	err := row.Scan(&sub.ID, &sub.QuizID, &sub.StudentID, &sub.ScorePercent, &sub.CorrectCount,
		&sub.TotalQuestions, &sub.Passed, &sub.TakenAt, &spent)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, errs.NotFoundf("quiz submission not found")
	}
	if err != nil {
		return Submission{}, err
	}
	sub.TimeSpentSec = int(spent.Int64)
	return sub, nil
}
