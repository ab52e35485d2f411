package quiz

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/errs"
)

type memStore struct {
	mu   sync.RWMutex
	recs map[string]Submission
}

func NewInMemoryStore() Store {
	return &memStore{recs: map[string]Submission{}}
}

func (m *memStore) Create(_ context.Context, sub Submission) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub.ID = uuid.NewString()
	if sub.TakenAt == 0 {
		sub.TakenAt = time.Now().Unix()
	}
	m.recs[sub.ID] = sub
	return sub, nil
}

func (m *memStore) Get(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.recs[id]
	if !ok {
		return Submission{}, errs.NotFoundf("quiz submission not found")
	}
	return sub, nil
}

func (m *memStore) ListByStudent(_ context.Context, studentID string) ([]Submission, error) {
	return m.filter(func(s Submission) bool { return s.StudentID == studentID }), nil
}

func (m *memStore) ListByQuiz(_ context.Context, quizID string) ([]Submission, error) {
	return m.filter(func(s Submission) bool { return s.QuizID == quizID }), nil
}

func (m *memStore) filter(keep func(Submission) bool) []Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Submission
	for _, s := range m.recs {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenAt > out[j].TakenAt })
	return out
}
