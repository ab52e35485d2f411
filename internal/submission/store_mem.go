package submission

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
	for _, r := range m.recs {
		if r.StudentID == sub.StudentID && r.AssignmentID == sub.AssignmentID {
			return Submission{}, errs.Duplicate("submission already exists for this student and assignment")
		}
	}
	sub.ID = uuid.NewString()
	if sub.SubmittedAt == 0 {
		sub.SubmittedAt = time.Now().Unix()
	}
	m.recs[sub.ID] = sub
	return sub, nil
}

func (m *memStore) Get(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.recs[id]
	if !ok {
		return Submission{}, errs.NotFoundf("submission not found")
	}
	return sub, nil
}

func (m *memStore) ExistsPair(_ context.Context, studentID, assignmentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.recs {
		if r.StudentID == studentID && r.AssignmentID == assignmentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Update(_ context.Context, sub Submission) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[sub.ID]; !ok {
		return Submission{}, errs.NotFoundf("submission %s not found", sub.ID)
	}
	m.recs[sub.ID] = sub
	return sub, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return errs.NotFoundf("submission %s not found", id)
	}
	delete(m.recs, id)
	return nil
}

func (m *memStore) ListByStudent(_ context.Context, studentID string) ([]Submission, error) {
	return m.filter(func(s Submission) bool { return s.StudentID == studentID }), nil
}

func (m *memStore) ListByAssignment(_ context.Context, assignmentID string) ([]Submission, error) {
	return m.filter(func(s Submission) bool { return s.AssignmentID == assignmentID }), nil
}

func (m *memStore) ListByStatus(_ context.Context, status Status) ([]Submission, error) {
	return m.filter(func(s Submission) bool { return s.Status == status }), nil
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
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt > out[j].SubmittedAt })
	return out
}
