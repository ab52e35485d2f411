package enrollment

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
	recs map[string]Enrollment
}

func NewInMemoryStore() Store {
	return &memStore{recs: map[string]Enrollment{}}
}

func (m *memStore) Create(_ context.Context, e Enrollment) (Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.StudentID == e.StudentID && r.CourseID == e.CourseID {
			return Enrollment{}, errs.Duplicate("enrollment already exists for this student and course")
		}
	}
	e.ID = uuid.NewString()
	if e.EnrolledAt == 0 {
		e.EnrolledAt = time.Now().Unix()
	}
	m.recs[e.ID] = e
	return e, nil
}

func (m *memStore) Get(_ context.Context, id string) (Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.recs[id]
	if !ok {
		return Enrollment{}, errs.NotFoundf("enrollment not found")
	}
	return e, nil
}

func (m *memStore) GetByPair(_ context.Context, studentID, courseID string) (Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.recs {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return Enrollment{}, errs.NotFoundf("enrollment not found")
}

func (m *memStore) ExistsPair(ctx context.Context, studentID, courseID string) (bool, error) {
	_, err := m.GetByPair(ctx, studentID, courseID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *memStore) Update(_ context.Context, e Enrollment) (Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[e.ID]; !ok {
		return Enrollment{}, errs.NotFoundf("enrollment %s not found", e.ID)
	}
	m.recs[e.ID] = e
	return e, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return errs.NotFoundf("enrollment %s not found", id)
	}
	delete(m.recs, id)
	return nil
}

func (m *memStore) ListByStudent(_ context.Context, studentID string, status Status) ([]Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Enrollment
	for _, e := range m.recs {
		if e.StudentID == studentID && (status == "" || e.Status == status) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt > out[j].EnrolledAt })
	return out, nil
}

func (m *memStore) ListByCourse(_ context.Context, courseID string) ([]Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Enrollment
	for _, e := range m.recs {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt > out[j].EnrolledAt })
	return out, nil
}
