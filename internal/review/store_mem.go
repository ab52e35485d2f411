package review

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
	recs map[string]Review
}

func NewInMemoryStore() Store {
	return &memStore{recs: map[string]Review{}}
}

func (m *memStore) Create(_ context.Context, r Review) (Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, errs.Validationf("rating must be between 1 and 5")
	}
	for _, e := range m.recs {
		if e.StudentID == r.StudentID && e.CourseID == r.CourseID {
			return Review{}, errs.Duplicate("review already exists for this student and course")
		}
	}
	r.ID = uuid.NewString()
	now := time.Now().Unix()
	r.CreatedAt, r.UpdatedAt = now, now
	m.recs[r.ID] = r
	return r, nil
}

func (m *memStore) Get(_ context.Context, id string) (Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recs[id]
	if !ok {
		return Review{}, errs.NotFoundf("review not found")
	}
	return r, nil
}

func (m *memStore) ExistsPair(_ context.Context, studentID, courseID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.recs {
		if r.StudentID == studentID && r.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Update(_ context.Context, r Review) (Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, errs.Validationf("rating must be between 1 and 5")
	}
	if _, ok := m.recs[r.ID]; !ok {
		return Review{}, errs.NotFoundf("review %s not found", r.ID)
	}
	r.UpdatedAt = time.Now().Unix()
	m.recs[r.ID] = r
	return r, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return errs.NotFoundf("review %s not found", id)
	}
	delete(m.recs, id)
	return nil
}

func (m *memStore) ListByCourse(_ context.Context, courseID string) ([]Review, error) {
	return m.filter(func(r Review) bool { return r.CourseID == courseID }), nil
}

func (m *memStore) ListByStudent(_ context.Context, studentID string) ([]Review, error) {
	return m.filter(func(r Review) bool { return r.StudentID == studentID }), nil
}

func (m *memStore) AverageRating(_ context.Context, courseID string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum, n := 0, 0
	for _, r := range m.recs {
		if r.CourseID == courseID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (m *memStore) filter(keep func(Review) bool) []Review {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Review
	for _, r := range m.recs {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}
