package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/errs"
)

type memStore struct {
	mu       sync.RWMutex
	recs     map[string]LessonProgress
	courseOf func(lessonID string) string
}

// NewInMemoryStore takes a lesson→course resolver since the in-memory store
// has no catalog tables to join against.
func NewInMemoryStore(courseOf func(lessonID string) string) Store {
	if courseOf == nil {
		courseOf = func(string) string { return "" }
	}
	return &memStore{recs: map[string]LessonProgress{}, courseOf: courseOf}
}

func (m *memStore) Create(_ context.Context, p LessonProgress) (LessonProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.StudentID == p.StudentID && r.LessonID == p.LessonID {
			return LessonProgress{}, errs.Duplicate("lesson already started by this student")
		}
	}
	p.ID = uuid.NewString()
	if p.StartedAt == 0 {
		p.StartedAt = time.Now().Unix()
	}
	m.recs[p.ID] = p
	return p, nil
}

func (m *memStore) GetByPair(_ context.Context, studentID, lessonID string) (LessonProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.recs {
		if r.StudentID == studentID && r.LessonID == lessonID {
			return r, nil
		}
	}
	return LessonProgress{}, errs.NotFoundf("lesson progress not found")
}

func (m *memStore) Update(_ context.Context, p LessonProgress) (LessonProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[p.ID]; !ok {
		return LessonProgress{}, errs.NotFoundf("lesson progress %s not found", p.ID)
	}
	m.recs[p.ID] = p
	return p, nil
}

func (m *memStore) ListByStudent(_ context.Context, studentID string) ([]LessonProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []LessonProgress
	for _, r := range m.recs {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	return out, nil
}

func (m *memStore) CountCompletedInCourse(_ context.Context, studentID, courseID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.recs {
		if r.StudentID == studentID && r.IsCompleted && m.courseOf(r.LessonID) == courseID {
			n++
		}
	}
	return n, nil
}
