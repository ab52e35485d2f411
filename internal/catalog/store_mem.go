package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/errs"
)

type memStore struct {
	mu          sync.RWMutex
	courses     map[string]Course
	modules     map[string]Module
	lessons     map[string]Lesson
	assignments map[string]Assignment
	quizzes     map[string]Quiz // questions inlined
}

func NewInMemoryStore() Store {
	return &memStore{
		courses:     map[string]Course{},
		modules:     map[string]Module{},
		lessons:     map[string]Lesson{},
		assignments: map[string]Assignment{},
		quizzes:     map[string]Quiz{},
	}
}

func (m *memStore) CreateCourse(_ context.Context, c Course) (Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	now := time.Now().Unix()
	c.CreatedAt, c.UpdatedAt = now, now
	m.courses[c.ID] = c
	return c, nil
}

func (m *memStore) GetCourse(_ context.Context, id string) (Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, errs.NotFoundf("course not found")
	}
	return c, nil
}

func (m *memStore) UpdateCourse(_ context.Context, c Course) (Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[c.ID]; !ok {
		return Course{}, errs.NotFoundf("course %s not found", c.ID)
	}
	c.UpdatedAt = time.Now().Unix()
	m.courses[c.ID] = c
	return c, nil
}

func (m *memStore) DeleteCourse(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return errs.NotFoundf("course %s not found", id)
	}
	delete(m.courses, id)
	for mid, mod := range m.modules {
		if mod.CourseID == id {
			delete(m.modules, mid)
		}
	}
	return nil
}

func (m *memStore) ListCourses(_ context.Context, opts ListOpts) ([]Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Course
	for _, c := range m.courses {
		if opts.PublishedOnly && !c.IsPublished {
			continue
		}
		if opts.TeacherID != "" && c.TeacherID != opts.TeacherID {
			continue
		}
		if opts.Q != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(opts.Q)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memStore) CreateModule(_ context.Context, mod Module) (Module, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mod.ID = uuid.NewString()
	m.modules[mod.ID] = mod
	return mod, nil
}

func (m *memStore) GetModule(_ context.Context, id string) (Module, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mod, ok := m.modules[id]
	if !ok {
		return Module{}, errs.NotFoundf("module %s not found", id)
	}
	return mod, nil
}

func (m *memStore) ListModules(_ context.Context, courseID string) ([]Module, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Module
	for _, mod := range m.modules {
		if mod.CourseID == courseID {
			out = append(out, mod)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (m *memStore) CreateLesson(_ context.Context, l Lesson) (Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = uuid.NewString()
	m.lessons[l.ID] = l
	return l, nil
}

func (m *memStore) GetLesson(_ context.Context, id string) (Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lessons[id]
	if !ok {
		return Lesson{}, errs.NotFoundf("lesson %s not found", id)
	}
	return l, nil
}

func (m *memStore) ListLessons(_ context.Context, moduleID string) ([]Lesson, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Lesson
	for _, l := range m.lessons {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (m *memStore) CountLessonsByCourse(_ context.Context, courseID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, l := range m.lessons {
		if mod, ok := m.modules[l.ModuleID]; ok && mod.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateAssignment(_ context.Context, a Assignment) (Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().Unix()
	m.assignments[a.ID] = a
	return a, nil
}

func (m *memStore) GetAssignment(_ context.Context, id string) (Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assignments[id]
	if !ok {
		return Assignment{}, errs.NotFoundf("assignment %s not found", id)
	}
	return a, nil
}

func (m *memStore) ListAssignmentsByLesson(_ context.Context, lessonID string) ([]Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Assignment
	for _, a := range m.assignments {
		if a.LessonID == lessonID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (m *memStore) CreateQuiz(_ context.Context, q Quiz) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.quizzes {
		if e.ModuleID == q.ModuleID {
			return Quiz{}, errs.Duplicate("module already has a quiz")
		}
	}
	q.ID = uuid.NewString()
	m.quizzes[q.ID] = q
	return q, nil
}

func (m *memStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, errs.NotFoundf("quiz %s not found", id)
	}
	out := q
	out.Questions = nil
	return out, nil
}

func (m *memStore) GetQuizWithQuestions(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, errs.NotFoundf("quiz %s not found", id)
	}
	return q, nil
}

func (m *memStore) GetQuizByModule(_ context.Context, moduleID string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, q := range m.quizzes {
		if q.ModuleID == moduleID {
			return q, nil
		}
	}
	return Quiz{}, errs.NotFoundf("quiz not found for module %s", moduleID)
}

func (m *memStore) AddQuestion(_ context.Context, qu Question) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quizzes[qu.QuizID]
	if !ok {
		return Question{}, errs.NotFoundf("quiz %s not found", qu.QuizID)
	}
	qu.ID = uuid.NewString()
	for i := range qu.Options {
		qu.Options[i].ID = uuid.NewString()
		qu.Options[i].QuestionID = qu.ID
	}
	q.Questions = append(q.Questions, qu)
	m.quizzes[q.ID] = q
	return qu, nil
}

func (m *memStore) AddAnswerOption(_ context.Context, o AnswerOption) (AnswerOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for qid, q := range m.quizzes {
		for i := range q.Questions {
			if q.Questions[i].ID == o.QuestionID {
				o.ID = uuid.NewString()
				q.Questions[i].Options = append(q.Questions[i].Options, o)
				m.quizzes[qid] = q
				return o, nil
			}
		}
	}
	return AnswerOption{}, errs.NotFoundf("question %s not found", o.QuestionID)
}
