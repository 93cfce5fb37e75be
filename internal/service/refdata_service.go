package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"campus-console/internal/models"
)

type teacherLister interface {
	List(ctx context.Context) ([]models.Teacher, error)
}

type studentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type topicLister interface {
	List(ctx context.Context) ([]models.Topic, error)
}

// RefData holds the selection sources for the course edit form.
type RefData struct {
	Teachers []models.Teacher `json:"docentes"`
	Students []models.Student `json:"alumnos"`
	Topics   []models.Topic   `json:"temas"`
}

// RefDataService assembles the reference lists a course edit session needs.
// Nothing is cached: every session open re-fetches all three lists.
type RefDataService struct {
	teachers teacherLister
	students studentLister
	topics   topicLister
	logger   *zap.Logger
}

// NewRefDataService constructs a RefDataService.
func NewRefDataService(teachers teacherLister, students studentLister, topics topicLister, logger *zap.Logger) *RefDataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefDataService{teachers: teachers, students: students, topics: topics, logger: logger}
}

// Fetch requests the three lists concurrently. The fetches are independent: a
// failure in one is logged and leaves that list empty, so the form can still
// offer whatever sources arrived. Fetch itself never fails.
func (s *RefDataService) Fetch(ctx context.Context) RefData {
	var (
		wg  sync.WaitGroup
		ref RefData
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		teachers, err := s.teachers.List(ctx)
		if err != nil {
			s.logger.Warn("fetching teacher list failed", zap.Error(err))
			return
		}
		ref.Teachers = teachers
	}()
	go func() {
		defer wg.Done()
		students, err := s.students.List(ctx)
		if err != nil {
			s.logger.Warn("fetching student list failed", zap.Error(err))
			return
		}
		ref.Students = students
	}()
	go func() {
		defer wg.Done()
		topics, err := s.topics.List(ctx)
		if err != nil {
			s.logger.Warn("fetching topic list failed", zap.Error(err))
			return
		}
		ref.Topics = topics
	}()
	wg.Wait()

	return ref
}
