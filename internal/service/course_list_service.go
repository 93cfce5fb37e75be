package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"campus-console/internal/models"
	appErrors "campus-console/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, course models.Course) (*models.Course, error)
	Update(ctx context.Context, id int64, course models.Course) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
	FindByEndDate(ctx context.Context, endDate string) ([]models.Course, error)
	FindStudentsOfActiveCourses(ctx context.Context, teacherID int64) ([]models.Student, error)
}

// Confirmer is the destructive-action gate. Deletes issue zero repository
// calls unless it answers yes.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// CourseListService owns the console's in-memory course view: the
// authoritative snapshot plus the two derived result sets. The snapshot holds
// no authority over server state — it is rebuilt wholesale after every
// mutation, never diffed or patched.
type CourseListService struct {
	repo   courseRepository
	logger *zap.Logger

	mu                sync.Mutex
	courses           []models.Course
	filteredByEndDate []models.Course
	studentsByTeacher []models.Student
	endDate           string
	teacherID         int64

	// Concurrent refreshes race; responses are applied in issue order by
	// discarding any that arrive after a newer one has landed.
	issuedSeq  uint64
	appliedSeq uint64
}

// NewCourseListService constructs a CourseListService.
func NewCourseListService(repo courseRepository, logger *zap.Logger) *CourseListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseListService{repo: repo, logger: logger}
}

// RefreshCourses replaces the course snapshot with the upstream list. On
// failure the previous snapshot is kept and the error is surfaced.
func (s *CourseListService) RefreshCourses(ctx context.Context) error {
	s.mu.Lock()
	s.issuedSeq++
	seq := s.issuedSeq
	s.mu.Unlock()

	courses, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("course list refresh failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		s.logger.Debug("discarding stale course list response",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", s.appliedSeq),
		)
		return nil
	}
	s.appliedSeq = seq
	s.courses = courses
	return nil
}

// Courses returns a copy of the current snapshot.
func (s *CourseListService) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCourses(s.courses)
}

// FilterByEndDate refreshes the end-date derived view. An empty date resets
// the view without touching the network.
func (s *CourseListService) FilterByEndDate(ctx context.Context, endDate string) ([]models.Course, error) {
	if endDate == "" {
		s.mu.Lock()
		s.endDate = ""
		s.filteredByEndDate = []models.Course{}
		s.mu.Unlock()
		return []models.Course{}, nil
	}

	filtered, err := s.repo.FindByEndDate(ctx, endDate)
	if err != nil {
		s.logger.Warn("end-date filter failed", zap.String("endDate", endDate), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.endDate = endDate
	s.filteredByEndDate = filtered
	s.mu.Unlock()
	return copyCourses(filtered), nil
}

// FilteredByEndDate returns the current end-date derived view.
func (s *CourseListService) FilteredByEndDate() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCourses(s.filteredByEndDate)
}

// ListStudentsForTeacher refreshes the students-of-active-courses view. A
// non-positive teacher id resets the view without a call. An empty result
// additionally triggers one full course refresh: the console reads "no active
// courses for this teacher" as a cue to show the unfiltered list again.
func (s *CourseListService) ListStudentsForTeacher(ctx context.Context, teacherID int64) ([]models.Student, error) {
	if teacherID <= 0 {
		s.mu.Lock()
		s.teacherID = 0
		s.studentsByTeacher = []models.Student{}
		s.mu.Unlock()
		return []models.Student{}, nil
	}

	students, err := s.repo.FindStudentsOfActiveCourses(ctx, teacherID)
	if err != nil {
		s.logger.Warn("students-by-teacher query failed", zap.Int64("teacherId", teacherID), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.teacherID = teacherID
	s.studentsByTeacher = students
	s.mu.Unlock()

	if len(students) == 0 {
		if err := s.RefreshCourses(ctx); err != nil {
			return nil, err
		}
		return []models.Student{}, nil
	}

	out := make([]models.Student, len(students))
	copy(out, students)
	return out, nil
}

// StudentsByTeacher returns the current students-of-active-courses view.
func (s *CourseListService) StudentsByTeacher() []models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Student, len(s.studentsByTeacher))
	copy(out, s.studentsByTeacher)
	return out
}

// CreateCourse persists a new course upstream and refreshes the snapshot.
func (s *CourseListService) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	created, err := s.repo.Create(ctx, course)
	if err != nil {
		s.logger.Warn("course create failed", zap.Error(err))
		return nil, err
	}
	s.refreshAfterMutation(ctx, "create")
	return created, nil
}

// UpdateCourse submits a full replacement keyed by the course id, then
// refreshes. The in-memory list is never patched optimistically.
func (s *CourseListService) UpdateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	if course.ID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course id is required for update")
	}
	updated, err := s.repo.Update(ctx, course.ID, course)
	if err != nil {
		s.logger.Warn("course update failed", zap.Int64("id", course.ID), zap.Error(err))
		return nil, err
	}
	s.refreshAfterMutation(ctx, "update")
	return updated, nil
}

// DeleteCourse asks the confirmer before doing anything. A declined
// confirmation is a complete no-op; the returned bool reports whether the
// delete was actually issued.
func (s *CourseListService) DeleteCourse(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(ctx, "delete course") {
		return false, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("course delete failed", zap.Int64("id", id), zap.Error(err))
		return false, err
	}
	s.refreshAfterMutation(ctx, "delete")
	return true, nil
}

// refreshAfterMutation reloads the snapshot after a successful mutation. The
// mutation itself already succeeded, so a refresh failure only logs: the next
// explicit refresh will reconcile the view.
func (s *CourseListService) refreshAfterMutation(ctx context.Context, op string) {
	if err := s.RefreshCourses(ctx); err != nil {
		s.logger.Warn("post-mutation refresh failed", zap.String("op", op), zap.Error(err))
	}
}

func copyCourses(in []models.Course) []models.Course {
	out := make([]models.Course, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
