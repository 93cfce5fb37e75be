package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campus-console/internal/models"
	appErrors "campus-console/pkg/errors"
)

// SessionMode distinguishes add sessions from edit sessions.
type SessionMode string

const (
	SessionModeAdd  SessionMode = "alta"
	SessionModeEdit SessionMode = "edicion"
)

type courseGetter interface {
	Get(ctx context.Context, id int64) (*models.Course, error)
}

// CourseSession is one open edit-modal handoff: the draft the form edits plus
// the selection sources it renders from. Sessions are single-shot — closing
// one consumes it.
type CourseSession struct {
	ID       string        `json:"id"`
	Mode     SessionMode   `json:"modo"`
	CourseID int64         `json:"cursoId,omitempty"`
	Draft    models.Course `json:"draft"`
	RefData  RefData       `json:"refData"`

	openedAt time.Time
}

// SessionService runs the add/edit workflow for courses: open with an empty
// or pre-populated draft, hand the result back on close, dispatch the matching
// mutation and refresh the list. Abandoned sessions are reaped by Sweep.
type SessionService struct {
	courses *CourseListService
	getter  courseGetter
	refData *RefDataService
	logger  *zap.Logger
	ttl     time.Duration

	mu       sync.Mutex
	sessions map[string]*CourseSession
}

// NewSessionService constructs a SessionService.
func NewSessionService(courses *CourseListService, getter courseGetter, refData *RefDataService, ttl time.Duration, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionService{
		courses:  courses,
		getter:   getter,
		refData:  refData,
		logger:   logger,
		ttl:      ttl,
		sessions: make(map[string]*CourseSession),
	}
}

// OpenForAdd starts a session with an empty draft. The related entities stay
// unset until the form picks them.
func (s *SessionService) OpenForAdd(ctx context.Context) (*CourseSession, error) {
	session := &CourseSession{
		ID:       uuid.NewString(),
		Mode:     SessionModeAdd,
		Draft:    models.Course{},
		RefData:  s.refData.Fetch(ctx),
		openedAt: time.Now(),
	}
	s.store(session)
	return session, nil
}

// OpenForEdit starts a session whose draft is a deep copy of the course as the
// upstream currently knows it, so form edits never alias the list view.
func (s *SessionService) OpenForEdit(ctx context.Context, courseID int64) (*CourseSession, error) {
	course, err := s.getter.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	session := &CourseSession{
		ID:       uuid.NewString(),
		Mode:     SessionModeEdit,
		CourseID: courseID,
		Draft:    course.Clone(),
		RefData:  s.refData.Fetch(ctx),
		openedAt: time.Now(),
	}
	s.store(session)
	return session, nil
}

// Close consumes the session. A non-nil result dispatches create or update
// depending on how the session was opened; a nil result is a cancel, which
// still refreshes the list so the view is guaranteed to match server state.
func (s *SessionService) Close(ctx context.Context, sessionID string, result *models.Course) (*models.Course, error) {
	session, err := s.take(sessionID)
	if err != nil {
		return nil, err
	}

	if result == nil {
		if err := s.courses.RefreshCourses(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	switch session.Mode {
	case SessionModeAdd:
		return s.courses.CreateCourse(ctx, *result)
	case SessionModeEdit:
		if result.ID == 0 {
			result.ID = session.CourseID
		}
		return s.courses.UpdateCourse(ctx, *result)
	default:
		return nil, appErrors.Clone(appErrors.ErrConflict, "session in unknown mode")
	}
}

// Sweep drops sessions older than the TTL and reports how many were removed.
func (s *SessionService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.openedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("swept expired edit sessions", zap.Int("count", removed))
	}
	return removed
}

// StartSweeper runs Sweep on an interval until the context is cancelled.
func (s *SessionService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
}

func (s *SessionService) store(session *CourseSession) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}

func (s *SessionService) take(id string) (*CourseSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or already closed")
	}
	delete(s.sessions, id)
	return session, nil
}
