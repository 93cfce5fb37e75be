package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "campus-console/pkg/errors"
)

type entityRepository[E any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id int64) (*E, error)
	Create(ctx context.Context, entity E) (*E, error)
	Update(ctx context.Context, id int64, entity E) (*E, error)
	Delete(ctx context.Context, id int64) error
}

// EntitySession is the single-entity edit-modal handoff. Unlike course
// sessions it carries no reference data — the flat entities need none.
type EntitySession[E any] struct {
	ID       string      `json:"id"`
	Mode     SessionMode `json:"modo"`
	EntityID int64       `json:"entidadId,omitempty"`
	Draft    E           `json:"draft"`

	openedAt time.Time
}

// EntityListService is the single-entity variant of the course controller:
// one in-memory list, wholesale refresh after every mutation, a confirmation
// gate on delete and the same open/close edit-session machinery. Students,
// teachers and topics are all instances of it.
type EntityListService[E any] struct {
	name   string
	repo   entityRepository[E]
	idOf   func(E) int64
	logger *zap.Logger
	ttl    time.Duration

	mu         sync.Mutex
	items      []E
	issuedSeq  uint64
	appliedSeq uint64
	sessions   map[string]*EntitySession[E]
}

// NewEntityListService constructs an EntityListService. idOf extracts the
// server-assigned identifier from an entity value.
func NewEntityListService[E any](name string, repo entityRepository[E], idOf func(E) int64, ttl time.Duration, logger *zap.Logger) *EntityListService[E] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &EntityListService[E]{
		name:     name,
		repo:     repo,
		idOf:     idOf,
		logger:   logger,
		ttl:      ttl,
		sessions: make(map[string]*EntitySession[E]),
	}
}

// Refresh replaces the list with the upstream collection, discarding
// responses that arrive after a newer refresh has already been applied.
func (s *EntityListService[E]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issuedSeq++
	seq := s.issuedSeq
	s.mu.Unlock()

	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("list refresh failed", zap.String("entity", s.name), zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		return nil
	}
	s.appliedSeq = seq
	s.items = items
	return nil
}

// Items returns a copy of the current list.
func (s *EntityListService[E]) Items() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Create persists a new entity and refreshes the list.
func (s *EntityListService[E]) Create(ctx context.Context, entity E) (*E, error) {
	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		s.logger.Warn("create failed", zap.String("entity", s.name), zap.Error(err))
		return nil, err
	}
	s.refreshAfterMutation(ctx, "create")
	return created, nil
}

// Update submits a full replacement keyed by the entity's own id field.
func (s *EntityListService[E]) Update(ctx context.Context, entity E) (*E, error) {
	return s.UpdateWithID(ctx, s.idOf(entity), entity)
}

// Delete asks the confirmer first; declined means zero repository calls.
func (s *EntityListService[E]) Delete(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(ctx, "delete "+s.name) {
		return false, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete failed", zap.String("entity", s.name), zap.Int64("id", id), zap.Error(err))
		return false, err
	}
	s.refreshAfterMutation(ctx, "delete")
	return true, nil
}

// OpenForAdd starts an edit session around an empty draft.
func (s *EntityListService[E]) OpenForAdd() *EntitySession[E] {
	var draft E
	session := &EntitySession[E]{
		ID:       uuid.NewString(),
		Mode:     SessionModeAdd,
		Draft:    draft,
		openedAt: time.Now(),
	}
	s.storeSession(session)
	return session
}

// OpenForEdit starts an edit session pre-populated from the upstream entity.
func (s *EntityListService[E]) OpenForEdit(ctx context.Context, id int64) (*EntitySession[E], error) {
	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session := &EntitySession[E]{
		ID:       uuid.NewString(),
		Mode:     SessionModeEdit,
		EntityID: id,
		Draft:    *entity,
		openedAt: time.Now(),
	}
	s.storeSession(session)
	return session, nil
}

// CloseSession consumes the session, dispatching create or update for an
// accepted draft and a defensive refresh for a cancel.
func (s *EntityListService[E]) CloseSession(ctx context.Context, sessionID string, result *E) (*E, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or already closed")
	}

	if result == nil {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if session.Mode == SessionModeAdd {
		return s.Create(ctx, *result)
	}
	if s.idOf(*result) == 0 {
		return s.UpdateWithID(ctx, session.EntityID, *result)
	}
	return s.Update(ctx, *result)
}

// Sweep drops sessions older than the TTL.
func (s *EntityListService[E]) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.openedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// UpdateWithID covers payloads whose id field was left zero by the form: the
// route or session supplies the identifier instead.
func (s *EntityListService[E]) UpdateWithID(ctx context.Context, id int64, entity E) (*E, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, s.name+" id is required for update")
	}
	updated, err := s.repo.Update(ctx, id, entity)
	if err != nil {
		s.logger.Warn("update failed", zap.String("entity", s.name), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	s.refreshAfterMutation(ctx, "update")
	return updated, nil
}

// StartSweeper runs Sweep on an interval until the context is cancelled.
func (s *EntityListService[E]) StartSweeper(ctx context.Context, interval time.Duration) {
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

func (s *EntityListService[E]) refreshAfterMutation(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("post-mutation refresh failed",
			zap.String("entity", s.name),
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (s *EntityListService[E]) storeSession(session *EntitySession[E]) {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
}
