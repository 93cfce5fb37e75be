package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campus-console/internal/models"
	appErrors "campus-console/pkg/errors"
)

type mockStudentRepo struct {
	students    []models.Student
	listErr     error
	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
	nextID      int64
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Student, len(m.students))
	copy(out, m.students)
	return out, nil
}

func (m *mockStudentRepo) Get(ctx context.Context, id int64) (*models.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "alumno not found")
}

func (m *mockStudentRepo) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	m.createCalls++
	m.nextID++
	student.ID = m.nextID
	m.students = append(m.students, student)
	return &student, nil
}

func (m *mockStudentRepo) Update(ctx context.Context, id int64, student models.Student) (*models.Student, error) {
	m.updateCalls++
	for i := range m.students {
		if m.students[i].ID == id {
			student.ID = id
			m.students[i] = student
			return &student, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "alumno not found")
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	for i := range m.students {
		if m.students[i].ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "alumno not found")
}

func newStudentListService(repo *mockStudentRepo) *EntityListService[models.Student] {
	return NewEntityListService("alumno", repo, func(s models.Student) int64 { return s.ID }, time.Minute, zap.NewNop())
}

func TestEntityListRefreshIsIdempotent(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 1, Name: "Luis"}}}
	svc := newStudentListService(repo)

	require.NoError(t, svc.Refresh(context.Background()))
	first := svc.Items()
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, first, svc.Items())
}

func TestEntityListCreateRefreshes(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentListService(repo)

	created, err := svc.Create(context.Background(), models.Student{Name: "Marta", BirthDate: "2002-07-09"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, repo.listCalls)
	require.Len(t, svc.Items(), 1)
}

func TestEntityListUpdateRequiresID(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentListService(repo)

	_, err := svc.Update(context.Background(), models.Student{Name: "Marta"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
	assert.Zero(t, repo.updateCalls)
}

func TestEntityListDeleteGate(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 1, Name: "Luis"}}}
	svc := newStudentListService(repo)

	decline := ConfirmerFunc(func(ctx context.Context, prompt string) bool { return false })
	deleted, err := svc.Delete(context.Background(), 1, decline)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Zero(t, repo.deleteCalls)

	accept := ConfirmerFunc(func(ctx context.Context, prompt string) bool { return true })
	deleted, err = svc.Delete(context.Background(), 1, accept)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, repo.deleteCalls)
	assert.Empty(t, svc.Items())
}

func TestEntityListDeleteNotIdempotent(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 1, Name: "Luis"}}}
	svc := newStudentListService(repo)
	accept := ConfirmerFunc(func(ctx context.Context, prompt string) bool { return true })

	deleted, err := svc.Delete(context.Background(), 1, accept)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.Delete(context.Background(), 1, accept)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestEntitySessionAddFlow(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentListService(repo)

	session := svc.OpenForAdd()
	assert.Equal(t, SessionModeAdd, session.Mode)
	assert.Zero(t, session.Draft.ID)

	created, err := svc.CloseSession(context.Background(), session.ID, &models.Student{Name: "Marta", BirthDate: "2002-07-09"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	require.Len(t, svc.Items(), 1)
}

func TestEntitySessionEditFlow(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 4, Name: "Luis", BirthDate: "2001-03-15"}}}
	svc := newStudentListService(repo)

	session, err := svc.OpenForEdit(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), session.EntityID)
	assert.Equal(t, "Luis", session.Draft.Name)

	draft := session.Draft
	draft.Name = "Luis M."
	draft.ID = 0 // the form may drop the id; the session remembers it
	updated, err := svc.CloseSession(context.Background(), session.ID, &draft)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ID)
	assert.Equal(t, "Luis M.", updated.Name)
}

func TestEntitySessionCancelRefreshes(t *testing.T) {
	repo := &mockStudentRepo{students: []models.Student{{ID: 4, Name: "Luis"}}}
	svc := newStudentListService(repo)

	session, err := svc.OpenForEdit(context.Background(), 4)
	require.NoError(t, err)

	result, err := svc.CloseSession(context.Background(), session.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, repo.updateCalls)
	assert.Equal(t, 1, repo.listCalls)
}

func TestEntitySessionSingleShot(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentListService(repo)

	session := svc.OpenForAdd()
	_, err := svc.CloseSession(context.Background(), session.ID, nil)
	require.NoError(t, err)

	_, err = svc.CloseSession(context.Background(), session.ID, nil)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestEntityListRefreshSurfacesError(t *testing.T) {
	repo := &mockStudentRepo{listErr: errors.New("boom")}
	svc := newStudentListService(repo)

	require.Error(t, svc.Refresh(context.Background()))
	assert.Empty(t, svc.Items())
}
