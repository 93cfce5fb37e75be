package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campus-console/internal/models"
	"campus-console/pkg/config"
	appErrors "campus-console/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zap.NewNop())
	return c, srv
}

func TestCourseClientList(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/cursos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Course{
			{ID: 1, StartDate: "2024-01-01", EndDate: "2024-06-01", Price: 100},
		})
	}))

	courses, err := NewCourseClient(c).List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, int64(1), courses[0].ID)
	assert.Equal(t, "2024-06-01", courses[0].EndDate)
}

func TestCourseClientCreateAssignsID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/cursos/add", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var course models.Course
		require.NoError(t, json.NewDecoder(r.Body).Decode(&course))
		assert.Zero(t, course.ID)

		course.ID = 42
		json.NewEncoder(w).Encode(course)
	}))

	created, err := NewCourseClient(c).Create(context.Background(), models.Course{
		StartDate: "2024-01-01",
		EndDate:   "2024-06-01",
		Price:     100,
		Topic:     &models.Topic{ID: 1, Name: "Math"},
		Teacher:   &models.Teacher{ID: 1, Name: "Ana"},
		Students:  []models.Student{},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
}

func TestStudentClientUpdatePath(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/alumnos/update/7", r.URL.Path)
		var student models.Student
		require.NoError(t, json.NewDecoder(r.Body).Decode(&student))
		json.NewEncoder(w).Encode(student)
	}))

	updated, err := NewStudentClient(c).Update(context.Background(), 7, models.Student{ID: 7, Name: "Luis", BirthDate: "2001-03-15"})
	require.NoError(t, err)
	assert.Equal(t, "Luis", updated.Name)
}

func TestDeleteMapsNotFound(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/api/temas/delete/3", r.URL.Path)
		if calls == 1 {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	topics := NewTopicClient(c)
	require.NoError(t, topics.Delete(context.Background(), 3))

	err := topics.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestServerErrorMapsUpstream(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := NewTeacherClient(c).List(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUpstream))
}

func TestUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop())
	_, err := NewTeacherClient(c).List(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUpstream))
}

func TestCourseClientFindByEndDate(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cursos/fecha-fin/2024-06-01", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Course{{ID: 5, EndDate: "2024-06-01"}})
	}))

	courses, err := NewCourseClient(c).FindByEndDate(context.Background(), "2024-06-01")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, int64(5), courses[0].ID)
}

func TestCourseClientFindStudentsOfActiveCourses(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/cursos/vigentes/docente/9/alumnos", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Student{{ID: 2, Name: "Marta"}})
	}))

	students, err := NewCourseClient(c).FindStudentsOfActiveCourses(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Marta", students[0].Name)
}

type recordingObserver struct {
	resources []string
	statuses  []int
}

func (r *recordingObserver) ObserveUpstreamCall(method, resource string, status int, duration time.Duration) {
	r.resources = append(r.resources, resource)
	r.statuses = append(r.statuses, status)
}

func TestObserverReceivesCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Topic{})
	}))
	t.Cleanup(srv.Close)

	obs := &recordingObserver{}
	c := New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop(), WithObserver(obs))

	_, err := NewTopicClient(c).List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"temas"}, obs.resources)
	assert.Equal(t, []int{http.StatusOK}, obs.statuses)
}
