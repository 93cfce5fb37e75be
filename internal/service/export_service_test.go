package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"campus-console/internal/models"
	appErrors "campus-console/pkg/errors"
)

func TestExportCourseListCSV(t *testing.T) {
	repo := &mockCourseRepo{courses: []models.Course{seedCourse(1)}}
	courses := NewCourseListService(repo, zap.NewNop())
	require.NoError(t, courses.RefreshCourses(context.Background()))

	svc := NewExportService(courses, true, zap.NewNop())
	result, err := svc.CourseList(ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "cursos.csv", result.Filename)

	body := string(result.Bytes)
	assert.True(t, strings.HasPrefix(body, "ID,Tema,Docente,Inicio,Fin,Precio,Alumnos"))
	assert.Contains(t, body, "1,Math,Ana,2024-01-01,2024-06-01,100.00,1")
}

func TestExportCourseListPDF(t *testing.T) {
	repo := &mockCourseRepo{courses: []models.Course{seedCourse(1)}}
	courses := NewCourseListService(repo, zap.NewNop())
	require.NoError(t, courses.RefreshCourses(context.Background()))

	svc := NewExportService(courses, true, zap.NewNop())
	result, err := svc.CourseList(ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Bytes), "%PDF"))
}

func TestExportDisabled(t *testing.T) {
	courses := NewCourseListService(&mockCourseRepo{}, zap.NewNop())
	svc := NewExportService(courses, false, zap.NewNop())

	_, err := svc.CourseList(ExportFormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnavailable))
}

func TestExportUnknownFormat(t *testing.T) {
	courses := NewCourseListService(&mockCourseRepo{}, zap.NewNop())
	svc := NewExportService(courses, true, zap.NewNop())

	_, err := svc.CourseList("xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}
