package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"campus-console/internal/models"
)

// StudentClient talks to the upstream "alumnos" resource.
type StudentClient struct {
	resourceClient[models.Student]
}

func NewStudentClient(c *Client) *StudentClient {
	return &StudentClient{resourceClient[models.Student]{c: c, resource: "alumnos"}}
}

// TeacherClient talks to the upstream "docentes" resource.
type TeacherClient struct {
	resourceClient[models.Teacher]
}

func NewTeacherClient(c *Client) *TeacherClient {
	return &TeacherClient{resourceClient[models.Teacher]{c: c, resource: "docentes"}}
}

// TopicClient talks to the upstream "temas" resource.
type TopicClient struct {
	resourceClient[models.Topic]
}

func NewTopicClient(c *Client) *TopicClient {
	return &TopicClient{resourceClient[models.Topic]{c: c, resource: "temas"}}
}

// CourseClient talks to the upstream "cursos" resource and its two derived
// read endpoints.
type CourseClient struct {
	resourceClient[models.Course]
}

func NewCourseClient(c *Client) *CourseClient {
	return &CourseClient{resourceClient[models.Course]{c: c, resource: "cursos"}}
}

// FindByEndDate returns courses whose end date exactly matches the given
// ISO date string. Callers are responsible for short-circuiting empty input.
func (cc *CourseClient) FindByEndDate(ctx context.Context, endDate string) ([]models.Course, error) {
	var out []models.Course
	path := "/api/cursos/fecha-fin/" + url.PathEscape(endDate)
	if err := cc.c.do(ctx, http.MethodGet, "cursos", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindStudentsOfActiveCourses returns the distinct students enrolled in the
// teacher's courses whose date range covers today. The join happens upstream.
func (cc *CourseClient) FindStudentsOfActiveCourses(ctx context.Context, teacherID int64) ([]models.Student, error) {
	var out []models.Student
	path := fmt.Sprintf("/api/cursos/vigentes/docente/%d/alumnos", teacherID)
	if err := cc.c.do(ctx, http.MethodGet, "cursos", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
