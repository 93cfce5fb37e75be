package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-console/internal/models"
	"campus-console/internal/service"
	appErrors "campus-console/pkg/errors"
	"campus-console/pkg/response"
)

// CourseHandler exposes the course list view, its derived queries, the
// mutation endpoints and the edit-session workflow.
type CourseHandler struct {
	courses  *service.CourseListService
	sessions *service.SessionService
	exports  *service.ExportService
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(courses *service.CourseListService, sessions *service.SessionService, exports *service.ExportService) *CourseHandler {
	return &CourseHandler{courses: courses, sessions: sessions, exports: exports}
}

// Register mounts the course routes on the given group.
func (h *CourseHandler) Register(rg *gin.RouterGroup) {
	cursos := rg.Group("/cursos")
	cursos.GET("", h.List)
	cursos.POST("/refresh", h.Refresh)
	cursos.GET("/filtro/fecha-fin", h.FilterByEndDate)
	cursos.GET("/docente/:id/alumnos", h.StudentsByTeacher)
	cursos.POST("", h.Create)
	cursos.PUT("/:id", h.Update)
	cursos.DELETE("/:id", h.Delete)
	cursos.GET("/export", h.Export)
	cursos.POST("/sesiones", h.OpenSession)
	cursos.POST("/sesiones/:id/cerrar", h.CloseSession)
}

// List godoc
// @Summary Current course snapshot
// @Tags Cursos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cursos [get]
func (h *CourseHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.courses.Courses())
}

// Refresh godoc
// @Summary Re-fetch the course list from the upstream API
// @Tags Cursos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cursos/refresh [post]
func (h *CourseHandler) Refresh(c *gin.Context) {
	if err := h.courses.RefreshCourses(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.courses.Courses())
}

// FilterByEndDate godoc
// @Summary Courses ending on an exact date
// @Tags Cursos
// @Produce json
// @Param fecha query string false "End date (ISO), empty clears the view"
// @Success 200 {object} response.Envelope
// @Router /cursos/filtro/fecha-fin [get]
func (h *CourseHandler) FilterByEndDate(c *gin.Context) {
	filtered, err := h.courses.FilterByEndDate(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, filtered)
}

// StudentsByTeacher godoc
// @Summary Students enrolled in a teacher's active courses
// @Tags Cursos
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/docente/{id}/alumnos [get]
func (h *CourseHandler) StudentsByTeacher(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.courses.ListStudentsForTeacher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Create godoc
// @Summary Create a course
// @Tags Cursos
// @Accept json
// @Produce json
// @Param payload body models.Course true "Course payload, id is server-assigned"
// @Success 201 {object} response.Envelope
// @Router /cursos [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	created, err := h.courses.CreateCourse(c.Request.Context(), course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Replace a course
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body models.Course true "Full replacement"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}
	course.ID = id
	updated, err := h.courses.UpdateCourse(c.Request.Context(), course)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a course
// @Tags Cursos
// @Produce json
// @Param id path int true "Course ID"
// @Param confirm query bool true "Must be true; the confirmation gate"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	deleted, err := h.courses.DeleteCourse(c.Request.Context(), id, queryConfirmer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"eliminado": deleted})
}

// Export godoc
// @Summary Export the course snapshot
// @Tags Cursos
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /cursos/export [get]
func (h *CourseHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	result, err := h.exports.CourseList(format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Bytes)
}

type openSessionRequest struct {
	Mode     service.SessionMode `json:"modo"`
	CourseID int64               `json:"cursoId"`
}

type closeSessionRequest struct {
	Result *models.Course `json:"resultado"`
}

// OpenSession godoc
// @Summary Open an add or edit session
// @Tags Sesiones
// @Accept json
// @Produce json
// @Param payload body openSessionRequest true "Session mode, plus cursoId for edits"
// @Success 201 {object} response.Envelope
// @Router /cursos/sesiones [post]
func (h *CourseHandler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	switch req.Mode {
	case service.SessionModeAdd:
		session, err := h.sessions.OpenForAdd(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, session)
	case service.SessionModeEdit:
		if req.CourseID <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "cursoId is required to edit"))
			return
		}
		session, err := h.sessions.OpenForEdit(c.Request.Context(), req.CourseID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, session)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "modo must be alta or edicion"))
	}
}

// CloseSession godoc
// @Summary Close a session with an accepted draft or a cancel
// @Tags Sesiones
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body closeSessionRequest true "resultado null means cancel"
// @Success 200 {object} response.Envelope
// @Router /cursos/sesiones/{id}/cerrar [post]
func (h *CourseHandler) CloseSession(c *gin.Context) {
	var req closeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	result, err := h.sessions.Close(c.Request.Context(), c.Param("id"), req.Result)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result == nil {
		response.JSON(c, http.StatusOK, gin.H{"cancelado": true})
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "id must be a positive integer")
	}
	return id, nil
}

// queryConfirmer adapts the browser's confirmation prompt: the UI asks the
// operator and relays the answer as a confirm query flag.
func queryConfirmer(c *gin.Context) service.Confirmer {
	confirmed := c.Query("confirm") == "true"
	return service.ConfirmerFunc(func(ctx context.Context, prompt string) bool {
		return confirmed
	})
}
