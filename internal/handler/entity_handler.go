package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-console/internal/service"
	appErrors "campus-console/pkg/errors"
	"campus-console/pkg/response"
)

// EntityHandler serves the single-entity screens. Students, teachers and
// topics share the exact list/add/edit/delete shape, so one generic handler
// covers all three.
type EntityHandler[E any] struct {
	svc *service.EntityListService[E]
}

// NewEntityHandler constructs an EntityHandler.
func NewEntityHandler[E any](svc *service.EntityListService[E]) *EntityHandler[E] {
	return &EntityHandler[E]{svc: svc}
}

// Register mounts the entity routes under the given resource name.
func (h *EntityHandler[E]) Register(rg *gin.RouterGroup, resource string) {
	grp := rg.Group("/" + resource)
	grp.GET("", h.List)
	grp.POST("/refresh", h.Refresh)
	grp.POST("", h.Create)
	grp.PUT("/:id", h.Update)
	grp.DELETE("/:id", h.Delete)
	grp.POST("/sesiones", h.OpenSession)
	grp.POST("/sesiones/:id/cerrar", h.CloseSession)
}

func (h *EntityHandler[E]) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.svc.Items())
}

func (h *EntityHandler[E]) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.svc.Items())
}

func (h *EntityHandler[E]) Create(c *gin.Context) {
	var entity E
	if err := c.ShouldBindJSON(&entity); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.svc.Create(c.Request.Context(), entity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *EntityHandler[E]) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var entity E
	if err := c.ShouldBindJSON(&entity); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	updated, err := h.svc.UpdateWithID(c.Request.Context(), id, entity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

func (h *EntityHandler[E]) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id, queryConfirmer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"eliminado": deleted})
}

type openEntitySessionRequest struct {
	Mode     service.SessionMode `json:"modo"`
	EntityID int64               `json:"entidadId"`
}

func (h *EntityHandler[E]) OpenSession(c *gin.Context) {
	var req openEntitySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	switch req.Mode {
	case service.SessionModeAdd:
		response.Created(c, h.svc.OpenForAdd())
	case service.SessionModeEdit:
		if req.EntityID <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "entidadId is required to edit"))
			return
		}
		session, err := h.svc.OpenForEdit(c.Request.Context(), req.EntityID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, session)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "modo must be alta or edicion"))
	}
}

type closeEntitySessionRequest[E any] struct {
	Result *E `json:"resultado"`
}

func (h *EntityHandler[E]) CloseSession(c *gin.Context) {
	var req closeEntitySessionRequest[E]
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	result, err := h.svc.CloseSession(c.Request.Context(), c.Param("id"), req.Result)
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
