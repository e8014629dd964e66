package handler

import (
	"net/http"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	service service.TagService
}

func NewTagHandler(service service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("tags", h.ListTags)
		router.GET("tags/:id", h.GetTag)
		router.POST("tags", h.CreateTag)
		router.PUT("tags/:id", h.UpdateTag)
		router.DELETE("tags/:id", h.DeleteTag)
	}
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req model.CreateTagRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	tag, err := h.service.Create(c, req)
	if err != nil {
		HandleError(c, err, "CreateTag")
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) ListTags(c *gin.Context) {
	var params query.Params
	if err := BindQuery(c, &params); err != nil {
		return
	}

	result, err := h.service.List(c, params)
	if err != nil {
		HandleError(c, err, "ListTags")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := PathInt(c, "id")
	if !ok {
		return
	}

	tag, err := h.service.GetByID(c, id)
	if err != nil {
		HandleError(c, err, "GetTag")
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := PathInt(c, "id")
	if !ok {
		return
	}

	var params model.UpdateTagParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	tag, err := h.service.Update(c, id, params)
	if err != nil {
		HandleError(c, err, "UpdateTag")
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := PathInt(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c, id); err != nil {
		HandleError(c, err, "DeleteTag")
		return
	}

	c.Status(http.StatusNoContent)
}
