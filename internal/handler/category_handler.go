package handler

import (
	"net/http"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("categories", h.ListCategories)
		router.GET("categories/:id", h.GetCategory)
		router.POST("categories", h.CreateCategory)
		router.PUT("categories/:id", h.UpdateCategory)
		router.DELETE("categories/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	category, err := h.service.Create(c, req)
	if err != nil {
		HandleError(c, err, "CreateCategory")
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var params query.Params
	if err := BindQuery(c, &params); err != nil {
		return
	}

	result, err := h.service.List(c, params)
	if err != nil {
		HandleError(c, err, "ListCategories")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := PathInt(c, "id")
	if !ok {
		return
	}

	category, err := h.service.GetByID(c, id)
	if err != nil {
		HandleError(c, err, "GetCategory")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := PathInt(c, "id")
	if !ok {
		return
	}

	var params model.UpdateCategoryParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	category, err := h.service.Update(c, id, params)
	if err != nil {
		HandleError(c, err, "UpdateCategory")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := PathInt(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c, id); err != nil {
		HandleError(c, err, "DeleteCategory")
		return
	}

	c.Status(http.StatusNoContent)
}
