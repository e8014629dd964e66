package handler

import (
	"net/http"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("users", h.ListUsers)
		router.GET("users/:id", h.GetUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var params query.Params
	if err := BindQuery(c, &params); err != nil {
		return
	}

	// An unknown role value is ignored rather than rejected.
	var role *model.Role
	if r := model.Role(c.Query("role")); r.IsValid() {
		role = &r
	}

	result, err := h.service.List(c, params, role)
	if err != nil {
		HandleError(c, err, "ListUsers")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := PathInt(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetByID(c, id)
	if err != nil {
		HandleError(c, err, "GetUser")
		return
	}

	c.JSON(http.StatusOK, user)
}
