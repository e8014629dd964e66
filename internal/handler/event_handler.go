package handler

import (
	"net/http"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.ListEvents)
		router.GET("events/:event_id", h.GetEvent)
		router.POST("events", h.CreateEvent)
		router.PUT("events/:event_id", h.UpdateEvent)
		router.DELETE("events/:event_id", h.DeleteEvent)
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	createdBy, ok := CallerID(c)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, req, createdBy)
	if err != nil {
		HandleError(c, err, "CreateEvent")
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	var params query.Params
	if err := BindQuery(c, &params); err != nil {
		return
	}

	result, err := h.service.List(c, params, c.Query("search"))
	if err != nil {
		HandleError(c, err, "ListEvents")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, ok := h.pathEventID(c)
	if !ok {
		return
	}

	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		HandleError(c, err, "GetEvent")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, ok := h.pathEventID(c)
	if !ok {
		return
	}

	var params model.UpdateEventParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	event, err := h.service.UpdateByEventID(c, eventID, params)
	if err != nil {
		HandleError(c, err, "UpdateEvent")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID, ok := h.pathEventID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteByEventID(c, eventID); err != nil {
		HandleError(c, err, "DeleteEvent")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EventHandler) pathEventID(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return uuid.Nil, false
	}
	return eventID, true
}
