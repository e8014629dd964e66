package handler

import (
	"net/http"

	"event-management-api/internal/model"
	"event-management-api/internal/query"
	"event-management-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ParticipantHandler struct {
	events       service.EventService
	registration service.RegistrationService
}

func NewParticipantHandler(events service.EventService, registration service.RegistrationService) *ParticipantHandler {
	return &ParticipantHandler{events: events, registration: registration}
}

// RegisterRoutes mounts the participant endpoints. The write endpoints take
// the rate-limit middleware; listing does not.
func (h *ParticipantHandler) RegisterRoutes(r *gin.Engine, limit gin.HandlerFunc) {
	router := r.Group("/api/v1/events/:event_id/participants")
	{
		router.GET("", h.ListParticipants)
		router.POST("", limit, h.Register)
		router.DELETE("", limit, h.Withdraw)
		router.DELETE("/:user_id", limit, h.AdminRemove)
	}
}

// resolveEvent maps the public event uuid in the path to the internal id.
func (h *ParticipantHandler) resolveEvent(c *gin.Context) (*model.Event, bool) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return nil, false
	}

	event, err := h.events.GetByEventID(c, eventID)
	if err != nil {
		HandleError(c, err, "ResolveEvent")
		return nil, false
	}

	return event, true
}

func (h *ParticipantHandler) Register(c *gin.Context) {
	event, ok := h.resolveEvent(c)
	if !ok {
		return
	}

	userID, ok := CallerID(c)
	if !ok {
		return
	}

	var req model.RegisterRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	participant, err := h.registration.Register(c, event.ID, userID, req.Notes)
	if err != nil {
		HandleError(c, err, "Register")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Successfully registered for event",
		"participant": participant,
	})
}

func (h *ParticipantHandler) Withdraw(c *gin.Context) {
	event, ok := h.resolveEvent(c)
	if !ok {
		return
	}

	userID, ok := CallerID(c)
	if !ok {
		return
	}

	membership, err := h.registration.Withdraw(c, event.ID, userID)
	if err != nil {
		HandleError(c, err, "Withdraw")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Successfully withdrawn from event",
		"membership": membership,
	})
}

func (h *ParticipantHandler) AdminRemove(c *gin.Context) {
	event, ok := h.resolveEvent(c)
	if !ok {
		return
	}

	userID, ok := PathInt(c, "user_id")
	if !ok {
		return
	}

	actingAdminID, ok := CallerID(c)
	if !ok {
		return
	}

	membership, err := h.registration.AdminRemove(c, event.ID, userID, actingAdminID)
	if err != nil {
		HandleError(c, err, "AdminRemove")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Participant removed from event",
		"membership": membership,
	})
}

func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	event, ok := h.resolveEvent(c)
	if !ok {
		return
	}

	var params query.Params
	if err := BindQuery(c, &params); err != nil {
		return
	}

	// An unknown status value is ignored rather than rejected.
	var status *model.MembershipStatus
	if s := model.MembershipStatus(c.Query("status")); s.IsValid() {
		status = &s
	}

	result, err := h.registration.ListParticipants(c, event.ID, params, status)
	if err != nil {
		HandleError(c, err, "ListParticipants")
		return
	}

	c.JSON(http.StatusOK, result)
}
