package handler

import (
	"errors"
	"net/http"
	"strconv"

	"event-management-api/pkg/apperrors"
	"event-management-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// PathInt parses an integer path parameter; a malformed value ends the
// request with 400.
func PathInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return value, true
}

// CallerID reads the authenticated user's id from the X-User-ID header set
// by the authentication layer upstream of this service.
func CallerID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.GetHeader("X-User-ID"))
	if err != nil || id < 1 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing or invalid caller identity",
		})
		return 0, false
	}
	return id, true
}

// HandleError maps the business error taxonomy to HTTP statuses. Anything
// outside the taxonomy is an infrastructure failure: logged with full
// context, surfaced as a generic 500.
func HandleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrMembershipNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrTagNotFound):
		log.Warn("Not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAdminCannotRegister):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateName):
		log.Warn("Conflict")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrEventEnded),
		errors.Is(err, apperrors.ErrEventFull),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrCapacityBelowEnrollment),
		errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
