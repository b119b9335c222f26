package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/tillpoint/tillpoint-api/internal/session"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

// GetOperatorID extracts the authenticated operator's ID from the Gin context
func GetOperatorID(c *gin.Context) string {
	return c.GetString("operator_id")
}

// GetOperatorName extracts the operator's display name, falling back to
// their email when the token carries no name.
func GetOperatorName(c *gin.Context) string {
	if name := c.GetString("operator_name"); name != "" {
		return name
	}
	return c.GetString("operator_email")
}

// parseTabID parses the :id route parameter.
func parseTabID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid tab ID")
	}
	return id, nil
}

// parseItemID parses the :itemId route parameter.
func parseItemID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid item ID")
	}
	return id, nil
}

// respondError translates session sentinels into HTTP responses and falls
// back to the standard error envelope for everything else.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrTabNotFound):
		response.NotFound(c, "Tab not found")
	case errors.Is(err, session.ErrItemNotFound):
		response.NotFound(c, "Line item not found")
	case errors.Is(err, session.ErrLastTab):
		response.ErrorWithCode(c, 409, "Cannot close the last remaining tab")
	default:
		response.Error(c, err)
	}
}
