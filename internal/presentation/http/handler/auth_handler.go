package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/tillpoint/tillpoint-api/pkg/utils"
)

// AuthHandler issues development tokens. Real operator tokens come from the
// identity provider; this endpoint is only registered outside production.
type AuthHandler struct {
	jwtManager *utils.JWTManager
}

func NewAuthHandler(jwtManager *utils.JWTManager) *AuthHandler {
	return &AuthHandler{jwtManager: jwtManager}
}

type devTokenRequest struct {
	OperatorID string   `json:"operator_id" binding:"required"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Roles      []string `json:"roles"`
}

// DevToken mints a signed operator token for local development.
// POST /auth/dev-token
func (h *AuthHandler) DevToken(c *gin.Context) {
	var req devTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.jwtManager.GenerateToken(req.OperatorID, req.Email, req.Name, req.Roles)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Token issued", gin.H{"token": token})
}
