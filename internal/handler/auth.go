package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketportal/internal/service"
)

// AuthHandler handles the credential-recovery endpoints.
type AuthHandler struct {
	recoveryService *service.RecoveryService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(recoveryService *service.RecoveryService) *AuthHandler {
	return &AuthHandler{recoveryService: recoveryService}
}

// ForgotPasswordRequest is the HTTP request body for a recovery email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the HTTP request body for setting a new password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ForgotPassword handles POST /v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	notice, err := h.recoveryService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": notice})
}

// VerifyResetToken handles GET /v1/auth/verify-reset-token
func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	valid, err := h.recoveryService.VerifyResetToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// ResetPassword handles POST /v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	notice, err := h.recoveryService.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": notice})
}
