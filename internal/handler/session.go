package handler

import (
	"github.com/gin-gonic/gin"

	"ticketportal/internal/domain"
	"ticketportal/internal/middleware"
)

// sessionOf returns the request session, or the zero session which every
// authenticated service rejects.
func sessionOf(c *gin.Context) domain.Session {
	session, _ := middleware.SessionFrom(c)
	return session
}
