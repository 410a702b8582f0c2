package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketportal/internal/domain"
	"ticketportal/internal/service"
)

// ArtistHandler handles HTTP requests for the artist directory.
type ArtistHandler struct {
	artistService *service.ArtistService
}

// NewArtistHandler creates a new ArtistHandler.
func NewArtistHandler(artistService *service.ArtistService) *ArtistHandler {
	return &ArtistHandler{artistService: artistService}
}

// ArtistsResponse is the HTTP response for the artist list.
type ArtistsResponse struct {
	Artists []domain.Artist `json:"artists"`
	Count   int             `json:"count"`
}

// List handles GET /v1/artists
func (h *ArtistHandler) List(c *gin.Context) {
	artists, err := h.artistService.ListActive(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ArtistsResponse{
		Artists: artists,
		Count:   len(artists),
	})
}
