package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketportal/internal/domain"
	"ticketportal/internal/service"
)

// FavoritesHandler handles HTTP requests for the session user's favorites.
type FavoritesHandler struct {
	favoritesService *service.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(favoritesService *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// FavoritesResponse is the HTTP response for the favorites list.
type FavoritesResponse struct {
	Favorites []domain.FavoriteEvent `json:"favorites"`
	Count     int                    `json:"count"`
}

// List handles GET /v1/me/favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	favorites, err := h.favoritesService.List(c.Request.Context(), sessionOf(c), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FavoritesResponse{
		Favorites: favorites,
		Count:     len(favorites),
	})
}

// Remove handles DELETE /v1/me/favorites/:eventId
func (h *FavoritesHandler) Remove(c *gin.Context) {
	notice, err := h.favoritesService.Remove(c.Request.Context(), sessionOf(c), c.Param("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": notice})
}
