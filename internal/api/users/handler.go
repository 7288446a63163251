package users

import (
	"errors"
	"net/http"

	"media-access/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GetCurrentUser returns the caller and the capabilities their role grants.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.store.FindByID(c.Request.Context(), p.ID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
		Access: AccessDTO{
			Capabilities:      p.Capabilities.Strings(),
			CanManageAllMedia: p.CanManageAllMedia(),
		},
	})
}
