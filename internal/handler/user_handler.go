package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/apperr"
	"collabhub/internal/cache"
	"collabhub/internal/repository"
)

const defaultAvatar = "/default-avatar.png"

type UserHandler struct {
	userRepo    *repository.UserRepository
	avatarCache *cache.AvatarCache
	logger      *zap.Logger
}

func NewUserHandler(userRepo *repository.UserRepository, avatarCache *cache.AvatarCache, logger *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, avatarCache: avatarCache, logger: logger}
}

// Avatar returns the avatar reference for an email, falling back to the
// default image when the user has none.
func (h *UserHandler) Avatar(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if avatar, ok := h.avatarCache.Get(c.Request.Context(), email); ok {
		c.JSON(http.StatusOK, gin.H{"avatar": avatar})
		return
	}

	u, err := h.userRepo.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		writeError(c, h.logger, err)
		return
	}

	avatar := u.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}

	h.avatarCache.Set(c.Request.Context(), email, avatar)
	c.JSON(http.StatusOK, gin.H{"avatar": avatar})
}

// Exists reports whether an email belongs to a registered user.
func (h *UserHandler) Exists(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	exists, err := h.userRepo.ExistsByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
