package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 1 << 20 // 1 MB

// allowedAvatarExts is the upload extension allow-list.
var allowedAvatarExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// @Summary      Upload avatar
// @Description  Multipart field "avatar", max 1MB, png/jpg/jpeg. Stored as a 250x250 PNG.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData  file  true  "Image file"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /users/me/avatar [post]
// @Security     BearerAuth
func (h *Handler) uploadAvatar(c *gin.Context) {
	user := currentUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing avatar file"})
		return
	}
	if file.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be at most 1MB"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be a png, jpg or jpeg file"})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, err, "avatar_open_failed", "user_id", user.ID)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxAvatarBytes+1))
	if err != nil {
		h.respondError(c, err, "avatar_read_failed", "user_id", user.ID)
		return
	}

	if err := h.services.Users.SetAvatar(c.Request.Context(), user.ID, data); err != nil {
		h.respondError(c, err, "avatar_set_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Get avatar
// @Tags         users
// @Produce      png
// @Success      200  {file}    binary
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/me/avatar [get]
// @Security     BearerAuth
func (h *Handler) getAvatar(c *gin.Context) {
	user := currentUser(c)

	blob, err := h.services.Users.GetAvatar(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, "avatar_get_failed", "user_id", user.ID)
		return
	}
	c.Data(http.StatusOK, "image/png", blob)
}

// @Summary      Delete avatar
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/me/avatar [delete]
// @Security     BearerAuth
func (h *Handler) deleteAvatar(c *gin.Context) {
	user := currentUser(c)

	if err := h.services.Users.DeleteAvatar(c.Request.Context(), user.ID); err != nil {
		h.respondError(c, err, "avatar_delete_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
