package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *Handler) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary      Update own profile
// @Description  Whitelisted fields: name, email, password, age. Any other field fails the whole update.
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /users/me [patch]
// @Security     BearerAuth
func (h *Handler) updateMe(c *gin.Context) {
	user := currentUser(c)

	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read request body"})
		return
	}

	updated, err := h.services.Users.Update(c.Request.Context(), user.ID, rawBody)
	if err != nil {
		h.respondError(c, err, "user_update_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete own account
// @Description  Deletes the account and every task it owns.
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/me [delete]
// @Security     BearerAuth
func (h *Handler) deleteMe(c *gin.Context) {
	user := currentUser(c)

	deleted, err := h.services.Users.Delete(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err, "user_delete_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
